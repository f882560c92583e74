package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (pipeline reports such as
	// timings).
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics. The fold pass downgrades
	// literal-overflow errors to warnings on synthetic provenance.
	SevWarning
	// SevError is for static fold errors and malformed IR text.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
