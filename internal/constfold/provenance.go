package constfold

import (
	"ember/internal/source"
)

// TypeLookup resolves instruction provenance to user-visible type names,
// improving diagnostic wording. It is strictly best-effort: every method may
// report failure, and folding correctness never depends on it.
type TypeLookup interface {
	// InferBinaryType returns the operand type name when the span resolves
	// to a two-operand application whose operand types match. Detects '+',
	// '+=' and the like.
	InferBinaryType(src source.Span) (string, bool)
	// InferResultType returns the type name of the expression at the span.
	InferResultType(src source.Span) (string, bool)
}

// SpanTypes is a table-backed TypeLookup. The driver fills it from whatever
// front-end metadata is available; tests fill it by hand.
type SpanTypes struct {
	Binary map[source.Span]string
	Result map[source.Span]string
}

func (t *SpanTypes) InferBinaryType(src source.Span) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.Binary[src]
	return name, ok
}

func (t *SpanTypes) InferResultType(src source.Span) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.Result[src]
	return name, ok
}

func (fl *folder) inferBinaryType(src source.Span) (string, bool) {
	if fl.types == nil {
		return "", false
	}
	return fl.types.InferBinaryType(src)
}

func (fl *folder) inferResultType(src source.Span) (string, bool) {
	if fl.types == nil {
		return "", false
	}
	return fl.types.InferResultType(src)
}
