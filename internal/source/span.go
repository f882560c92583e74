package source

import (
	"fmt"
)

// Span is a half-open byte range inside a file. The zero Span marks
// synthetic locations: instructions materialized by the compiler itself,
// with no user-visible source position.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Synthetic reports whether the span carries no real source position.
// Diagnostics at synthetic spans are downgraded where the catalog says so.
func (s Span) Synthetic() bool {
	return s.File == 0 && s.Start == 0 && s.End == 0
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
