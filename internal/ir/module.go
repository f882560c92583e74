package ir

// Module is an ordered collection of functions.
type Module struct {
	Funcs []*Func
}
