package def

// ErrorDecl is either NoError or WithError.
type ErrorDecl interface {
	isErrorDecl()
}

// NoError is the ErrorDecl of a pallet without an error declaration.
type NoError struct{}

// WithError references the pallet's error declaration.
type WithError struct {
	// Error is the identifier of the error type (e.g., "Error").
	Error string
	// Index is the position of its declaration in Module.Items, or -1 when
	// it is declared in another file of the package.
	Index int
}

func (NoError) isErrorDecl()   {}
func (WithError) isErrorDecl() {}
