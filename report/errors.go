package report

import "fmt"

// CompileError is a compilation error raised inside a compiler stage.  It is
// thrown with a panic and recovered at the stage boundary, where it is
// converted into a diagnostic on the stage's reporter.
type CompileError struct {
	// The kind of the error.  This must be one of the enumerated diagnostic
	// kinds.
	Kind int

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new compile error of the given kind.
func Raise(kind int, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}
