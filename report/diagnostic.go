package report

import "fmt"

// Enumeration of diagnostic kinds.
const (
	DiagUnresolved  = iota // A variable or function name not bound in any active scope.
	DiagUnsupported        // A syntax-tree construct lowering does not yet handle.
)

// diagKindStrings maps diagnostic kinds to their display labels.
var diagKindStrings = map[int]string{
	DiagUnresolved:  "Name",
	DiagUnsupported: "Unsupported",
}

// Diagnostic is a recoverable lowering error produced while generating IR for
// a program.  Diagnostics are collected and returned as values rather than
// printed or panicked so that a single lowering pass can report every error
// in the program.  A function lowered with any diagnostics must never be
// handed to a code generator.
type Diagnostic struct {
	// The kind of the diagnostic.  Must be one of the enumerated kinds.
	Kind int

	// The human-readable error message.
	Message string

	// The span over which the diagnostic occurs.  May be nil if no position
	// information is available.
	Span *TextSpan
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Unresolvedf creates a new unresolved-reference diagnostic.
func Unresolvedf(span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    DiagUnresolved,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	}
}

// Unsupportedf creates a new unsupported-construct diagnostic.
func Unsupportedf(span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    DiagUnsupported,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	}
}
