package report

import "fmt"

// Reporter collects the diagnostics produced by a single compilation pipeline
// instance.  Each pipeline owns exactly one reporter: reporters are never
// shared between translation units, so independent units may be compiled in
// parallel without synchronization.
type Reporter struct {
	// The diagnostics collected so far, in the order they were reported.
	diags []Diagnostic

	// The number of error-severity diagnostics collected so far.
	errorCount int
}

// NewReporter creates a new empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Error reports an error diagnostic of the given kind.
func (r *Reporter) Error(kind int, span *TextSpan, msg string, args ...interface{}) {
	r.errorCount++
	r.diags = append(r.diags, Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(msg, args...),
		Span:     span,
		Severity: SeverityError,
	})
}

// Warn reports a warning diagnostic of the given kind.
func (r *Reporter) Warn(kind int, span *TextSpan, msg string, args ...interface{}) {
	r.diags = append(r.diags, Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(msg, args...),
		Span:     span,
		Severity: SeverityWarning,
	})
}

// ShouldProceed indicates whether compilation should proceed to the next
// stage: ie. whether no errors have been reported.
func (r *Reporter) ShouldProceed() bool {
	return r.errorCount == 0
}

// Diagnostics returns the diagnostics collected so far.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// Catch recovers a compile error thrown by a `panic` during a stage of
// compilation and records it on the reporter.  In effect, this handler
// determines where errors "unrecoverable" within a given subsection of the
// compiler stop bubbling.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) Catch() {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			r.Error(cerr.Kind, cerr.Span, "%s", cerr.Message)
		} else {
			panic(x)
		}
	}
}
