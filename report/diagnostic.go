package report

// Diagnostic represents a single user-facing compilation message: an error or
// a warning produced by one of the compiler stages.  Diagnostics are collected
// on a Reporter and handed back to the caller of the compilation pipeline;
// they are never printed by the core itself.
type Diagnostic struct {
	// The kind of the diagnostic.  This must be one of the enumerated
	// diagnostic kinds.
	Kind int

	// The human-readable message of the diagnostic.
	Message string

	// The span over which the diagnostic occurs.  This may be nil for
	// diagnostics with no meaningful source location.
	Span *TextSpan

	// The severity of the diagnostic.  This must be one of the enumerated
	// severities.
	Severity int
}

// Enumeration of diagnostic kinds.
const (
	// Lexical errors.
	KindUnexpectedCharacter = iota
	KindInvalidNumberLiteral
	KindUnterminatedString

	// Syntax errors.
	KindUnexpectedToken
	KindUnclosedDelimiter
	KindMalformedParamList
	KindMissingTerminator

	// Semantic errors.
	KindTypeMismatch
	KindUnresolvedName
	KindConditionTypeError
	KindUseAfterMove
	KindBorrowConflict
	KindRedeclaration
	KindMutabilityError

	// Internal invariant violations: never user-induced.
	KindInternalFault
)

// Enumeration of diagnostic severities.
const (
	SeverityError = iota
	SeverityWarning
)

// kindNames maps diagnostic kinds to their display names.
var kindNames = map[int]string{
	KindUnexpectedCharacter:  "UnexpectedCharacter",
	KindInvalidNumberLiteral: "InvalidNumberLiteral",
	KindUnterminatedString:   "UnterminatedString",
	KindUnexpectedToken:      "UnexpectedToken",
	KindUnclosedDelimiter:    "UnclosedDelimiter",
	KindMalformedParamList:   "MalformedParamList",
	KindMissingTerminator:    "MissingTerminator",
	KindTypeMismatch:         "TypeMismatch",
	KindUnresolvedName:       "UnresolvedName",
	KindConditionTypeError:   "ConditionTypeError",
	KindUseAfterMove:         "UseAfterMove",
	KindBorrowConflict:       "BorrowConflict",
	KindRedeclaration:        "Redeclaration",
	KindMutabilityError:      "MutabilityError",
	KindInternalFault:        "InternalFault",
}

// KindName returns the display name of a diagnostic kind.
func KindName(kind int) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	return "Unknown"
}
