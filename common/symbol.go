package common

import (
	"vaaktra/report"
	"vaaktra/types"
)

// Symbol represents a semantic symbol: a named value or definition.
type Symbol struct {
	// The name of the symbol.
	Name string

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The type of the value stored in the symbol.
	Type types.Type

	// The symbol's kind: what kind of thing this symbol represents.  This
	// must be one of the enumerated definition kinds.
	DefKind int

	// Whether the symbol may be mutated after initialization.
	Mutable bool

	// The symbol's current ownership state.  This must be one of the
	// enumerated ownership states.  It is updated as the ownership pass walks
	// the symbol's scope and has no meaning after analysis completes.
	Ownership int

	// Where the symbol's value was moved away, if it was.  Used to point
	// use-after-move diagnostics back at the offending move.
	MoveSpan *report.TextSpan

	// The stack slot assigned to the symbol during lowering.
	Slot int
}

// Enumeration of symbol kinds.
const (
	DefKindValue = iota
	DefKindFunc
	DefKindBuiltin
)

// Enumeration of ownership states.  Every binding begins life owned; a
// move-semantic value leaves the Owned state when it is passed by value or
// assigned elsewhere, and a borrow places the binding in one of the borrowed
// states until the borrow's enclosing scope exits.
const (
	Owned = iota
	Moved
	BorrowedShared
	BorrowedMutable
)
