package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by all Vāktra data types.
type Type interface {
	// Repr returns the string representation of the type used in diagnostics.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive Vāktra type.  The primitive types form
// a closed set with structural equality; there is no subtyping and no
// implicit widening between them.
type PrimitiveType int

// Enumeration of the primitive types.
const (
	PrimTypeInteger = PrimitiveType(iota) // संख्या
	PrimTypeBoolean                       // सत्यासत्य
	PrimTypeString                        // पाठ
	PrimTypeUnit                          // the type of statements and valueless returns
)

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimTypeInteger:
		return "संख्या"
	case PrimTypeBoolean:
		return "सत्यासत्य"
	case PrimTypeString:
		return "पाठ"
	default:
		return "()"
	}
}

// -----------------------------------------------------------------------------

// FuncType represents a function type.
type FuncType struct {
	// The types of the function's parameters, in declaration order.
	ParamTypes []Type

	// The return type of the function.
	ReturnType Type
}

func (ft *FuncType) Repr() string {
	params := make([]string, len(ft.ParamTypes))
	for i, pt := range ft.ParamTypes {
		params[i] = pt.Repr()
	}

	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ft.ReturnType.Repr())
}

// -----------------------------------------------------------------------------

// RefType represents the type of a borrow: a temporary, non-owning access
// right to a value owned by another binding.  Borrows are lexically scoped
// and checked statically; a RefType carries no ownership of its element.
type RefType struct {
	// The type of the value being borrowed.
	ElemType Type

	// Whether the borrow permits mutation of the borrowed value.
	Mutable bool
}

func (rt *RefType) Repr() string {
	if rt.Mutable {
		return "&चल " + rt.ElemType.Repr()
	}

	return "&" + rt.ElemType.Repr()
}

// -----------------------------------------------------------------------------

// Equals returns whether two types are structurally equal.
func Equals(a, b Type) bool {
	switch v := a.(type) {
	case PrimitiveType:
		pb, ok := b.(PrimitiveType)
		return ok && v == pb
	case *RefType:
		rb, ok := b.(*RefType)
		return ok && v.Mutable == rb.Mutable && Equals(v.ElemType, rb.ElemType)
	case *FuncType:
		fb, ok := b.(*FuncType)
		if !ok || len(v.ParamTypes) != len(fb.ParamTypes) {
			return false
		}

		for i, pt := range v.ParamTypes {
			if !Equals(pt, fb.ParamTypes[i]) {
				return false
			}
		}

		return Equals(v.ReturnType, fb.ReturnType)
	}

	return false
}

// IsUnit returns whether typ is the unit type.
func IsUnit(typ Type) bool {
	return Equals(typ, PrimTypeUnit)
}

// IsMoveSemantic returns whether values of typ move rather than copy when
// passed or assigned by value.  पाठ is the only move-semantic type: its
// values own a heap-allocated buffer, so exactly one binding may own a given
// value at a time.
func IsMoveSemantic(typ Type) bool {
	return Equals(typ, PrimTypeString)
}
