package walk

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/report"
	"vaaktra/syntax"
	"vaaktra/types"
)

// walkExpr walks an expression, resolving names and checking types.  It
// returns the expression's resolved type, which is also stored on the node.
func (w *Walker) walkExpr(expr ast.ASTExpr) types.Type {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		w.walkBinaryExpr(v)
	case *ast.UnaryExpr:
		w.walkUnaryExpr(v)
	case *ast.CallExpr:
		w.walkCallExpr(v)
	case *ast.Literal:
		switch v.Kind {
		case syntax.TOK_INTLIT:
			v.SetType(types.PrimTypeInteger)
		case syntax.TOK_BOOLLIT:
			v.SetType(types.PrimTypeBoolean)
		case syntax.TOK_STRINGLIT:
			v.SetType(types.PrimTypeString)
		}
	case *ast.Identifier:
		v.Sym = w.lookup(v.Name, v.Span())
		v.SetType(v.Sym.Type)
	}

	return expr.Type()
}

func (w *Walker) walkBinaryExpr(bexpr *ast.BinaryExpr) {
	if bexpr.Op.Kind == syntax.TOK_ASSIGN {
		w.walkAssignment(bexpr)
		return
	}

	lhsType := w.walkExpr(bexpr.Lhs)
	rhsType := w.walkExpr(bexpr.Rhs)

	switch bexpr.Op.Kind {
	case syntax.TOK_PLUS, syntax.TOK_MINUS, syntax.TOK_STAR, syntax.TOK_DIV, syntax.TOK_MOD:
		w.mustBe(bexpr.Lhs, lhsType, types.PrimTypeInteger, bexpr.Op)
		w.mustBe(bexpr.Rhs, rhsType, types.PrimTypeInteger, bexpr.Op)
		bexpr.SetType(types.PrimTypeInteger)
	case syntax.TOK_LT, syntax.TOK_GT, syntax.TOK_LTEQ, syntax.TOK_GTEQ:
		w.mustBe(bexpr.Lhs, lhsType, types.PrimTypeInteger, bexpr.Op)
		w.mustBe(bexpr.Rhs, rhsType, types.PrimTypeInteger, bexpr.Op)
		bexpr.SetType(types.PrimTypeBoolean)
	case syntax.TOK_EQ, syntax.TOK_NEQ:
		// Equality is defined on संख्या and सत्यासत्य only.
		if !types.Equals(lhsType, types.PrimTypeInteger) && !types.Equals(lhsType, types.PrimTypeBoolean) {
			w.error(
				report.KindTypeMismatch, bexpr.Lhs.Span(),
				"operator `%s` is not defined on %s", bexpr.Op.Name, lhsType.Repr(),
			)
		}

		if !types.Equals(lhsType, rhsType) {
			w.error(
				report.KindTypeMismatch, bexpr.Rhs.Span(),
				"cannot compare %s to %s", lhsType.Repr(), rhsType.Repr(),
			)
		}

		bexpr.SetType(types.PrimTypeBoolean)
	case syntax.TOK_LAND, syntax.TOK_LOR:
		w.mustBe(bexpr.Lhs, lhsType, types.PrimTypeBoolean, bexpr.Op)
		w.mustBe(bexpr.Rhs, rhsType, types.PrimTypeBoolean, bexpr.Op)
		bexpr.SetType(types.PrimTypeBoolean)
	}
}

// walkAssignment walks an assignment expression, which yields unit.
func (w *Walker) walkAssignment(bexpr *ast.BinaryExpr) {
	lhsType := w.walkExpr(bexpr.Lhs)

	if bexpr.Lhs.Category() != ast.LValue {
		w.error(
			report.KindTypeMismatch, bexpr.Lhs.Span(),
			"cannot assign to a value expression",
		)
	}

	w.checkMutable(bexpr.Lhs)

	rhsType := w.walkExpr(bexpr.Rhs)

	if !types.Equals(lhsType, rhsType) {
		w.error(
			report.KindTypeMismatch, bexpr.Rhs.Span(),
			"cannot assign a value of type %s to `%s`", rhsType.Repr(), lhsType.Repr(),
		)
	}

	bexpr.SetType(types.PrimTypeUnit)
}

// checkMutable checks that an l-value expression may be written through: a
// mutable binding, or a dereference of a mutable borrow.
func (w *Walker) checkMutable(lhs ast.ASTExpr) {
	switch v := lhs.(type) {
	case *ast.Identifier:
		if !v.Sym.Mutable {
			w.error(
				report.KindMutabilityError, v.Span(),
				"cannot mutate `%s`: it is not declared चल", v.Name,
			)
		}
	case *ast.UnaryExpr:
		// Dereference: mutation requires a mutable borrow.
		rt := v.Operand.Type().(*types.RefType)
		if !rt.Mutable {
			w.error(
				report.KindMutabilityError, v.Span(),
				"cannot mutate through a shared borrow of type %s", rt.Repr(),
			)
		}
	}
}

func (w *Walker) walkUnaryExpr(uexpr *ast.UnaryExpr) {
	operandType := w.walkExpr(uexpr.Operand)

	switch uexpr.Op.Kind {
	case syntax.TOK_MINUS:
		w.mustBe(uexpr.Operand, operandType, types.PrimTypeInteger, uexpr.Op)
		uexpr.SetType(types.PrimTypeInteger)
	case syntax.TOK_NOT:
		w.mustBe(uexpr.Operand, operandType, types.PrimTypeBoolean, uexpr.Op)
		uexpr.SetType(types.PrimTypeBoolean)
	case syntax.TOK_STAR:
		rt, ok := operandType.(*types.RefType)
		if !ok {
			w.error(
				report.KindTypeMismatch, uexpr.Operand.Span(),
				"cannot dereference a value of type %s", operandType.Repr(),
			)
		}

		uexpr.SetType(rt.ElemType)
	case syntax.TOK_AMP:
		if uexpr.Operand.Category() != ast.LValue {
			w.error(
				report.KindTypeMismatch, uexpr.Operand.Span(),
				"cannot borrow a temporary value",
			)
		}

		// Only named bindings may be borrowed: a borrow names the binding
		// whose scope bounds its lifetime.
		if _, ok := uexpr.Operand.(*ast.Identifier); !ok {
			w.error(
				report.KindTypeMismatch, uexpr.Operand.Span(),
				"only a named binding may be borrowed",
			)
		}

		if _, ok := operandType.(*types.RefType); ok {
			w.error(
				report.KindTypeMismatch, uexpr.Operand.Span(),
				"cannot borrow a borrow",
			)
		}

		if uexpr.MutBorrow {
			w.checkMutable(uexpr.Operand)
		}

		uexpr.SetType(&types.RefType{ElemType: operandType, Mutable: uexpr.MutBorrow})
	}
}

func (w *Walker) walkCallExpr(call *ast.CallExpr) {
	ident, ok := call.Func.(*ast.Identifier)
	if !ok {
		w.error(report.KindTypeMismatch, call.Func.Span(), "expression is not callable")
	}

	w.walkExpr(ident)

	if ident.Sym.DefKind == common.DefKindBuiltin {
		w.walkBuiltinCall(call, ident)
		return
	}

	ft, ok := ident.Sym.Type.(*types.FuncType)
	if !ok || ident.Sym.DefKind != common.DefKindFunc {
		w.error(
			report.KindTypeMismatch, ident.Span(),
			"`%s` is not a मन्त्र and cannot be called", ident.Name,
		)
	}

	if len(call.Args) != len(ft.ParamTypes) {
		w.error(
			report.KindTypeMismatch, call.Span(),
			"मन्त्र `%s` takes %d argument(s); %d given",
			ident.Name, len(ft.ParamTypes), len(call.Args),
		)
	}

	for i, arg := range call.Args {
		argType := w.walkExpr(arg)

		if !types.Equals(argType, ft.ParamTypes[i]) {
			w.error(
				report.KindTypeMismatch, arg.Span(),
				"argument %d of `%s` must be of type %s, not %s",
				i+1, ident.Name, ft.ParamTypes[i].Repr(), argType.Repr(),
			)
		}
	}

	call.SetType(ft.ReturnType)
}

// walkBuiltinCall checks a call to the print builtin, which accepts exactly
// one argument of any primitive value type.
func (w *Walker) walkBuiltinCall(call *ast.CallExpr, ident *ast.Identifier) {
	if len(call.Args) != 1 {
		w.error(
			report.KindTypeMismatch, call.Span(),
			"`%s` takes exactly one argument; %d given", ident.Name, len(call.Args),
		)
	}

	argType := w.walkExpr(call.Args[0])

	switch {
	case types.Equals(argType, types.PrimTypeInteger),
		types.Equals(argType, types.PrimTypeBoolean),
		types.Equals(argType, types.PrimTypeString):
	default:
		w.error(
			report.KindTypeMismatch, call.Args[0].Span(),
			"`%s` cannot print a value of type %s", ident.Name, argType.Repr(),
		)
	}

	call.SetType(types.PrimTypeUnit)
}

// mustBe asserts that an operand has an expected type.
func (w *Walker) mustBe(operand ast.ASTExpr, actual, expected types.Type, op ast.Oper) {
	if !types.Equals(actual, expected) {
		w.error(
			report.KindTypeMismatch, operand.Span(),
			"operand of `%s` must be of type %s, not %s",
			op.Name, expected.Repr(), actual.Repr(),
		)
	}
}
