package walk

import (
	"vaaktra/ast"
	"vaaktra/report"
	"vaaktra/types"
)

// alwaysReturns reports whether a block returns on every path through it.
// Loops never count: a loop's body may run zero times.
func alwaysReturns(block *ast.Block) bool {
	for _, stmt := range block.Stmts {
		switch v := stmt.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.IfTree:
			if v.ElseBranch == nil || !alwaysReturns(v.ElseBranch) {
				continue
			}

			all := true
			for _, branch := range v.CondBranches {
				if !alwaysReturns(branch.Body) {
					all = false
					break
				}
			}

			if all {
				return true
			}
		}
	}

	return false
}

// walkBlock walks a block in a fresh scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope()
	defer w.popScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}
}

// walkStmt walks a statement.
func (w *Walker) walkStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		w.walkVarDecl(v)
	case *ast.IfTree:
		for _, branch := range v.CondBranches {
			w.walkCondition(branch.Condition)
			w.walkBlock(branch.Body)
		}

		if v.ElseBranch != nil {
			w.walkBlock(v.ElseBranch)
		}
	case *ast.WhileLoop:
		w.walkCondition(v.Condition)
		w.walkBlock(v.Body)
	case *ast.ReturnStmt:
		w.walkReturnStmt(v)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	}
}

func (w *Walker) walkVarDecl(vd *ast.VarDecl) {
	initType := w.walkExpr(vd.Initializer)

	if !types.Equals(vd.Sym.Type, initType) {
		w.error(
			report.KindTypeMismatch, vd.Initializer.Span(),
			"cannot initialize `%s` of type %s with a value of type %s",
			vd.Sym.Name, vd.Sym.Type.Repr(), initType.Repr(),
		)
	}

	// The initializer is walked before the binding is defined, so a
	// declaration never refers to itself.
	w.define(vd.Sym)
}

// walkCondition walks a यदि or यावत् condition, which must be boolean.
func (w *Walker) walkCondition(cond ast.ASTExpr) {
	condType := w.walkExpr(cond)

	if !types.Equals(condType, types.PrimTypeBoolean) {
		w.error(
			report.KindConditionTypeError, cond.Span(),
			"condition must be of type सत्यासत्य, not %s", condType.Repr(),
		)
	}
}

func (w *Walker) walkReturnStmt(ret *ast.ReturnStmt) {
	ft := w.enclosing.Symbol.Type.(*types.FuncType)

	if ret.Expr == nil {
		if !types.IsUnit(ft.ReturnType) {
			w.error(
				report.KindTypeMismatch, ret.Span(),
				"मन्त्र `%s` must return a value of type %s",
				w.enclosing.Symbol.Name, ft.ReturnType.Repr(),
			)
		}

		return
	}

	exprType := w.walkExpr(ret.Expr)

	if !types.Equals(exprType, ft.ReturnType) {
		w.error(
			report.KindTypeMismatch, ret.Expr.Span(),
			"मन्त्र `%s` returns %s, not %s",
			w.enclosing.Symbol.Name, ft.ReturnType.Repr(), exprType.Repr(),
		)
	}
}
