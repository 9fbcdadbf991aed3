package walk

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/report"
	"vaaktra/syntax"
	"vaaktra/types"
)

// ownershipWalker verifies the ownership and borrow rules of a well-typed
// program.  Ownership is checked lexically: a move in any branch counts as a
// move for all code after the branch point, and loop bodies are checked as if
// they run at least twice, so a value moved in one iteration is already gone
// by the next.  Borrows live until their holding binding's scope exits;
// borrows that are never bound live for their enclosing statement.
type ownershipWalker struct {
	// The reporter the walker reports errors to.
	reporter *report.Reporter

	// The live borrows of each borrowed binding.
	borrows map[*common.Symbol]*borrowSet

	// The borrows to release when each open scope exits.  The innermost
	// scope's releases are at the end of the slice.
	scopeBorrows [][]*common.Symbol

	// The unbound borrows of the statement currently being checked, released
	// when the statement completes.
	stmtBorrows []*common.Symbol

	// Every move-semantic binding seen so far in the current function.  Used
	// to snapshot and merge ownership states around branches.
	tracked []*common.Symbol
}

// borrowSet records the live borrows of a single binding.
type borrowSet struct {
	// The number of live shared borrows.
	shared int

	// Whether a mutable borrow is live.  A mutable borrow is exclusive: it
	// coexists with no other borrow and blocks direct use of the binding.
	mutable bool
}

func newOwnershipWalker(reporter *report.Reporter) *ownershipWalker {
	return &ownershipWalker{
		reporter: reporter,
		borrows:  make(map[*common.Symbol]*borrowSet),
	}
}

// error reports an ownership error and aborts checking of the current
// definition.
func (ow *ownershipWalker) error(kind int, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// -----------------------------------------------------------------------------

// checkFuncDef checks ownership within a single function definition.  The
// first violation aborts checking of that definition only.
func (ow *ownershipWalker) checkFuncDef(fn *ast.FuncDef) {
	defer ow.reporter.Catch()

	ow.borrows = make(map[*common.Symbol]*borrowSet)
	ow.scopeBorrows = nil
	ow.stmtBorrows = nil
	ow.tracked = nil

	ow.pushScope()
	defer ow.popScope()

	for _, param := range fn.Params {
		ow.declare(param)
	}

	ow.checkBlock(fn.Body)
}

func (ow *ownershipWalker) checkBlock(block *ast.Block) {
	ow.pushScope()
	defer ow.popScope()

	for _, stmt := range block.Stmts {
		ow.checkStmt(stmt)

		// Unbound borrows last only for their statement.
		for _, sym := range ow.stmtBorrows {
			ow.release(sym)
		}
		ow.stmtBorrows = nil
	}
}

func (ow *ownershipWalker) checkStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		ow.checkVarDecl(v)
	case *ast.IfTree:
		ow.checkIfTree(v)
	case *ast.WhileLoop:
		ow.checkExpr(v.Condition, false)

		// The body is checked twice: anything moved by one iteration is
		// already moved when the next begins.
		ow.checkBlock(v.Body)
		ow.checkBlock(v.Body)
	case *ast.ReturnStmt:
		if v.Expr != nil {
			ow.checkExpr(v.Expr, true)
		}
	case *ast.ExprStmt:
		ow.checkExpr(v.Expr, true)
	}
}

func (ow *ownershipWalker) checkVarDecl(vd *ast.VarDecl) {
	// A borrow bound by a declaration outlives its statement: it is released
	// when the declaring scope exits.
	if _, isRef := vd.Sym.Type.(*types.RefType); isRef {
		ow.checkBorrowBind(vd.Initializer)
	} else {
		ow.checkExpr(vd.Initializer, true)
	}

	ow.declare(vd.Sym)
}

// checkBorrowBind checks an expression whose borrow is captured by a
// ref-typed binding, extending the borrow's lifetime to the binding's scope.
func (ow *ownershipWalker) checkBorrowBind(init ast.ASTExpr) {
	before := len(ow.stmtBorrows)
	ow.checkExpr(init, false)

	// Rebind a borrow opened by the initializer to the enclosing scope.  A
	// ref binding copied from another ref binding opens no new borrow.
	if n := len(ow.stmtBorrows); n > before {
		sym := ow.stmtBorrows[n-1]
		ow.stmtBorrows = ow.stmtBorrows[:n-1]

		top := len(ow.scopeBorrows) - 1
		ow.scopeBorrows[top] = append(ow.scopeBorrows[top], sym)
	}
}

// checkIfTree checks an if tree, merging the ownership effects of its
// branches: a value moved in any branch is moved after the tree.
func (ow *ownershipWalker) checkIfTree(tree *ast.IfTree) {
	merged := ow.snapshot()

	// Conditions accumulate: each sits on the path to every later branch.
	// Bodies are alternatives layered on top of the condition state.
	for _, branch := range tree.CondBranches {
		ow.checkExpr(branch.Condition, false)
		ow.mergeInto(merged)

		condState := ow.snapshot()
		ow.checkBlock(branch.Body)
		ow.mergeInto(merged)
		ow.restore(condState)
	}

	if tree.ElseBranch != nil {
		ow.checkBlock(tree.ElseBranch)
		ow.mergeInto(merged)
	}

	ow.restore(merged)
}

// -----------------------------------------------------------------------------

// checkExpr checks ownership within an expression.  moveCtx indicates whether
// the expression's value is consumed: moved into a binding, an argument, a
// return, or simply discarded.
func (ow *ownershipWalker) checkExpr(expr ast.ASTExpr, moveCtx bool) {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		if v.Op.Kind == syntax.TOK_ASSIGN {
			ow.checkAssignment(v)
			return
		}

		// Non-assignment operators are defined on copy types only.
		ow.checkExpr(v.Lhs, false)
		ow.checkExpr(v.Rhs, false)
	case *ast.UnaryExpr:
		if v.Op.Kind == syntax.TOK_AMP {
			ow.checkBorrow(v)
			return
		}

		ow.checkExpr(v.Operand, false)
	case *ast.CallExpr:
		ow.checkCall(v)
	case *ast.Identifier:
		ow.checkUse(v, moveCtx)
	}
}

func (ow *ownershipWalker) checkAssignment(bexpr *ast.BinaryExpr) {
	if ident, ok := bexpr.Lhs.(*ast.Identifier); ok {
		// A borrow assigned into a ref binding outlives its statement exactly
		// like a declaration-bound borrow: the binding holds it until its
		// scope exits.
		if _, isRef := ident.Sym.Type.(*types.RefType); isRef {
			ow.checkBorrowBind(bexpr.Rhs)
		} else {
			ow.checkExpr(bexpr.Rhs, true)
		}

		// Writing directly to a borrowed binding would invalidate its
		// borrows.  Writing through a mutable borrow is what the borrow is
		// for.
		if bs := ow.borrows[ident.Sym]; bs != nil && (bs.shared > 0 || bs.mutable) {
			ow.error(
				report.KindBorrowConflict, ident.Span(),
				"cannot assign to `%s` while it is borrowed", ident.Name,
			)
		}

		// Assignment re-initializes the binding: a moved-out binding owns a
		// value again after being assigned.
		ident.Sym.Ownership = common.Owned
		ident.Sym.MoveSpan = nil
		return
	}

	ow.checkExpr(bexpr.Rhs, true)

	// Dereference target: check the borrow binding itself is usable.
	deref := bexpr.Lhs.(*ast.UnaryExpr)
	ow.checkExpr(deref.Operand, false)
}

// checkBorrow checks a borrow expression and registers the new borrow as
// live for the current statement.
func (ow *ownershipWalker) checkBorrow(borrow *ast.UnaryExpr) {
	ident := borrow.Operand.(*ast.Identifier)
	sym := ident.Sym

	if sym.Ownership == common.Moved {
		ow.useAfterMove(ident)
	}

	bs := ow.borrows[sym]
	if bs == nil {
		bs = &borrowSet{}
		ow.borrows[sym] = bs
	}

	if bs.mutable {
		ow.error(
			report.KindBorrowConflict, borrow.Span(),
			"cannot borrow `%s`: it is already mutably borrowed", ident.Name,
		)
	}

	if borrow.MutBorrow {
		if bs.shared > 0 {
			ow.error(
				report.KindBorrowConflict, borrow.Span(),
				"cannot mutably borrow `%s`: it is already borrowed", ident.Name,
			)
		}

		bs.mutable = true
		sym.Ownership = common.BorrowedMutable
	} else {
		bs.shared++
		sym.Ownership = common.BorrowedShared
	}

	ow.stmtBorrows = append(ow.stmtBorrows, sym)
}

func (ow *ownershipWalker) checkCall(call *ast.CallExpr) {
	ident := call.Func.(*ast.Identifier)

	// The print builtin only reads its argument; it never takes ownership.
	moveArgs := ident.Sym.DefKind != common.DefKindBuiltin

	for _, arg := range call.Args {
		ow.checkExpr(arg, moveArgs)
	}
}

// checkUse checks a direct use of a binding.
func (ow *ownershipWalker) checkUse(ident *ast.Identifier, moveCtx bool) {
	sym := ident.Sym
	if sym.DefKind != common.DefKindValue {
		return
	}

	if sym.Ownership == common.Moved {
		ow.useAfterMove(ident)
	}

	bs := ow.borrows[sym]

	// A mutable borrow is exclusive even against reads of the binding.
	if bs != nil && bs.mutable {
		ow.error(
			report.KindBorrowConflict, ident.Span(),
			"cannot use `%s` while it is mutably borrowed", ident.Name,
		)
	}

	if !moveCtx || !types.IsMoveSemantic(sym.Type) {
		return
	}

	if bs != nil && bs.shared > 0 {
		ow.error(
			report.KindBorrowConflict, ident.Span(),
			"cannot move `%s` while it is borrowed", ident.Name,
		)
	}

	sym.Ownership = common.Moved
	sym.MoveSpan = ident.Span()
}

func (ow *ownershipWalker) useAfterMove(ident *ast.Identifier) {
	ow.error(
		report.KindUseAfterMove, ident.Span(),
		"use of moved value `%s`: its value was moved away at line %d",
		ident.Name, ident.Sym.MoveSpan.StartLine,
	)
}

// -----------------------------------------------------------------------------

func (ow *ownershipWalker) pushScope() {
	ow.scopeBorrows = append(ow.scopeBorrows, nil)
}

func (ow *ownershipWalker) popScope() {
	top := len(ow.scopeBorrows) - 1

	for _, sym := range ow.scopeBorrows[top] {
		ow.release(sym)
	}

	ow.scopeBorrows = ow.scopeBorrows[:top]
}

// declare registers a fresh binding with the walker.  Declarations inside
// loop bodies are rechecked, so the binding's ownership state is reset here.
func (ow *ownershipWalker) declare(sym *common.Symbol) {
	sym.Ownership = common.Owned
	sym.MoveSpan = nil
	delete(ow.borrows, sym)

	if types.IsMoveSemantic(sym.Type) {
		ow.tracked = append(ow.tracked, sym)
	}
}

// release ends one borrow of sym: the most restrictive live borrow first.
func (ow *ownershipWalker) release(sym *common.Symbol) {
	bs := ow.borrows[sym]
	if bs == nil {
		return
	}

	if bs.mutable {
		bs.mutable = false
	} else if bs.shared > 0 {
		bs.shared--
	}

	if !bs.mutable && bs.shared == 0 {
		delete(ow.borrows, sym)

		if sym.Ownership != common.Moved {
			sym.Ownership = common.Owned
		}
	}
}

// ownState is a snapshot of one binding's ownership for branch merging.
type ownState struct {
	ownership int
	moveSpan  *report.TextSpan
}

func (ow *ownershipWalker) snapshot() map[*common.Symbol]ownState {
	snap := make(map[*common.Symbol]ownState, len(ow.tracked))
	for _, sym := range ow.tracked {
		snap[sym] = ownState{ownership: sym.Ownership, moveSpan: sym.MoveSpan}
	}

	return snap
}

func (ow *ownershipWalker) restore(snap map[*common.Symbol]ownState) {
	for sym, state := range snap {
		sym.Ownership = state.ownership
		sym.MoveSpan = state.moveSpan
	}
}

// mergeInto folds the current ownership states into a merged snapshot:
// a binding moved in the current branch is moved in the merge.
func (ow *ownershipWalker) mergeInto(merged map[*common.Symbol]ownState) {
	for _, sym := range ow.tracked {
		if sym.Ownership == common.Moved {
			merged[sym] = ownState{ownership: common.Moved, moveSpan: sym.MoveSpan}
		}
	}
}
