package lower

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/mir"
	"vaaktra/syntax"
	"vaaktra/types"
)

// Lower lowers a fully-analyzed program to MIR.  Lowering assumes analysis
// succeeded: every expression is typed, every identifier resolved, and every
// non-unit function returns on all paths.
func Lower(prog *ast.Program) *mir.Bundle {
	bundle := &mir.Bundle{}

	for _, fn := range prog.Funcs {
		lowered := lowerFunc(fn)
		bundle.Funcs = append(bundle.Funcs, lowered)

		if fn.Symbol.Name == syntax.EntryFuncName {
			bundle.Entry = lowered
		}
	}

	return bundle
}

// lowerer lowers a single function.
type lowerer struct {
	// The function being built.
	fn *mir.Function

	// The block instructions are currently appended to.
	block *mir.Block
}

func lowerFunc(fn *ast.FuncDef) *mir.Function {
	ft := fn.Symbol.Type.(*types.FuncType)

	l := &lowerer{
		fn: &mir.Function{
			Name:       fn.Symbol.Name,
			NumParams:  len(fn.Params),
			ReturnType: ft.ReturnType,
		},
	}

	// Parameters occupy the leading frame slots in declaration order.
	for _, param := range fn.Params {
		param.Slot = l.newSlot(param.Name, param.Type)
	}

	l.block = l.newBlock()
	l.lowerBlock(fn.Body)

	// Fallthrough off the end of the body.  For non-unit functions this is
	// unreachable, but every block still carries a terminator.
	if l.block.Term == nil {
		if types.IsUnit(ft.ReturnType) {
			l.block.Term = &mir.Ret{}
		} else {
			l.block.Term = &mir.Ret{Value: zeroValue(ft.ReturnType)}
		}
	}

	return l.fn
}

// -----------------------------------------------------------------------------

// newSlot appends a stack slot to the frame and returns its index.
func (l *lowerer) newSlot(name string, typ types.Type) int {
	l.fn.Slots = append(l.fn.Slots, mir.Slot{Name: name, Type: typ})
	return len(l.fn.Slots) - 1
}

// newReg allocates a fresh virtual register.
func (l *lowerer) newReg() mir.Reg {
	r := mir.Reg(l.fn.NumRegs)
	l.fn.NumRegs++
	return r
}

// newBlock appends a fresh basic block to the function.
func (l *lowerer) newBlock() *mir.Block {
	block := &mir.Block{ID: len(l.fn.Blocks)}
	l.fn.Blocks = append(l.fn.Blocks, block)
	return block
}

// emit appends an instruction to the current block.
func (l *lowerer) emit(instr mir.Instruction) {
	l.block.Instrs = append(l.block.Instrs, instr)
}

// setTerm terminates the current block.
func (l *lowerer) setTerm(term mir.Terminator) {
	l.block.Term = term
}

// zeroValue returns the constant zero value of a type.
func zeroValue(typ types.Type) mir.Value {
	switch {
	case types.Equals(typ, types.PrimTypeBoolean):
		return mir.ConstBool(false)
	case types.Equals(typ, types.PrimTypeString):
		return mir.ConstStr("")
	default:
		return mir.ConstInt(0)
	}
}

// -----------------------------------------------------------------------------

func (l *lowerer) lowerBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		// Statements after a terminator are unreachable; lowering drops them.
		if l.block.Term != nil {
			break
		}

		l.lowerStmt(stmt)
	}
}

func (l *lowerer) lowerStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		v.Sym.Slot = l.newSlot(v.Sym.Name, v.Sym.Type)
		init := l.lowerExpr(v.Initializer)
		l.emit(&mir.StoreInstr{Slot: v.Sym.Slot, Src: init})
	case *ast.IfTree:
		l.lowerIfTree(v)
	case *ast.WhileLoop:
		l.lowerWhileLoop(v)
	case *ast.ReturnStmt:
		if v.Expr == nil {
			l.setTerm(&mir.Ret{})
		} else {
			l.setTerm(&mir.Ret{Value: l.lowerExpr(v.Expr)})
		}
	case *ast.ExprStmt:
		l.lowerExpr(v.Expr)
	}
}

func (l *lowerer) lowerIfTree(tree *ast.IfTree) {
	exit := &mir.Block{}
	reachable := false

	for _, branch := range tree.CondBranches {
		cond := l.lowerExpr(branch.Condition)

		thenBlock := l.newBlock()
		elseBlock := l.newBlock()
		l.setTerm(&mir.CondBr{Cond: cond, Then: thenBlock, Else: elseBlock})

		l.block = thenBlock
		l.lowerBlock(branch.Body)

		if l.block.Term == nil {
			l.setTerm(&mir.Br{Target: exit})
			reachable = true
		}

		l.block = elseBlock
	}

	if tree.ElseBranch != nil {
		l.lowerBlock(tree.ElseBranch)
	}

	if l.block.Term == nil {
		l.setTerm(&mir.Br{Target: exit})
		reachable = true
	}

	// The exit block is only materialized if some branch reaches it.
	if reachable {
		exit.ID = len(l.fn.Blocks)
		l.fn.Blocks = append(l.fn.Blocks, exit)
		l.block = exit
	}
}

func (l *lowerer) lowerWhileLoop(loop *ast.WhileLoop) {
	header := l.newBlock()
	l.setTerm(&mir.Br{Target: header})

	l.block = header
	cond := l.lowerExpr(loop.Condition)

	body := l.newBlock()
	exit := l.newBlock()
	l.setTerm(&mir.CondBr{Cond: cond, Then: body, Else: exit})

	l.block = body
	l.lowerBlock(loop.Body)

	if l.block.Term == nil {
		l.setTerm(&mir.Br{Target: header})
	}

	l.block = exit
}

// -----------------------------------------------------------------------------

// slotOf returns the stack slot of a resolved identifier.
func slotOf(expr ast.ASTExpr) int {
	return expr.(*ast.Identifier).Sym.Slot
}

// isBuiltin reports whether a call expression targets a predeclared builtin.
func isBuiltin(call *ast.CallExpr) bool {
	ident := call.Func.(*ast.Identifier)
	return ident.Sym.DefKind == common.DefKindBuiltin
}
