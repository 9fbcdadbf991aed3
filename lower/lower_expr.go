package lower

import (
	"fmt"

	"vaaktra/ast"
	"vaaktra/mir"
	"vaaktra/syntax"
	"vaaktra/types"
)

// binOps maps binary operator token kinds to MIR operator codes.  The
// short-circuiting logical operators are absent: they lower to control flow.
var binOps = map[int]int{
	syntax.TOK_PLUS:  mir.OpAdd,
	syntax.TOK_MINUS: mir.OpSub,
	syntax.TOK_STAR:  mir.OpMul,
	syntax.TOK_DIV:   mir.OpDiv,
	syntax.TOK_MOD:   mir.OpMod,
	syntax.TOK_EQ:    mir.OpEq,
	syntax.TOK_NEQ:   mir.OpNeq,
	syntax.TOK_LT:    mir.OpLt,
	syntax.TOK_GT:    mir.OpGt,
	syntax.TOK_LTEQ:  mir.OpLtEq,
	syntax.TOK_GTEQ:  mir.OpGtEq,
}

// lowerExpr lowers an expression and returns the operand holding its value.
// Unit-typed expressions return nil.
func (l *lowerer) lowerExpr(expr ast.ASTExpr) mir.Value {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		return l.lowerBinaryExpr(v)
	case *ast.UnaryExpr:
		return l.lowerUnaryExpr(v)
	case *ast.CallExpr:
		return l.lowerCallExpr(v)
	case *ast.Literal:
		switch val := v.Value.(type) {
		case int64:
			return mir.ConstInt(val)
		case bool:
			return mir.ConstBool(val)
		case string:
			return mir.ConstStr(val)
		}
	case *ast.Identifier:
		dst := l.newReg()
		l.emit(&mir.LoadInstr{Dst: dst, Slot: v.Sym.Slot})
		return dst
	}

	panic(fmt.Sprintf("cannot lower expression of type %T", expr))
}

func (l *lowerer) lowerBinaryExpr(bexpr *ast.BinaryExpr) mir.Value {
	switch bexpr.Op.Kind {
	case syntax.TOK_ASSIGN:
		l.lowerAssignment(bexpr)
		return nil
	case syntax.TOK_LAND, syntax.TOK_LOR:
		return l.lowerLogicExpr(bexpr)
	}

	lhs := l.lowerExpr(bexpr.Lhs)
	rhs := l.lowerExpr(bexpr.Rhs)

	dst := l.newReg()
	l.emit(&mir.BinInstr{Op: binOps[bexpr.Op.Kind], Dst: dst, Lhs: lhs, Rhs: rhs})
	return dst
}

func (l *lowerer) lowerAssignment(bexpr *ast.BinaryExpr) {
	rhs := l.lowerExpr(bexpr.Rhs)

	if deref, ok := bexpr.Lhs.(*ast.UnaryExpr); ok {
		addr := l.lowerExpr(deref.Operand)
		l.emit(&mir.StoreIndInstr{Addr: addr, Src: rhs})
		return
	}

	l.emit(&mir.StoreInstr{Slot: slotOf(bexpr.Lhs), Src: rhs})
}

// lowerLogicExpr lowers a short-circuiting logical expression to control
// flow: the right operand only evaluates when the left does not decide the
// result.  The result travels through a temporary slot since it is produced
// on two different paths.
func (l *lowerer) lowerLogicExpr(bexpr *ast.BinaryExpr) mir.Value {
	tmp := l.newSlot(".logic", types.PrimTypeBoolean)

	lhs := l.lowerExpr(bexpr.Lhs)
	l.emit(&mir.StoreInstr{Slot: tmp, Src: lhs})

	rhsBlock := l.newBlock()
	exit := l.newBlock()

	if bexpr.Op.Kind == syntax.TOK_LAND {
		l.setTerm(&mir.CondBr{Cond: lhs, Then: rhsBlock, Else: exit})
	} else {
		l.setTerm(&mir.CondBr{Cond: lhs, Then: exit, Else: rhsBlock})
	}

	l.block = rhsBlock
	rhs := l.lowerExpr(bexpr.Rhs)
	l.emit(&mir.StoreInstr{Slot: tmp, Src: rhs})
	l.setTerm(&mir.Br{Target: exit})

	l.block = exit
	dst := l.newReg()
	l.emit(&mir.LoadInstr{Dst: dst, Slot: tmp})
	return dst
}

func (l *lowerer) lowerUnaryExpr(uexpr *ast.UnaryExpr) mir.Value {
	switch uexpr.Op.Kind {
	case syntax.TOK_AMP:
		dst := l.newReg()
		l.emit(&mir.AddrInstr{Dst: dst, Slot: slotOf(uexpr.Operand)})
		return dst
	case syntax.TOK_STAR:
		addr := l.lowerExpr(uexpr.Operand)
		dst := l.newReg()
		l.emit(&mir.LoadIndInstr{Dst: dst, Addr: addr})
		return dst
	}

	operand := l.lowerExpr(uexpr.Operand)
	dst := l.newReg()

	if uexpr.Op.Kind == syntax.TOK_MINUS {
		l.emit(&mir.UnInstr{Op: mir.OpNeg, Dst: dst, Operand: operand})
	} else {
		l.emit(&mir.UnInstr{Op: mir.OpNot, Dst: dst, Operand: operand})
	}

	return dst
}

func (l *lowerer) lowerCallExpr(call *ast.CallExpr) mir.Value {
	if isBuiltin(call) {
		arg := l.lowerExpr(call.Args[0])
		l.emit(&mir.PrintInstr{Arg: arg, ArgType: call.Args[0].Type()})
		return nil
	}

	args := make([]mir.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = l.lowerExpr(arg)
	}

	ident := call.Func.(*ast.Identifier)
	instr := &mir.CallInstr{Func: ident.Name, Args: args}

	if !types.IsUnit(call.Type()) {
		instr.Dst = l.newReg()
		instr.HasDst = true
	}

	l.emit(instr)

	if instr.HasDst {
		return instr.Dst
	}

	return nil
}
