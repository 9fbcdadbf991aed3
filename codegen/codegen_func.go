package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"vaaktra/mir"
	"vaaktra/types"
)

// funcGen holds the per-function generation state.
type funcGen struct {
	ctx *Context

	// The stack slot allocas, indexed by MIR slot.
	slots []value.Value

	// The generated values of the MIR registers.
	regs []value.Value

	// The generated blocks, indexed by MIR block ID.
	blocks []*ir.Block
}

// generateFunc generates the body of a declared function.
func (ctx *Context) generateFunc(fn *mir.Function) {
	f := ctx.funcs[fn.Name]

	fg := &funcGen{
		ctx:    ctx,
		slots:  make([]value.Value, len(fn.Slots)),
		regs:   make([]value.Value, fn.NumRegs),
		blocks: make([]*ir.Block, len(fn.Blocks)),
	}

	// All frame slots are allocated in a dedicated variable block which
	// branches to the first body block.
	varBlock := f.NewBlock("vars")
	for i, slot := range fn.Slots {
		fg.slots[i] = varBlock.NewAlloca(ctx.llType(slot.Type))
	}

	for i := 0; i < fn.NumParams; i++ {
		varBlock.NewStore(f.Params[i], fg.slots[i])
	}

	for i, block := range fn.Blocks {
		fg.blocks[i] = f.NewBlock(fmt.Sprintf("bb%d", block.ID))
	}

	varBlock.NewBr(fg.blocks[0])

	for i, block := range fn.Blocks {
		fg.generateBlock(fg.blocks[i], block)
	}
}

func (fg *funcGen) generateBlock(llBlock *ir.Block, block *mir.Block) {
	for _, instr := range block.Instrs {
		fg.generateInstr(llBlock, instr)
	}

	switch term := block.Term.(type) {
	case *mir.Br:
		llBlock.NewBr(fg.blocks[term.Target.ID])
	case *mir.CondBr:
		llBlock.NewCondBr(fg.eval(llBlock, term.Cond), fg.blocks[term.Then.ID], fg.blocks[term.Else.ID])
	case *mir.Ret:
		if term.Value == nil {
			llBlock.NewRet(nil)
		} else {
			llBlock.NewRet(fg.eval(llBlock, term.Value))
		}
	}
}

func (fg *funcGen) generateInstr(block *ir.Block, instr mir.Instruction) {
	switch v := instr.(type) {
	case *mir.BinInstr:
		fg.regs[v.Dst] = fg.generateBinOp(block, v)
	case *mir.UnInstr:
		operand := fg.eval(block, v.Operand)

		if v.Op == mir.OpNeg {
			fg.regs[v.Dst] = block.NewSub(constant.NewInt(lltypes.I64, 0), operand)
		} else {
			fg.regs[v.Dst] = block.NewXor(operand, constant.NewBool(true))
		}
	case *mir.LoadInstr:
		alloca := fg.slots[v.Slot]
		fg.regs[v.Dst] = block.NewLoad(elemTypeOf(alloca), alloca)
	case *mir.StoreInstr:
		block.NewStore(fg.eval(block, v.Src), fg.slots[v.Slot])
	case *mir.AddrInstr:
		// A borrow is the address of the borrowed binding's slot.
		fg.regs[v.Dst] = fg.slots[v.Slot]
	case *mir.LoadIndInstr:
		addr := fg.eval(block, v.Addr)
		fg.regs[v.Dst] = block.NewLoad(elemTypeOf(addr), addr)
	case *mir.StoreIndInstr:
		block.NewStore(fg.eval(block, v.Src), fg.eval(block, v.Addr))
	case *mir.CallInstr:
		args := make([]value.Value, len(v.Args))
		for i, arg := range v.Args {
			args[i] = fg.eval(block, arg)
		}

		call := block.NewCall(fg.ctx.funcs[v.Func], args...)
		if v.HasDst {
			fg.regs[v.Dst] = call
		}
	case *mir.PrintInstr:
		arg := fg.eval(block, v.Arg)

		switch {
		case types.Equals(v.ArgType, types.PrimTypeBoolean):
			block.NewCall(fg.ctx.printBool, arg)
		case types.Equals(v.ArgType, types.PrimTypeString):
			block.NewCall(fg.ctx.printStr, arg)
		default:
			block.NewCall(fg.ctx.printI64, arg)
		}
	}
}

func (fg *funcGen) generateBinOp(block *ir.Block, instr *mir.BinInstr) value.Value {
	lhs := fg.eval(block, instr.Lhs)
	rhs := fg.eval(block, instr.Rhs)

	switch instr.Op {
	case mir.OpAdd:
		return block.NewAdd(lhs, rhs)
	case mir.OpSub:
		return block.NewSub(lhs, rhs)
	case mir.OpMul:
		return block.NewMul(lhs, rhs)
	case mir.OpDiv:
		return block.NewSDiv(lhs, rhs)
	case mir.OpMod:
		return block.NewSRem(lhs, rhs)
	case mir.OpEq:
		return block.NewICmp(enum.IPredEQ, lhs, rhs)
	case mir.OpNeq:
		return block.NewICmp(enum.IPredNE, lhs, rhs)
	case mir.OpLt:
		return block.NewICmp(enum.IPredSLT, lhs, rhs)
	case mir.OpGt:
		return block.NewICmp(enum.IPredSGT, lhs, rhs)
	case mir.OpLtEq:
		return block.NewICmp(enum.IPredSLE, lhs, rhs)
	default:
		return block.NewICmp(enum.IPredSGE, lhs, rhs)
	}
}

// eval maps a MIR operand to its generated LLVM value.
func (fg *funcGen) eval(block *ir.Block, val mir.Value) value.Value {
	switch v := val.(type) {
	case mir.Reg:
		return fg.regs[v]
	case mir.ConstInt:
		return constant.NewInt(lltypes.I64, int64(v))
	case mir.ConstBool:
		return constant.NewBool(bool(v))
	case mir.ConstStr:
		return fg.ctx.internString(block, string(v))
	}

	return nil
}

// elemTypeOf returns the pointee type of a pointer-typed value.
func elemTypeOf(ptr value.Value) lltypes.Type {
	return ptr.Type().(*lltypes.PointerType).ElemType
}
