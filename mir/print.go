package mir

import (
	"fmt"
	"strconv"
	"strings"

	"vaaktra/util"
)

// Dump renders a bundle as readable text for debugging and for the MIR dump
// compiler mode.
func Dump(bundle *Bundle) string {
	var sb strings.Builder

	for i, fn := range bundle.Funcs {
		if i > 0 {
			sb.WriteRune('\n')
		}

		dumpFunc(&sb, fn)
	}

	return sb.String()
}

func dumpFunc(sb *strings.Builder, fn *Function) {
	fmt.Fprintf(sb, "fn %s(%d) -> %s {\n", fn.Name, fn.NumParams, fn.ReturnType.Repr())

	for i, slot := range fn.Slots {
		fmt.Fprintf(sb, "  slot %d = %s: %s\n", i, slot.Name, slot.Type.Repr())
	}

	for _, block := range fn.Blocks {
		fmt.Fprintf(sb, "bb%d:\n", block.ID)

		for _, instr := range block.Instrs {
			sb.WriteString("  ")
			sb.WriteString(dumpInstr(instr))
			sb.WriteRune('\n')
		}

		sb.WriteString("  ")
		sb.WriteString(dumpTerm(block.Term))
		sb.WriteRune('\n')
	}

	sb.WriteString("}\n")
}

func dumpInstr(instr Instruction) string {
	switch v := instr.(type) {
	case *BinInstr:
		return fmt.Sprintf("r%d = %s %s, %s", v.Dst, opName(v.Op), dumpValue(v.Lhs), dumpValue(v.Rhs))
	case *UnInstr:
		return fmt.Sprintf("r%d = %s %s", v.Dst, opName(v.Op), dumpValue(v.Operand))
	case *LoadInstr:
		return fmt.Sprintf("r%d = load slot %d", v.Dst, v.Slot)
	case *StoreInstr:
		return fmt.Sprintf("store slot %d, %s", v.Slot, dumpValue(v.Src))
	case *AddrInstr:
		return fmt.Sprintf("r%d = addr slot %d", v.Dst, v.Slot)
	case *LoadIndInstr:
		return fmt.Sprintf("r%d = load [%s]", v.Dst, dumpValue(v.Addr))
	case *StoreIndInstr:
		return fmt.Sprintf("store [%s], %s", dumpValue(v.Addr), dumpValue(v.Src))
	case *CallInstr:
		call := fmt.Sprintf("call %s(%s)", v.Func, strings.Join(util.Map(v.Args, dumpValue), ", "))
		if v.HasDst {
			return fmt.Sprintf("r%d = %s", v.Dst, call)
		}

		return call
	case *PrintInstr:
		return fmt.Sprintf("print %s: %s", dumpValue(v.Arg), v.ArgType.Repr())
	}

	return "<unknown instruction>"
}

func dumpTerm(term Terminator) string {
	switch v := term.(type) {
	case *Br:
		return fmt.Sprintf("br bb%d", v.Target.ID)
	case *CondBr:
		return fmt.Sprintf("condbr %s, bb%d, bb%d", dumpValue(v.Cond), v.Then.ID, v.Else.ID)
	case *Ret:
		if v.Value == nil {
			return "ret"
		}

		return fmt.Sprintf("ret %s", dumpValue(v.Value))
	}

	return "<unknown terminator>"
}

func dumpValue(val Value) string {
	switch v := val.(type) {
	case Reg:
		return fmt.Sprintf("r%d", v)
	case ConstInt:
		return strconv.FormatInt(int64(v), 10)
	case ConstBool:
		return strconv.FormatBool(bool(v))
	case ConstStr:
		return strconv.Quote(string(v))
	}

	return "<unknown value>"
}

func opName(op int) string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpLt:
		return "lt"
	case OpGt:
		return "gt"
	case OpLtEq:
		return "lteq"
	case OpGtEq:
		return "gteq"
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	}

	return "<unknown op>"
}
