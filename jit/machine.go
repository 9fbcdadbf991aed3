package jit

import (
	"fmt"
	"strconv"

	"vaaktra/mir"
	"vaaktra/types"
)

// maxCallDepth bounds recursion so runaway programs fault instead of
// exhausting the host stack.
const maxCallDepth = 1 << 16

// RuntimeFault is an error raised by a program at execution time, such as a
// division by zero.  Faults abort execution immediately.
type RuntimeFault struct {
	// The fault message.
	Msg string
}

func (rf *RuntimeFault) Error() string {
	return rf.Msg
}

// fault aborts execution with a runtime fault.
func fault(msg string, args ...interface{}) {
	panic(&RuntimeFault{Msg: fmt.Sprintf(msg, args...)})
}

// -----------------------------------------------------------------------------

// Machine executes a MIR bundle directly.  It is the execution engine behind
// run mode: functions are interpreted frame by frame, and everything the
// program prints is captured in order.
type Machine struct {
	// The functions of the bundle by name.
	funcs map[string]*mir.Function

	// The entry function.
	entry *mir.Function

	// The lines printed by the program so far, in print order.
	output []string

	// The current call depth.
	depth int
}

// NewMachine creates a machine for a lowered bundle.
func NewMachine(bundle *mir.Bundle) *Machine {
	m := &Machine{
		funcs: make(map[string]*mir.Function, len(bundle.Funcs)),
		entry: bundle.Entry,
	}

	for _, fn := range bundle.Funcs {
		m.funcs[fn.Name] = fn
	}

	return m
}

// Run executes the bundle's entry function.  It returns the entry function's
// return value (zero for unit entries) and the program's captured output.
func (m *Machine) Run() (ret int64, output []string, err error) {
	defer func() {
		if x := recover(); x != nil {
			if rf, ok := x.(*RuntimeFault); ok {
				err = rf
			} else {
				panic(x)
			}
		}
	}()

	val := m.call(m.entry, nil)
	if n, ok := val.(int64); ok {
		ret = n
	}

	return ret, m.output, nil
}

// Output returns the lines printed so far.
func (m *Machine) Output() []string {
	return m.output
}

// -----------------------------------------------------------------------------

// frame is a single function activation: its stack slots and the virtual
// registers of its blocks.  Borrows are pointers directly into the slots
// slice, so writes through a mutable borrow land in the owning frame.
type frame struct {
	slots []interface{}
	regs  []interface{}
}

func (fr *frame) eval(val mir.Value) interface{} {
	switch v := val.(type) {
	case mir.Reg:
		return fr.regs[v]
	case mir.ConstInt:
		return int64(v)
	case mir.ConstBool:
		return bool(v)
	case mir.ConstStr:
		return string(v)
	}

	return nil
}

// call executes a function with the given argument values.
func (m *Machine) call(fn *mir.Function, args []interface{}) interface{} {
	if m.depth++; m.depth > maxCallDepth {
		fault("call depth exceeded %d in `%s`", maxCallDepth, fn.Name)
	}
	defer func() { m.depth-- }()

	fr := &frame{
		slots: make([]interface{}, len(fn.Slots)),
		regs:  make([]interface{}, fn.NumRegs),
	}
	copy(fr.slots, args)

	block := fn.Blocks[0]
	for {
		for _, instr := range block.Instrs {
			m.exec(fr, instr)
		}

		switch term := block.Term.(type) {
		case *mir.Br:
			block = term.Target
		case *mir.CondBr:
			if fr.eval(term.Cond).(bool) {
				block = term.Then
			} else {
				block = term.Else
			}
		case *mir.Ret:
			if term.Value == nil {
				return nil
			}

			return fr.eval(term.Value)
		}
	}
}

func (m *Machine) exec(fr *frame, instr mir.Instruction) {
	switch v := instr.(type) {
	case *mir.BinInstr:
		fr.regs[v.Dst] = execBinOp(v.Op, fr.eval(v.Lhs), fr.eval(v.Rhs))
	case *mir.UnInstr:
		if v.Op == mir.OpNeg {
			fr.regs[v.Dst] = -fr.eval(v.Operand).(int64)
		} else {
			fr.regs[v.Dst] = !fr.eval(v.Operand).(bool)
		}
	case *mir.LoadInstr:
		fr.regs[v.Dst] = fr.slots[v.Slot]
	case *mir.StoreInstr:
		fr.slots[v.Slot] = fr.eval(v.Src)
	case *mir.AddrInstr:
		fr.regs[v.Dst] = &fr.slots[v.Slot]
	case *mir.LoadIndInstr:
		fr.regs[v.Dst] = *fr.eval(v.Addr).(*interface{})
	case *mir.StoreIndInstr:
		*fr.eval(v.Addr).(*interface{}) = fr.eval(v.Src)
	case *mir.CallInstr:
		args := make([]interface{}, len(v.Args))
		for i, arg := range v.Args {
			args[i] = fr.eval(arg)
		}

		result := m.call(m.funcs[v.Func], args)
		if v.HasDst {
			fr.regs[v.Dst] = result
		}
	case *mir.PrintInstr:
		m.print(fr.eval(v.Arg), v.ArgType)
	}
}

// execBinOp applies a binary operator.  Integer arithmetic wraps at the
// 64-bit boundary; division and modulo by zero fault.
func execBinOp(op int, lhs, rhs interface{}) interface{} {
	switch op {
	case mir.OpAdd:
		return lhs.(int64) + rhs.(int64)
	case mir.OpSub:
		return lhs.(int64) - rhs.(int64)
	case mir.OpMul:
		return lhs.(int64) * rhs.(int64)
	case mir.OpDiv:
		if rhs.(int64) == 0 {
			fault("division by zero")
		}

		return lhs.(int64) / rhs.(int64)
	case mir.OpMod:
		if rhs.(int64) == 0 {
			fault("modulo by zero")
		}

		return lhs.(int64) % rhs.(int64)
	case mir.OpEq:
		return lhs == rhs
	case mir.OpNeq:
		return lhs != rhs
	case mir.OpLt:
		return lhs.(int64) < rhs.(int64)
	case mir.OpGt:
		return lhs.(int64) > rhs.(int64)
	case mir.OpLtEq:
		return lhs.(int64) <= rhs.(int64)
	default:
		return lhs.(int64) >= rhs.(int64)
	}
}

// print formats a value the way the print builtin displays it and appends it
// to the captured output.
func (m *Machine) print(val interface{}, typ types.Type) {
	switch {
	case types.Equals(typ, types.PrimTypeBoolean):
		if val.(bool) {
			m.output = append(m.output, "सत्यम्")
		} else {
			m.output = append(m.output, "मिथ्या")
		}
	case types.Equals(typ, types.PrimTypeString):
		m.output = append(m.output, val.(string))
	default:
		m.output = append(m.output, strconv.FormatInt(val.(int64), 10))
	}
}
