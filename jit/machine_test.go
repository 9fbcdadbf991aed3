package jit

import (
	"math"
	"reflect"
	"strconv"
	"testing"

	"vaaktra/mir"
	"vaaktra/types"
)

// singleBlockBundle assembles a bundle whose entry is one block of the given
// instructions ending in a plain return.
func singleBlockBundle(numRegs int, instrs ...mir.Instruction) *mir.Bundle {
	block := &mir.Block{Instrs: instrs, Term: &mir.Ret{}}

	entry := &mir.Function{
		Name:       "प्रधानं",
		NumRegs:    numRegs,
		Blocks:     []*mir.Block{block},
		ReturnType: types.PrimTypeUnit,
	}

	return &mir.Bundle{Funcs: []*mir.Function{entry}, Entry: entry}
}

func TestWrappingArithmetic(t *testing.T) {
	bundle := singleBlockBundle(1,
		&mir.BinInstr{Op: mir.OpAdd, Dst: 0, Lhs: mir.ConstInt(9223372036854775807), Rhs: mir.ConstInt(1)},
		&mir.PrintInstr{Arg: mir.Reg(0), ArgType: types.PrimTypeInteger},
	)

	_, output, err := NewMachine(bundle).Run()
	if err != nil {
		t.Fatalf("unexpected fault: %s", err.Error())
	}

	if !reflect.DeepEqual(output, []string{"-9223372036854775808"}) {
		t.Errorf("expected wraparound output; got %v", output)
	}
}

func TestWrappingOverOperatorRange(t *testing.T) {
	// Every arithmetic operator wraps in two's complement.  Go's own int64
	// operations are the reference; the operands cover both extremes and the
	// values around zero.
	operators := []struct {
		name string
		op   int
		gold func(a, b int64) int64
	}{
		{"add", mir.OpAdd, func(a, b int64) int64 { return a + b }},
		{"sub", mir.OpSub, func(a, b int64) int64 { return a - b }},
		{"mul", mir.OpMul, func(a, b int64) int64 { return a * b }},
	}

	bounds := []int64{
		math.MinInt64, math.MinInt64 + 1, -3, -1, 0, 1, 2, math.MaxInt64 - 1, math.MaxInt64,
	}

	for _, operator := range operators {
		for _, a := range bounds {
			for _, b := range bounds {
				bundle := singleBlockBundle(1,
					&mir.BinInstr{Op: operator.op, Dst: 0, Lhs: mir.ConstInt(a), Rhs: mir.ConstInt(b)},
					&mir.PrintInstr{Arg: mir.Reg(0), ArgType: types.PrimTypeInteger},
				)

				_, output, err := NewMachine(bundle).Run()
				if err != nil {
					t.Fatalf("%s(%d, %d): unexpected fault: %s", operator.name, a, b, err.Error())
				}

				if want := strconv.FormatInt(operator.gold(a, b), 10); output[0] != want {
					t.Errorf("%s(%d, %d): expected %s; got %s", operator.name, a, b, want, output[0])
				}
			}
		}
	}
}

func TestModuloByZeroFaults(t *testing.T) {
	bundle := singleBlockBundle(1,
		&mir.BinInstr{Op: mir.OpMod, Dst: 0, Lhs: mir.ConstInt(5), Rhs: mir.ConstInt(0)},
	)

	if _, _, err := NewMachine(bundle).Run(); err == nil {
		t.Fatalf("expected a modulo fault")
	}
}

func TestSlotAddressing(t *testing.T) {
	// Store through a slot address and read the slot back directly.
	bundle := singleBlockBundle(2,
		&mir.StoreInstr{Slot: 0, Src: mir.ConstInt(1)},
		&mir.AddrInstr{Dst: 0, Slot: 0},
		&mir.StoreIndInstr{Addr: mir.Reg(0), Src: mir.ConstInt(42)},
		&mir.LoadInstr{Dst: 1, Slot: 0},
		&mir.PrintInstr{Arg: mir.Reg(1), ArgType: types.PrimTypeInteger},
	)
	bundle.Entry.Slots = []mir.Slot{{Name: "क", Type: types.PrimTypeInteger}}

	_, output, err := NewMachine(bundle).Run()
	if err != nil {
		t.Fatalf("unexpected fault: %s", err.Error())
	}

	if !reflect.DeepEqual(output, []string{"42"}) {
		t.Errorf("expected the indirect store to land in the slot; got %v", output)
	}
}

func TestRunawayRecursionFaults(t *testing.T) {
	// A function that unconditionally calls itself must fault, not crash.
	block := &mir.Block{
		Instrs: []mir.Instruction{&mir.CallInstr{Func: "प्रधानं"}},
		Term:   &mir.Ret{},
	}

	entry := &mir.Function{
		Name:       "प्रधानं",
		Blocks:     []*mir.Block{block},
		ReturnType: types.PrimTypeUnit,
	}

	bundle := &mir.Bundle{Funcs: []*mir.Function{entry}, Entry: entry}

	if _, _, err := NewMachine(bundle).Run(); err == nil {
		t.Fatalf("expected a call depth fault")
	}
}
