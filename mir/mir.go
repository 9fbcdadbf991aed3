package mir

import "vaaktra/types"

// Bundle is a lowered program: the single unit shared by every backend.  The
// JIT interprets it directly; the LLVM backend translates it to IR.  Each
// function is a register machine over a flat frame of named stack slots and
// an unbounded set of virtual registers, organized into basic blocks.
type Bundle struct {
	// The functions of the bundle, in definition order.
	Funcs []*Function

	// The entry function of the bundle.
	Entry *Function
}

// Function is a single lowered function.
type Function struct {
	// The source-level name of the function.
	Name string

	// The number of parameters.  Parameters occupy the first NumParams stack
	// slots in declaration order.
	NumParams int

	// The stack slots of the function's frame.
	Slots []Slot

	// The number of virtual registers the function's blocks use.
	NumRegs int

	// The basic blocks of the function.  The first block is the entry block.
	Blocks []*Block

	// The return type of the function.
	ReturnType types.Type
}

// Slot is a single stack slot: the storage of one source-level binding or
// lowering-introduced temporary.
type Slot struct {
	// The source name of the binding, or a `.`-prefixed name for lowering
	// temporaries.
	Name string

	// The type of values the slot stores.
	Type types.Type
}

// Block is a basic block: a straight-line run of instructions ended by
// exactly one terminator.
type Block struct {
	// The block's ID, unique within its function.
	ID int

	// The instructions of the block, in execution order.
	Instrs []Instruction

	// The block's terminator.
	Term Terminator
}

// -----------------------------------------------------------------------------

// Value is a virtual register or constant operand.
type Value interface {
	value()
}

// Reg is a virtual register.  Registers are single-assignment within a
// lowering and carry intermediate expression values.
type Reg int

// ConstInt is a constant संख्या operand.
type ConstInt int64

// ConstBool is a constant सत्यासत्य operand.
type ConstBool bool

// ConstStr is a constant पाठ operand.
type ConstStr string

func (Reg) value()       {}
func (ConstInt) value()  {}
func (ConstBool) value() {}
func (ConstStr) value()  {}

// -----------------------------------------------------------------------------

// Instruction is the interface for all non-terminator instructions.
type Instruction interface {
	instr()
}

// BinInstr applies a binary operator to two operands.  The short-circuiting
// logical operators never reach MIR: lowering turns them into control flow.
type BinInstr struct {
	// The applied operator: one of the enumerated operator codes.
	Op int

	// The destination register.
	Dst Reg

	// The operands.
	Lhs, Rhs Value
}

// UnInstr applies a unary operator to an operand.
type UnInstr struct {
	// The applied operator: one of the enumerated operator codes.
	Op int

	// The destination register.
	Dst Reg

	// The operand.
	Operand Value
}

// LoadInstr loads a stack slot's value into a register.
type LoadInstr struct {
	Dst  Reg
	Slot int
}

// StoreInstr stores an operand into a stack slot.
type StoreInstr struct {
	Slot int
	Src  Value
}

// AddrInstr takes the address of a stack slot: the lowering of a borrow.
type AddrInstr struct {
	Dst  Reg
	Slot int
}

// LoadIndInstr loads the value behind an address operand: the lowering of a
// dereference read.
type LoadIndInstr struct {
	Dst  Reg
	Addr Value
}

// StoreIndInstr stores an operand behind an address operand: the lowering of
// an assignment through a mutable borrow.
type StoreIndInstr struct {
	Addr Value
	Src  Value
}

// CallInstr calls a function by name.
type CallInstr struct {
	// The destination register.  Only meaningful when HasDst is set: calls to
	// unit-returning functions produce no value.
	Dst Reg

	// Whether the call produces a value.
	HasDst bool

	// The name of the called function.
	Func string

	// The arguments of the call, in order.
	Args []Value
}

// PrintInstr prints an operand: the lowering of the print builtin.
type PrintInstr struct {
	// The printed operand.
	Arg Value

	// The type of the printed operand, which selects the print format.
	ArgType types.Type
}

func (*BinInstr) instr()      {}
func (*UnInstr) instr()       {}
func (*LoadInstr) instr()     {}
func (*StoreInstr) instr()    {}
func (*AddrInstr) instr()     {}
func (*LoadIndInstr) instr()  {}
func (*StoreIndInstr) instr() {}
func (*CallInstr) instr()     {}
func (*PrintInstr) instr()    {}

// -----------------------------------------------------------------------------

// Terminator is the interface for all block terminators.
type Terminator interface {
	term()
}

// Br branches unconditionally to a block.
type Br struct {
	Target *Block
}

// CondBr branches on a boolean operand.
type CondBr struct {
	Cond       Value
	Then, Else *Block
}

// Ret returns from the function.
type Ret struct {
	// The returned operand.  Nil for unit-returning functions.
	Value Value
}

func (*Br) term()     {}
func (*CondBr) term() {}
func (*Ret) term()    {}

// -----------------------------------------------------------------------------

// Enumeration of MIR operator codes.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpEq
	OpNeq
	OpLt
	OpGt
	OpLtEq
	OpGtEq

	OpNeg
	OpNot
)
