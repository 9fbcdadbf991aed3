package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"vaaktra/mir"
	"vaaktra/types"
)

// Context is an explicit code generation handle.  A context owns one LLVM
// module and everything generated into it; callers create a context, generate
// a bundle into it, emit the module text, and dispose of the handle.  A
// disposed context must not be reused.
type Context struct {
	// The LLVM module being generated into.
	mod *ir.Module

	// The runtime string struct type: a pointer to the character data and its
	// byte length.
	strType *lltypes.StructType

	// The declared runtime print functions.
	printI64, printBool, printStr *ir.Func

	// The generated functions by MIR name.
	funcs map[string]*ir.Func

	// The number of string literal globals emitted so far.
	strCount int
}

// NewContext creates a fresh code generation context: an empty module with
// the runtime type and function declarations the generated code links
// against.
func NewContext() *Context {
	ctx := &Context{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}

	ctx.strType = lltypes.NewStruct(lltypes.I8Ptr, lltypes.I64)
	ctx.mod.NewTypeDef("vk.str", ctx.strType)

	ctx.printI64 = ctx.mod.NewFunc("vk_print_i64", lltypes.Void, ir.NewParam("v", lltypes.I64))
	ctx.printBool = ctx.mod.NewFunc("vk_print_bool", lltypes.Void, ir.NewParam("v", lltypes.I1))
	ctx.printStr = ctx.mod.NewFunc("vk_print_str", lltypes.Void, ir.NewParam("v", ctx.strType))

	return ctx
}

// Dispose releases the context.  The context and anything generated from it
// must not be used afterwards.
func (ctx *Context) Dispose() {
	ctx.mod = nil
	ctx.funcs = nil
}

// Emit renders the module as LLVM IR assembly text.
func (ctx *Context) Emit() string {
	return ctx.mod.String()
}

// Generate generates LLVM IR for an entire bundle into the context's module.
// The entry function additionally receives a `main` wrapper so the emitted
// module links as a standalone executable.
func (ctx *Context) Generate(bundle *mir.Bundle) {
	// Declare before defining so calls resolve in any order.
	for _, fn := range bundle.Funcs {
		ctx.declareFunc(fn)
	}

	for _, fn := range bundle.Funcs {
		ctx.generateFunc(fn)
	}

	if bundle.Entry != nil {
		ctx.generateMainWrapper(bundle.Entry)
	}
}

// llType maps a source type to its LLVM representation.
func (ctx *Context) llType(typ types.Type) lltypes.Type {
	switch v := typ.(type) {
	case types.PrimitiveType:
		switch v {
		case types.PrimTypeInteger:
			return lltypes.I64
		case types.PrimTypeBoolean:
			return lltypes.I1
		case types.PrimTypeString:
			return ctx.strType
		default:
			return lltypes.Void
		}
	case *types.RefType:
		return lltypes.NewPointer(ctx.llType(v.ElemType))
	}

	panic(fmt.Sprintf("cannot generate type: %s", typ.Repr()))
}

func (ctx *Context) declareFunc(fn *mir.Function) {
	params := make([]*ir.Param, fn.NumParams)
	for i := 0; i < fn.NumParams; i++ {
		params[i] = ir.NewParam(fn.Slots[i].Name, ctx.llType(fn.Slots[i].Type))
	}

	ctx.funcs[fn.Name] = ctx.mod.NewFunc(fn.Name, ctx.llType(fn.ReturnType), params...)
}

// generateMainWrapper emits a C-compatible `main` that calls the entry
// function and converts its result to a process exit code.
func (ctx *Context) generateMainWrapper(entry *mir.Function) {
	mainFunc := ctx.mod.NewFunc("main", lltypes.I32)
	block := mainFunc.NewBlock("")

	call := block.NewCall(ctx.funcs[entry.Name])

	if types.Equals(entry.ReturnType, types.PrimTypeInteger) {
		block.NewRet(block.NewTrunc(call, lltypes.I32))
	} else {
		block.NewRet(constant.NewInt(lltypes.I32, 0))
	}
}

// internString emits a string literal as a global character array and builds
// the vk.str struct value pointing at it in the given block.
func (ctx *Context) internString(block *ir.Block, s string) value.Value {
	global := ctx.mod.NewGlobalDef(fmt.Sprintf(".str.%d", ctx.strCount), constant.NewCharArrayFromString(s))
	ctx.strCount++

	bytesPtr := block.NewBitCast(global, lltypes.I8Ptr)

	str := block.NewInsertValue(constant.NewUndef(ctx.strType), bytesPtr, 0)
	return block.NewInsertValue(str, constant.NewInt(lltypes.I64, int64(len(s))), 1)
}
