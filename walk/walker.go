package walk

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/report"
	"vaaktra/syntax"
	"vaaktra/types"
)

// PrintFuncName is the name of the predeclared print builtin.  It is an
// ordinary global symbol, not a keyword: user code may shadow it.
const PrintFuncName = "मुद्रयतु"

// Walker is responsible for semantic analysis of a parsed program: name
// resolution and type checking.  Ownership analysis runs as a separate pass
// once the program is known to be well typed.
type Walker struct {
	// The reporter the walker reports errors to.
	reporter *report.Reporter

	// The global symbol table of the program: function definitions and
	// predeclared builtins.
	globals map[string]*common.Symbol

	// The stack of local scopes.  The scope at the end of the slice is
	// innermost.
	scopes []map[string]*common.Symbol

	// The function definition being walked.
	enclosing *ast.FuncDef
}

// NewWalker creates a new walker reporting to the given reporter.
func NewWalker(reporter *report.Reporter) *Walker {
	w := &Walker{
		reporter: reporter,
		globals:  make(map[string]*common.Symbol),
	}

	w.globals[PrintFuncName] = &common.Symbol{
		Name:    PrintFuncName,
		Type:    &types.FuncType{ReturnType: types.PrimTypeUnit},
		DefKind: common.DefKindBuiltin,
	}

	return w
}

// WalkProgram performs full semantic analysis of a program: all function
// definitions are declared up front so bodies may call in any order, then
// each body is type checked, and finally ownership of every binding is
// verified.  Errors within one definition do not stop analysis of the others.
func (w *Walker) WalkProgram(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		w.declareFunc(fn)
	}

	hasEntry := false
	for _, fn := range prog.Funcs {
		if fn.Symbol.Name == syntax.EntryFuncName {
			hasEntry = true
			w.checkEntrySignature(fn)
		}
	}

	if !hasEntry {
		w.reporter.Error(
			report.KindUnresolvedName, prog.Span(),
			"program defines no entry मन्त्र `%s`", syntax.EntryFuncName,
		)
	}

	for _, fn := range prog.Funcs {
		w.walkFuncDef(fn)
	}

	// Ownership analysis assumes a well-typed tree: every expression carries
	// a resolved type and every identifier a resolved symbol.
	if w.reporter.ShouldProceed() {
		ow := newOwnershipWalker(w.reporter)
		for _, fn := range prog.Funcs {
			ow.checkFuncDef(fn)
		}
	}
}

// declareFunc declares a function definition in the global scope.
func (w *Walker) declareFunc(fn *ast.FuncDef) {
	sym := fn.Symbol

	if _, ok := w.globals[sym.Name]; ok {
		w.reporter.Error(
			report.KindRedeclaration, sym.DefSpan,
			"multiple definitions of मन्त्र named `%s`", sym.Name,
		)
		return
	}

	// A returned borrow would outlive the binding it borrows from.
	ft := sym.Type.(*types.FuncType)
	if _, ok := ft.ReturnType.(*types.RefType); ok {
		w.reporter.Error(
			report.KindBorrowConflict, sym.DefSpan,
			"मन्त्र `%s` cannot return a borrow", sym.Name,
		)
	}

	w.globals[sym.Name] = sym
}

// checkEntrySignature checks that the entry function takes no parameters and
// returns unit or संख्या, whose value becomes the program's exit value.
func (w *Walker) checkEntrySignature(fn *ast.FuncDef) {
	ft := fn.Symbol.Type.(*types.FuncType)

	if len(ft.ParamTypes) > 0 {
		w.reporter.Error(
			report.KindTypeMismatch, fn.Symbol.DefSpan,
			"मन्त्र `%s` takes no parameters", fn.Symbol.Name,
		)
	}

	if !types.IsUnit(ft.ReturnType) && !types.Equals(ft.ReturnType, types.PrimTypeInteger) {
		w.reporter.Error(
			report.KindTypeMismatch, fn.Symbol.DefSpan,
			"मन्त्र `%s` must return nothing or संख्या, not %s",
			fn.Symbol.Name, ft.ReturnType.Repr(),
		)
	}
}

// walkFuncDef walks the body of a single function definition.  The first
// error in a definition aborts analysis of that definition only.
func (w *Walker) walkFuncDef(fn *ast.FuncDef) {
	defer w.reporter.Catch()

	w.enclosing = fn
	w.scopes = nil

	w.pushScope()
	defer w.popScope()

	for _, param := range fn.Params {
		w.define(param)
	}

	w.walkBlock(fn.Body)

	ft := fn.Symbol.Type.(*types.FuncType)
	if !types.IsUnit(ft.ReturnType) && !alwaysReturns(fn.Body) {
		w.error(
			report.KindTypeMismatch, fn.Span(),
			"मन्त्र `%s` does not return a value on every path", fn.Symbol.Name,
		)
	}
}

// -----------------------------------------------------------------------------

// error reports a compile error in the current definition and aborts its
// analysis.
func (w *Walker) error(kind int, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]*common.Symbol))
}

// popScope pops the innermost local scope off the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// define defines a symbol in the innermost scope.  Shadowing an outer scope
// is allowed; redeclaring within the same scope is not.
func (w *Walker) define(sym *common.Symbol) {
	scope := w.scopes[len(w.scopes)-1]

	if prev, ok := scope[sym.Name]; ok {
		w.error(
			report.KindRedeclaration, sym.DefSpan,
			"`%s` is already declared in this scope (line %d)",
			sym.Name, prev.DefSpan.StartLine,
		)
	}

	scope[sym.Name] = sym
}

// lookup finds the symbol a name refers to: innermost scope outwards, then
// globals.
func (w *Walker) lookup(name string, span *report.TextSpan) *common.Symbol {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if sym, ok := w.scopes[i][name]; ok {
			return sym
		}
	}

	if sym, ok := w.globals[name]; ok {
		return sym
	}

	w.error(report.KindUnresolvedName, span, "undefined name: `%s`", name)
	return nil
}
