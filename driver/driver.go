package driver

import (
	"vaaktra/ast"
	"vaaktra/codegen"
	"vaaktra/jit"
	"vaaktra/lower"
	"vaaktra/mir"
	"vaaktra/report"
	"vaaktra/syntax"
	"vaaktra/walk"
)

// Artifact is the product of a successful compilation: the analyzed syntax
// tree and the lowered MIR bundle every backend consumes.
type Artifact struct {
	// The fully-analyzed program.
	Program *ast.Program

	// The lowered bundle.
	Bundle *mir.Bundle
}

// ExecutionResult is the observable outcome of running a compiled program.
type ExecutionResult struct {
	// The value returned by the entry function; zero if the entry returns
	// nothing.
	Return int64

	// Everything the program printed, one line per print call, in order.
	Output []string
}

// Compile compiles source text into an artifact.  Compilation is pure: it
// touches no global state, so any number of compilations may run
// concurrently.  On failure the artifact is nil and the diagnostics contain
// at least one error.
func Compile(source string) (*Artifact, []report.Diagnostic) {
	reporter := report.NewReporter()

	prog := parse(source, reporter)
	if prog == nil || !reporter.ShouldProceed() {
		return nil, reporter.Diagnostics()
	}

	walk.NewWalker(reporter).WalkProgram(prog)
	if !reporter.ShouldProceed() {
		return nil, reporter.Diagnostics()
	}

	return &Artifact{Program: prog, Bundle: lower.Lower(prog)}, reporter.Diagnostics()
}

// parse runs the syntax front-end, converting its panic on the first syntax
// error into a reported diagnostic.
func parse(source string, reporter *report.Reporter) (prog *ast.Program) {
	defer reporter.Catch()

	return syntax.Parse(source)
}

// Execute runs a compiled artifact on the execution engine and captures its
// output.  The returned error is non-nil only for runtime faults such as
// division by zero.
func Execute(art *Artifact) (*ExecutionResult, error) {
	machine := jit.NewMachine(art.Bundle)

	ret, output, err := machine.Run()
	if err != nil {
		return nil, err
	}

	return &ExecutionResult{Return: ret, Output: output}, nil
}

// EmitLLVM generates the artifact into the given code generation context and
// returns the LLVM IR assembly text of the resulting module.
func EmitLLVM(ctx *codegen.Context, art *Artifact) string {
	ctx.Generate(art.Bundle)
	return ctx.Emit()
}

// EmitMIR returns the textual MIR dump of a compiled artifact.
func EmitMIR(art *Artifact) string {
	return mir.Dump(art.Bundle)
}
