package lower

import (
	"testing"

	"vaaktra/ast"
	"vaaktra/mir"
	"vaaktra/report"
	"vaaktra/syntax"
	"vaaktra/walk"
)

// lowerSource parses, analyzes, and lowers a valid source text.
func lowerSource(t *testing.T, source string) *mir.Bundle {
	t.Helper()

	reporter := report.NewReporter()

	prog := func() (prog *ast.Program) {
		defer reporter.Catch()
		return syntax.Parse(source)
	}()

	if prog != nil {
		walk.NewWalker(reporter).WalkProgram(prog)
	}

	if !reporter.ShouldProceed() {
		t.Fatalf("unexpected compile errors: %v", reporter.Diagnostics())
	}

	return Lower(prog)
}

func TestEntrySelection(t *testing.T) {
	bundle := lowerSource(t, "मुद्रयतु(१);")

	if bundle.Entry == nil || bundle.Entry.Name != syntax.EntryFuncName {
		t.Fatalf("expected the synthetic entry to be selected")
	}
}

func TestParamSlots(t *testing.T) {
	bundle := lowerSource(t, `
मन्त्र योग(क: संख्या, ख: संख्या) संख्या {
	संख्या फल = क + ख;
	निर्गम फल;
}

मुद्रयतु(योग(१, २));
`)

	fn := bundle.Funcs[0]
	if fn.NumParams != 2 {
		t.Fatalf("expected two parameter slots; got %d", fn.NumParams)
	}

	if len(fn.Slots) != 3 {
		t.Errorf("expected three slots (two params, one local); got %d", len(fn.Slots))
	}

	if fn.Slots[0].Name != "क" || fn.Slots[1].Name != "ख" || fn.Slots[2].Name != "फल" {
		t.Errorf("unexpected slot layout: %v", fn.Slots)
	}
}

func TestWhileLoopShape(t *testing.T) {
	bundle := lowerSource(t, `
चल संख्या क = ०;
यावत् (क < ३) {
	क = क + १;
}
`)

	entry := bundle.Entry

	// Entry block, loop header, loop body, loop exit.
	if len(entry.Blocks) != 4 {
		t.Fatalf("expected four blocks; got %d", len(entry.Blocks))
	}

	header := entry.Blocks[1]
	condbr, ok := header.Term.(*mir.CondBr)
	if !ok {
		t.Fatalf("expected the loop header to end in a conditional branch")
	}

	body := condbr.Then
	br, ok := body.Term.(*mir.Br)
	if !ok || br.Target != header {
		t.Errorf("expected the loop body to branch back to the header")
	}
}

func TestShortCircuitLowersToControlFlow(t *testing.T) {
	bundle := lowerSource(t, "मुद्रयतु(सत्यम् && मिथ्या);")

	for _, block := range bundle.Entry.Blocks {
		for _, instr := range block.Instrs {
			if bin, ok := instr.(*mir.BinInstr); ok {
				t.Fatalf("expected no binary instruction for `&&`; found op %d", bin.Op)
			}
		}
	}

	// The operator becomes a conditional branch over a temporary slot.
	if len(bundle.Entry.Blocks) != 3 {
		t.Errorf("expected three blocks; got %d", len(bundle.Entry.Blocks))
	}
}

func TestUnreachableCodeDropped(t *testing.T) {
	bundle := lowerSource(t, `
मन्त्र प्रधानं() संख्या {
	निर्गम १;
	मुद्रयतु(२);
}
`)

	for _, block := range bundle.Entry.Blocks {
		for _, instr := range block.Instrs {
			if _, ok := instr.(*mir.PrintInstr); ok {
				t.Fatalf("expected the statement after निर्गम to be dropped")
			}
		}
	}
}

func TestEveryBlockTerminated(t *testing.T) {
	bundle := lowerSource(t, `
चल संख्या क = ०;
यदि (क == ०) {
	क = १;
} अन्यथा यदि (क == १) {
	क = २;
}
यावत् (क < ४ && क != ३) {
	क = क + १;
}
`)

	for _, fn := range bundle.Funcs {
		for _, block := range fn.Blocks {
			if block.Term == nil {
				t.Fatalf("block bb%d of `%s` has no terminator", block.ID, fn.Name)
			}
		}
	}
}
