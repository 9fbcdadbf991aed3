package walk

import (
	"testing"

	"vaaktra/ast"
	"vaaktra/report"
	"vaaktra/syntax"
)

// analyze parses and analyzes a source text and returns the diagnostics.
func analyze(t *testing.T, source string) []report.Diagnostic {
	t.Helper()

	reporter := report.NewReporter()

	prog := func() (prog *ast.Program) {
		defer reporter.Catch()
		return syntax.Parse(source)
	}()

	if prog == nil {
		t.Fatalf("unexpected syntax error: %v", reporter.Diagnostics())
	}

	NewWalker(reporter).WalkProgram(prog)
	return reporter.Diagnostics()
}

// expectErrors asserts that analysis produces exactly the given diagnostic
// kinds, in order.
func expectErrors(t *testing.T, source string, wantKinds ...int) {
	t.Helper()

	diags := analyze(t, source)

	if len(diags) != len(wantKinds) {
		t.Fatalf("expected %d diagnostic(s); got %d: %v", len(wantKinds), len(diags), diags)
	}

	for i, kind := range wantKinds {
		if diags[i].Kind != kind {
			t.Errorf("diagnostic %d: expected %s; got %s (%s)",
				i, report.KindName(kind), report.KindName(diags[i].Kind), diags[i].Message)
		}
	}
}

func TestWellTypedProgram(t *testing.T) {
	expectErrors(t, `
मन्त्र वर्ग(क: संख्या) संख्या {
	निर्गम क * क;
}

चल संख्या क = ०;
यावत् (क < १०) {
	मुद्रयतु(वर्ग(क));
	क = क + १;
}
`)
}

func TestInitializerTypeMismatch(t *testing.T) {
	expectErrors(t, "संख्या क = सत्यम्;", report.KindTypeMismatch)
}

func TestReturnTypeMismatch(t *testing.T) {
	expectErrors(t, `
मन्त्र ध्वज() संख्या {
	निर्गम मिथ्या;
}

मुद्रयतु(ध्वज());
`, report.KindTypeMismatch)
}

func TestConditionTypeError(t *testing.T) {
	expectErrors(t, "यदि (१) { मुद्रयतु(१); }", report.KindConditionTypeError)
	expectErrors(t, "यावत् (१ + २) { मुद्रयतु(१); }", report.KindConditionTypeError)
}

func TestUnresolvedName(t *testing.T) {
	expectErrors(t, "मुद्रयतु(अज्ञात);", report.KindUnresolvedName)
}

func TestRedeclaration(t *testing.T) {
	expectErrors(t, "संख्या क = १;\nसंख्या क = २;", report.KindRedeclaration)

	// Shadowing in an inner scope is allowed.
	expectErrors(t, `
संख्या क = १;
यदि (सत्यम्) {
	पाठ क = "छाया";
	मुद्रयतु(क);
}
मुद्रयतु(क);
`)
}

func TestMutabilityError(t *testing.T) {
	expectErrors(t, "संख्या क = १;\nक = २;", report.KindMutabilityError)

	// Mutation through a shared borrow is also rejected.
	expectErrors(t, `
चल संख्या क = १;
&संख्या र = &क;
*र = २;
`, report.KindMutabilityError)
}

func TestMutableBorrowOfImmutable(t *testing.T) {
	expectErrors(t, "संख्या क = १;\n&चल संख्या र = &चल क;", report.KindMutabilityError)
}

func TestOperandTypeErrors(t *testing.T) {
	expectErrors(t, `मुद्रयतु("अ" + "ब");`, report.KindTypeMismatch)
	expectErrors(t, "मुद्रयतु(!१);", report.KindTypeMismatch)
	expectErrors(t, `यदि ("अ" == "ब") { मुद्रयतु(१); }`, report.KindTypeMismatch)
}

func TestMissingReturnPath(t *testing.T) {
	expectErrors(t, `
मन्त्र चिह्न(क: संख्या) संख्या {
	यदि (क > ०) {
		निर्गम १;
	}
}

मुद्रयतु(चिह्न(५));
`, report.KindTypeMismatch)

	// A return in every branch of a full if tree covers all paths.
	expectErrors(t, `
मन्त्र चिह्न(क: संख्या) संख्या {
	यदि (क > ०) {
		निर्गम १;
	} अन्यथा {
		निर्गम ०;
	}
}

मुद्रयतु(चिह्न(५));
`)
}

func TestMissingEntry(t *testing.T) {
	expectErrors(t, "मन्त्र सहायक() { मुद्रयतु(१); }", report.KindUnresolvedName)
}

func TestEntrySignature(t *testing.T) {
	expectErrors(t, "मन्त्र प्रधानं(क: संख्या) { मुद्रयतु(क); }", report.KindTypeMismatch)
	expectErrors(t, "मन्त्र प्रधानं() संख्या { निर्गम ०; }")
}

// -----------------------------------------------------------------------------

func TestUseAfterMove(t *testing.T) {
	expectErrors(t, `
मन्त्र ग्रहण(सन्देश: पाठ) {
	मुद्रयतु(सन्देश);
}

पाठ अभिवादन = "नमस्ते";
ग्रहण(अभिवादन);
मुद्रयतु(अभिवादन);
`, report.KindUseAfterMove)
}

func TestMoveByDeclaration(t *testing.T) {
	expectErrors(t, `
पाठ मूल = "नमस्ते";
पाठ प्रति = मूल;
मुद्रयतु(मूल);
`, report.KindUseAfterMove)
}

func TestPrintDoesNotMove(t *testing.T) {
	expectErrors(t, `
पाठ अभिवादन = "नमस्ते";
मुद्रयतु(अभिवादन);
मुद्रयतु(अभिवादन);
`)
}

func TestAssignmentReinitializesMovedBinding(t *testing.T) {
	expectErrors(t, `
चल पाठ क = "एक";
पाठ ख = क;
क = "दो";
मुद्रयतु(क);
`)
}

func TestMoveInLoopBody(t *testing.T) {
	// The second iteration would use a value moved by the first.
	expectErrors(t, `
पाठ क = "एक";
चल संख्या ग = ०;
यावत् (ग < २) {
	पाठ ख = क;
	ग = ग + १;
}
`, report.KindUseAfterMove)
}

func TestMoveInOneBranchCountsAfter(t *testing.T) {
	expectErrors(t, `
पाठ क = "एक";
यदि (सत्यम्) {
	पाठ ख = क;
} अन्यथा {
	मुद्रयतु(०);
}
मुद्रयतु(क);
`, report.KindUseAfterMove)
}

func TestIndependentBranchMoves(t *testing.T) {
	// Each branch may move the value: only one branch runs.
	expectErrors(t, `
पाठ क = "एक";
यदि (सत्यम्) {
	पाठ ख = क;
} अन्यथा {
	पाठ ग = क;
}
`)
}

// -----------------------------------------------------------------------------

func TestSharedBorrowsCoexist(t *testing.T) {
	expectErrors(t, `
पाठ क = "एक";
&पाठ र१ = &क;
&पाठ र२ = &क;
मुद्रयतु(*र१);
मुद्रयतु(*र२);
`)
}

func TestMutableBorrowIsExclusive(t *testing.T) {
	expectErrors(t, `
चल संख्या क = १;
&चल संख्या र१ = &चल क;
&संख्या र२ = &क;
`, report.KindBorrowConflict)

	expectErrors(t, `
चल संख्या क = १;
&संख्या र१ = &क;
&चल संख्या र२ = &चल क;
`, report.KindBorrowConflict)
}

func TestUseWhileMutablyBorrowed(t *testing.T) {
	expectErrors(t, `
चल संख्या क = १;
&चल संख्या र = &चल क;
मुद्रयतु(क);
`, report.KindBorrowConflict)
}

func TestAssignWhileBorrowed(t *testing.T) {
	expectErrors(t, `
चल संख्या क = १;
&संख्या र = &क;
क = २;
`, report.KindBorrowConflict)
}

func TestMoveWhileBorrowed(t *testing.T) {
	expectErrors(t, `
पाठ क = "एक";
&पाठ र = &क;
पाठ ख = क;
`, report.KindBorrowConflict)
}

func TestBorrowReleasedAtScopeExit(t *testing.T) {
	expectErrors(t, `
चल संख्या क = १;
यदि (सत्यम्) {
	&चल संख्या र = &चल क;
	*र = २;
}
क = ३;
मुद्रयतु(क);
`)
}

func TestReassignedBorrowHeldToScopeExit(t *testing.T) {
	// A borrow assigned into a ref binding lives as long as the binding, not
	// just its statement: the later mutable borrow must conflict with it.
	expectErrors(t, `
संख्या क = १;
चल संख्या ख = २;
चल &संख्या र = &क;
र = &ख;
&चल संख्या म = &चल ख;
*म = ३;
मुद्रयतु(*र);
`, report.KindBorrowConflict)
}

func TestBorrowParamDoesNotMove(t *testing.T) {
	expectErrors(t, `
मन्त्र दर्शय(सन्देश: &पाठ) {
	मुद्रयतु(*सन्देश);
}

पाठ क = "नमस्ते";
दर्शय(&क);
दर्शय(&क);
मुद्रयतु(क);
`)
}

// -----------------------------------------------------------------------------

func TestRepeatedAnalysisReportsIdentically(t *testing.T) {
	// The ownership pass mutates symbol state while checking, so re-analyzing
	// the same tree must reset it and report the same diagnostics.
	reporter := report.NewReporter()
	prog := func() (prog *ast.Program) {
		defer reporter.Catch()
		return syntax.Parse(`
पाठ क = "एक";
पाठ ख = क;
मुद्रयतु(क);
`)
	}()

	if prog == nil {
		t.Fatalf("unexpected syntax error: %v", reporter.Diagnostics())
	}

	var runs [][]report.Diagnostic
	for i := 0; i < 2; i++ {
		r := report.NewReporter()
		NewWalker(r).WalkProgram(prog)
		runs = append(runs, r.Diagnostics())
	}

	if len(runs[0]) != 1 || runs[0][0].Kind != report.KindUseAfterMove {
		t.Fatalf("expected one use-after-move diagnostic; got %v", runs[0])
	}

	if len(runs[1]) != len(runs[0]) || runs[1][0].Kind != runs[0][0].Kind {
		t.Fatalf("expected identical diagnostics on re-analysis; got %v then %v", runs[0], runs[1])
	}
}
