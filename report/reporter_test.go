package report

import "testing"

func TestCatchRecordsCompileErrors(t *testing.T) {
	r := NewReporter()

	func() {
		defer r.Catch()
		panic(Raise(KindTypeMismatch, &TextSpan{}, "mismatched %s", "types"))
	}()

	diags := r.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic; got %d", len(diags))
	}

	if diags[0].Kind != KindTypeMismatch || diags[0].Message != "mismatched types" {
		t.Errorf("unexpected diagnostic: %+v", diags[0])
	}

	if r.ShouldProceed() {
		t.Errorf("expected the reporter to block further stages")
	}
}

func TestCatchRepanicsForeignPanics(t *testing.T) {
	r := NewReporter()

	defer func() {
		if recover() == nil {
			t.Errorf("expected the non-compile-error panic to propagate")
		}
	}()

	func() {
		defer r.Catch()
		panic("not a compile error")
	}()
}

func TestWarningsDoNotBlock(t *testing.T) {
	r := NewReporter()
	r.Warn(KindTypeMismatch, &TextSpan{}, "suspicious but legal")

	if !r.ShouldProceed() {
		t.Errorf("expected warnings not to block compilation")
	}

	if len(r.Diagnostics()) != 1 || r.Diagnostics()[0].Severity != SeverityWarning {
		t.Errorf("expected one warning diagnostic")
	}
}
