package syntax

import (
	"testing"

	"vaaktra/report"
)

// lexTokens lexes a source text to completion, returning the tokens before
// EOF and the compile error that halted lexing, if any.
func lexTokens(source string) (toks []*Token, cerr *report.CompileError) {
	defer func() {
		if x := recover(); x != nil {
			cerr = x.(*report.CompileError)
		}
	}()

	l := NewLexer(source)
	for {
		tok := l.NextToken()
		if tok.Kind == TOK_EOF {
			return
		}

		toks = append(toks, tok)
	}
}

// mustLex lexes a source text that is expected to be lexically valid.
func mustLex(t *testing.T, source string) []*Token {
	t.Helper()

	toks, cerr := lexTokens(source)
	if cerr != nil {
		t.Fatalf("unexpected lexical error: %s", cerr.Message)
	}

	return toks
}

func TestDigitScriptEquivalence(t *testing.T) {
	devanagari := mustLex(t, "१२३०९")
	ascii := mustLex(t, "12309")

	if len(devanagari) != 1 || len(ascii) != 1 {
		t.Fatalf("expected one token from each literal")
	}

	if devanagari[0].Kind != TOK_INTLIT || ascii[0].Kind != TOK_INTLIT {
		t.Fatalf("expected integer literal tokens")
	}

	dv := devanagari[0].Decoded.(int64)
	av := ascii[0].Decoded.(int64)

	if dv != av || dv != 12309 {
		t.Errorf("expected both literals to decode to 12309; got %d and %d", dv, av)
	}
}

func TestMixedDigitScripts(t *testing.T) {
	for _, source := range []string{"1२", "२1", "१००0"} {
		_, cerr := lexTokens(source)
		if cerr == nil {
			t.Errorf("expected a lexical error for `%s`", source)
			continue
		}

		if cerr.Kind != report.KindInvalidNumberLiteral {
			t.Errorf("expected an invalid number literal error for `%s`; got %s",
				source, report.KindName(cerr.Kind))
		}
	}
}

func TestIntLiteralWrapAround(t *testing.T) {
	// One past the largest 64-bit value wraps silently during decoding.
	toks := mustLex(t, "9223372036854775808")

	if v := toks[0].Decoded.(int64); v != -9223372036854775808 {
		t.Errorf("expected literal to wrap to the smallest 64-bit value; got %d", v)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := mustLex(t, "यावत् मन्त्र यात्रा निर्गम _गुप्त")

	wantKinds := []int{TOK_WHILE, TOK_FUNC, TOK_IDENT, TOK_RETURN, TOK_IDENT}
	if len(toks) != len(wantKinds) {
		t.Fatalf("expected %d tokens; got %d", len(wantKinds), len(toks))
	}

	for i, kind := range wantKinds {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected kind %d; got %d (`%s`)", i, kind, toks[i].Kind, toks[i].Value)
		}
	}

	if toks[2].Value != "यात्रा" {
		t.Errorf("expected identifier `यात्रा`; got `%s`", toks[2].Value)
	}
}

func TestBoolLiterals(t *testing.T) {
	toks := mustLex(t, "सत्यम् मिथ्या")

	if toks[0].Kind != TOK_BOOLLIT || toks[0].Decoded.(bool) != true {
		t.Errorf("expected सत्यम् to decode to true")
	}

	if toks[1].Kind != TOK_BOOLLIT || toks[1].Decoded.(bool) != false {
		t.Errorf("expected मिथ्या to decode to false")
	}
}

func TestOperators(t *testing.T) {
	toks := mustLex(t, "<= >= == != && || = ! & * / %")

	wantKinds := []int{
		TOK_LTEQ, TOK_GTEQ, TOK_EQ, TOK_NEQ, TOK_LAND, TOK_LOR,
		TOK_ASSIGN, TOK_NOT, TOK_AMP, TOK_STAR, TOK_DIV, TOK_MOD,
	}

	if len(toks) != len(wantKinds) {
		t.Fatalf("expected %d tokens; got %d", len(wantKinds), len(toks))
	}

	for i, kind := range wantKinds {
		if toks[i].Kind != kind {
			t.Errorf("token %d (`%s`): expected kind %d; got %d", i, toks[i].Value, kind, toks[i].Kind)
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, cerr := lexTokens("संख्या @ = १;")
	if cerr == nil || cerr.Kind != report.KindUnexpectedCharacter {
		t.Fatalf("expected an unexpected character error")
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := mustLex(t, `"नमस्ते\n\t\"\\"`)

	if toks[0].Kind != TOK_STRINGLIT {
		t.Fatalf("expected a string literal token")
	}

	if want := "नमस्ते\n\t\"\\"; toks[0].Decoded.(string) != want {
		t.Errorf("expected decoded value %q; got %q", want, toks[0].Decoded)
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, source := range []string{`"अधूरा`, "\"अधूरा\nपाठ\""} {
		_, cerr := lexTokens(source)
		if cerr == nil || cerr.Kind != report.KindUnterminatedString {
			t.Errorf("expected an unterminated string error for %q", source)
		}
	}
}

func TestComments(t *testing.T) {
	toks := mustLex(t, "१ // टिप्पणी\n/* बहु\nपङ्क्ति */ २")

	if len(toks) != 2 {
		t.Fatalf("expected comments to produce no tokens; got %d tokens", len(toks))
	}

	if toks[0].Decoded.(int64) != 1 || toks[1].Decoded.(int64) != 2 {
		t.Errorf("expected literals 1 and 2 around the comments")
	}
}

func TestSpanTracking(t *testing.T) {
	toks := mustLex(t, "यदि\n  सत्यम्")

	if span := toks[0].Span; span.StartLine != 0 || span.StartCol != 0 {
		t.Errorf("expected first token at line 0, col 0; got line %d, col %d", span.StartLine, span.StartCol)
	}

	if span := toks[1].Span; span.StartLine != 1 || span.StartCol != 2 {
		t.Errorf("expected second token at line 1, col 2; got line %d, col %d", span.StartLine, span.StartCol)
	}
}
