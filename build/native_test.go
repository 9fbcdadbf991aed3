package build

import (
	"strings"
	"testing"
)

func TestNativeCommands(t *testing.T) {
	commands := nativeCommands("p.ll", "p.o", "rt.c", "मुख्य")

	if len(commands) != 2 {
		t.Fatalf("expected an assemble and a link command; got %d", len(commands))
	}

	llc := commands[0].Args
	if llc[0] != "llc" || !strings.Contains(strings.Join(llc, " "), "-filetype=obj") {
		t.Errorf("expected llc to assemble an object file; got %v", llc)
	}

	link := commands[1].Args
	if link[0] != "cc" || link[len(link)-2] != "p.o" || link[len(link)-1] != "rt.c" {
		t.Errorf("expected cc to link the object with the runtime; got %v", link)
	}
}

func TestRuntimeImplementsPrintExterns(t *testing.T) {
	// The code generator declares these as externs; the support runtime must
	// define all of them.
	for _, name := range []string{"vk_print_i64", "vk_print_bool", "vk_print_str"} {
		if !strings.Contains(runtimeSource, "void "+name) {
			t.Errorf("expected the runtime to define %s", name)
		}
	}
}
