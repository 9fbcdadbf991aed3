package build

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

// writeProfile writes a profile file into a fresh temporary directory and
// returns the path of a source file next to it.
func writeProfile(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()

	if err := ioutil.WriteFile(filepath.Join(dir, ProfileFileName), []byte(contents), 0644); err != nil {
		t.Fatalf("unable to write profile: %s", err.Error())
	}

	return filepath.Join(dir, "मुख्य.vk")
}

func TestLoadProfile(t *testing.T) {
	srcPath := writeProfile(t, "mode = \"llvm\"\noutput-path = \"out.ll\"\n")

	prof, err := LoadProfile(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	if prof.Mode != ModeLLVM {
		t.Errorf("expected LLVM mode; got %d", prof.Mode)
	}

	if prof.OutputPath != "out.ll" {
		t.Errorf("expected output path `out.ll`; got `%s`", prof.OutputPath)
	}
}

func TestMissingProfileUsesDefault(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "मुख्य.vk")

	prof, err := LoadProfile(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	if prof.Mode != ModeRun || prof.OutputPath != "" {
		t.Errorf("expected the default run profile; got %+v", prof)
	}
}

func TestNativeMode(t *testing.T) {
	srcPath := writeProfile(t, "mode = \"native\"\noutput-path = \"मुख्य\"\n")

	prof, err := LoadProfile(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	if prof.Mode != ModeNative {
		t.Errorf("expected native mode; got %d", prof.Mode)
	}
}

func TestInvalidMode(t *testing.T) {
	srcPath := writeProfile(t, "mode = \"jvm\"\n")

	if _, err := LoadProfile(srcPath); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestMalformedProfile(t *testing.T) {
	srcPath := writeProfile(t, "mode = [1, 2")

	if _, err := LoadProfile(srcPath); err == nil {
		t.Fatalf("expected an error for malformed TOML")
	}
}
