package build

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
)

// runtimeSource is the C support runtime compiled into native artifacts.  It
// implements the print functions the code generator declares as externs; the
// vk_str layout must match the emitted `vk.str` type.
const runtimeSource = `#include <stdio.h>
#include <stdint.h>

typedef struct {
	const char *data;
	int64_t len;
} vk_str;

void vk_print_i64(int64_t v) {
	printf("%lld\n", (long long)v);
}

void vk_print_bool(_Bool v) {
	puts(v ? "सत्यम्" : "मिथ्या");
}

void vk_print_str(vk_str s) {
	fwrite(s.data, 1, (size_t)s.len, stdout);
	putchar('\n');
}
`

// nativeCommands returns the external tool invocations that turn emitted IR
// text into an executable: llc assembles the object file, then the system C
// compiler links it with the support runtime.
func nativeCommands(llPath, objPath, runtimePath, outputPath string) []*exec.Cmd {
	return []*exec.Cmd{
		exec.Command("llc", "-filetype=obj", "-o", objPath, llPath),
		exec.Command("cc", "-o", outputPath, objPath, runtimePath),
	}
}

// BuildNative turns emitted LLVM IR text into a standalone native executable
// at outputPath.  Intermediate files live in a temporary directory that is
// removed once linking finishes.
func BuildNative(llText, outputPath string) error {
	tempPath, err := ioutil.TempDir("", "vaaktra")
	if err != nil {
		return fmt.Errorf("unable to create temporary build directory: %s", err.Error())
	}
	defer os.RemoveAll(tempPath)

	llPath := filepath.Join(tempPath, "program.ll")
	if err := ioutil.WriteFile(llPath, []byte(llText), 0644); err != nil {
		return fmt.Errorf("unable to write IR file: %s", err.Error())
	}

	runtimePath := filepath.Join(tempPath, "runtime.c")
	if err := ioutil.WriteFile(runtimePath, []byte(runtimeSource), 0644); err != nil {
		return fmt.Errorf("unable to write runtime file: %s", err.Error())
	}

	objPath := filepath.Join(tempPath, "program.o")
	for _, command := range nativeCommands(llPath, objPath, runtimePath, outputPath) {
		if out, err := command.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to run %s:\n%s", command.Args[0], commandFailure(out, err))
		}
	}

	return nil
}

// commandFailure prefers a tool's own output over the bare exec error.
func commandFailure(out []byte, err error) string {
	if len(out) > 0 {
		return string(out)
	}

	return err.Error()
}
