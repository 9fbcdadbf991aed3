package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"vaaktra/build"
	"vaaktra/codegen"
	"vaaktra/driver"
	"vaaktra/report"
)

func main() {
	if len(os.Args) != 2 {
		report.DisplayFatal("usage: vaaktra <file>")
		os.Exit(1)
	}

	srcPath := os.Args[1]

	buff, err := ioutil.ReadFile(srcPath)
	if err != nil {
		report.DisplayFatal(fmt.Sprintf("unable to read `%s`: %s", srcPath, err.Error()))
		os.Exit(1)
	}
	source := string(buff)

	prof, err := build.LoadProfile(srcPath)
	if err != nil {
		report.DisplayFatal(err.Error())
		os.Exit(1)
	}

	art, diags := driver.Compile(source)
	for _, d := range diags {
		report.DisplayDiagnostic(srcPath, source, d)
	}

	if art == nil {
		os.Exit(1)
	}

	switch prof.Mode {
	case build.ModeRun:
		run(art)
	case build.ModeLLVM:
		ctx := codegen.NewContext()
		defer ctx.Dispose()

		writeOutput(prof.OutputPath, driver.EmitLLVM(ctx, art))
	case build.ModeMIR:
		writeOutput(prof.OutputPath, driver.EmitMIR(art))
	case build.ModeNative:
		ctx := codegen.NewContext()
		defer ctx.Dispose()

		outPath := nativeOutputPath(prof, srcPath)
		if err := build.BuildNative(driver.EmitLLVM(ctx, art), outPath); err != nil {
			report.DisplayFatal(err.Error())
			os.Exit(1)
		}

		report.DisplaySuccess(fmt.Sprintf("built `%s`", outPath))
	}
}

// nativeOutputPath resolves where the native mode writes its executable: the
// profile's output path, or the source file name with its extension dropped.
func nativeOutputPath(prof *build.Profile, srcPath string) string {
	if prof.OutputPath != "" {
		return prof.OutputPath
	}

	if ext := filepath.Ext(srcPath); ext != "" {
		return strings.TrimSuffix(srcPath, ext)
	}

	return srcPath + ".out"
}

func run(art *driver.Artifact) {
	result, err := driver.Execute(art)
	if err != nil {
		report.DisplayFatal(fmt.Sprintf("runtime fault: %s", err.Error()))
		os.Exit(2)
	}

	for _, line := range result.Output {
		fmt.Println(line)
	}

	os.Exit(int(result.Return))
}

// writeOutput writes emitted text to the profile's output path, or to
// standard output when no path is configured.
func writeOutput(path, text string) {
	if path == "" {
		fmt.Print(text)
		return
	}

	if err := ioutil.WriteFile(path, []byte(text), 0644); err != nil {
		report.DisplayFatal(fmt.Sprintf("unable to write `%s`: %s", path, err.Error()))
		os.Exit(1)
	}

	report.DisplaySuccess(fmt.Sprintf("wrote `%s`", path))
}
