package build

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ProfileFileName is the name of the build profile file looked up next to the
// compiled source file.
const ProfileFileName = "vaaktra.toml"

// Enumeration of build modes.
const (
	// ModeRun compiles and immediately executes on the execution engine.
	ModeRun = iota

	// ModeLLVM compiles and writes the program's LLVM IR text.
	ModeLLVM

	// ModeMIR compiles and writes the program's MIR dump.
	ModeMIR

	// ModeNative compiles to a standalone native executable via the system
	// LLVM tools.
	ModeNative
)

// Profile describes how a program should be built: the selected mode and
// where non-run modes write their output.
type Profile struct {
	// The build mode.
	Mode int

	// The path non-run modes write to.  Empty means standard output.
	OutputPath string
}

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	Mode       string `toml:"mode"`
	OutputPath string `toml:"output-path"`
}

// modeNames maps TOML mode name strings to enumerated mode values.
var modeNames = map[string]int{
	"run":    ModeRun,
	"llvm":   ModeLLVM,
	"mir":    ModeMIR,
	"native": ModeNative,
}

// DefaultProfile returns the profile used when no profile file exists: run
// mode.
func DefaultProfile() *Profile {
	return &Profile{Mode: ModeRun}
}

// LoadProfile loads the build profile next to the given source file.  A
// missing profile file is not an error: the default profile applies.
func LoadProfile(sourcePath string) (*Profile, error) {
	profilePath := filepath.Join(filepath.Dir(sourcePath), ProfileFileName)

	buff, err := ioutil.ReadFile(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}

		return nil, fmt.Errorf("unable to read profile file at `%s`: %s", profilePath, err.Error())
	}

	tomlProf := &tomlProfile{}
	if err := toml.Unmarshal(buff, tomlProf); err != nil {
		return nil, fmt.Errorf("error parsing profile file at `%s`: %s", profilePath, err.Error())
	}

	return validateProfile(profilePath, tomlProf)
}

// validateProfile checks the profile contents and converts them to their
// final form.
func validateProfile(profilePath string, tomlProf *tomlProfile) (*Profile, error) {
	prof := DefaultProfile()

	if tomlProf.Mode != "" {
		mode, ok := modeNames[tomlProf.Mode]
		if !ok {
			return nil, fmt.Errorf("invalid mode `%s` in profile file at `%s`", tomlProf.Mode, profilePath)
		}

		prof.Mode = mode
	}

	prof.OutputPath = tomlProf.OutputPath
	return prof, nil
}
