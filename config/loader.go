package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

func findProjectRoot() string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			panic(fmt.Sprintf("failed to find git repo root and current directory: %v, %v", err, cwdErr))
		}
		return cwd
	}
	return strings.TrimSpace(string(output))
}

// LoadBuildConfig reads an xbuild.yml. A missing file yields pure defaults;
// an unparsable one is fatal.
func LoadBuildConfig(path string) *BuildConfig {
	var build BuildConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		build.SetDefaults()
		return &build
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		panic(fmt.Sprintf("failed to read xbuild.yml at %s: %v", path, err))
	}

	if err := k.Unmarshal("", &build); err != nil {
		panic(fmt.Sprintf("failed to parse xbuild.yml at %s: %v", path, err))
	}

	build.SetDefaults()
	return &build
}
