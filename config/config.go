package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const FileName = "xbuild.yml"

type Config struct {
	projectRoot string
	xbuildDir   string
	runsPath    string
	build       *BuildConfig
}

// NewConfig locates the project root (git toplevel, falling back to the
// current directory) and loads xbuild.yml from it. An explicit path
// overrides auto-detection.
func NewConfig(path string) *Config {
	var projectRoot string

	if path == "" {
		projectRoot = findProjectRoot()
		path = filepath.Join(projectRoot, FileName)
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			panic(fmt.Sprintf("failed to resolve config path %s: %v", path, err))
		}
		path = abs
		projectRoot = filepath.Dir(abs)
	}

	cfg := &Config{
		projectRoot: projectRoot,
		build:       LoadBuildConfig(path),
	}

	cfg.initPaths()

	return cfg
}

func (c *Config) initPaths() {
	c.xbuildDir = filepath.Join(c.projectRoot, ".xbuild")
	if err := os.MkdirAll(c.xbuildDir, 0755); err != nil {
		panic(fmt.Sprintf("failed to create .xbuild directory: %v", err))
	}
	c.runsPath = filepath.Join(c.xbuildDir, "runs.json")
}

func (c *Config) ProjectRoot() string {
	return c.projectRoot
}

func (c *Config) RunsPath() string {
	return c.runsPath
}

func (c *Config) Build() *BuildConfig {
	return c.build
}

// LogDir is the absolute root for per-session toolchain logs.
func (c *Config) LogDir() string {
	return c.abs(c.build.LogDir)
}

func (c *Config) ReportPath() string {
	return c.abs(c.build.ReportFile)
}

// ArtifactsDir is empty when checksum generation is disabled.
func (c *Config) ArtifactsDir() string {
	if c.build.ArtifactsDir == "" {
		return ""
	}
	return c.abs(c.build.ArtifactsDir)
}

func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.build.Watch))
	for _, p := range c.build.Watch {
		paths = append(paths, c.abs(p))
	}
	return paths
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.projectRoot, path)
}
