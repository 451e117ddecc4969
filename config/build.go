package config

import (
	"time"

	"github.com/vcnkl/xbuild/models"
)

// DefaultTargets is the platform set release artifacts are published for,
// ordered so that same-OS targets are built back to back.
var DefaultTargets = []string{
	"x86_64-unknown-linux-gnu",
	"aarch64-unknown-linux-gnu",
	"x86_64-pc-windows-gnu",
	"x86_64-apple-darwin",
	"aarch64-apple-darwin",
}

type BuildConfig struct {
	Tool          string            `koanf:"tool"`
	Args          []string          `koanf:"args"`
	Release       *bool             `koanf:"release"`
	Targets       []string          `koanf:"targets"`
	StopOnFailure bool              `koanf:"stop_on_failure"`
	ToolTimeout   time.Duration     `koanf:"tool_timeout"`
	LogDir        string            `koanf:"log_dir"`
	ReportFile    string            `koanf:"report_file"`
	ArtifactsDir  string            `koanf:"artifacts_dir"`
	Env           map[string]string `koanf:"env"`
	Watch         []string          `koanf:"watch"`
}

func (b *BuildConfig) SetDefaults() {
	if b.Tool == "" {
		b.Tool = "cargo"
	}
	if b.Args == nil {
		b.Args = []string{"build"}
	}
	if b.Release == nil {
		release := true
		b.Release = &release
	}
	if len(b.Targets) == 0 {
		b.Targets = append([]string(nil), DefaultTargets...)
	}
	if b.LogDir == "" {
		b.LogDir = "logs"
	}
	if b.ReportFile == "" {
		b.ReportFile = "build-report.txt"
	}
	if b.Env == nil {
		b.Env = make(map[string]string)
	}
	if b.Watch == nil {
		b.Watch = []string{"src"}
	}
}

func (b *BuildConfig) ReleaseEnabled() bool {
	return b.Release != nil && *b.Release
}

// Triples returns the configured target list in declaration order.
func (b *BuildConfig) Triples() []models.Triple {
	triples := make([]models.Triple, 0, len(b.Targets))
	for _, t := range b.Targets {
		triples = append(triples, models.Triple(t))
	}
	return triples
}
