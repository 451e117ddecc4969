package actions

import (
	"os"

	"github.com/pkg/errors"

	"github.com/vcnkl/xbuild/logger"
)

const starterConfig = `# xbuild configuration
tool: cargo
args: [build]
release: true
targets:
  - x86_64-unknown-linux-gnu
  - aarch64-unknown-linux-gnu
  - x86_64-pc-windows-gnu
  - x86_64-apple-darwin
  - aarch64-apple-darwin
stop_on_failure: false
log_dir: logs
report_file: build-report.txt
# artifacts_dir: target   # enables SHA256SUMS generation
# tool_timeout: 30m       # converts a hung build into a failed target
watch:
  - src
env: {}
`

type InitAction struct {
	log   logger.Logger
	path  string
	force bool
}

func NewInitAction(log logger.Logger, path string, force bool) *InitAction {
	return &InitAction{
		log:   log,
		path:  path,
		force: force,
	}
}

// Execute writes a starter xbuild.yml.
func (a *InitAction) Execute() error {
	if _, err := os.Stat(a.path); err == nil && !a.force {
		return errors.Errorf("%s already exists (use --force to overwrite)", a.path)
	}

	if err := os.WriteFile(a.path, []byte(starterConfig), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", a.path)
	}

	a.log.Info("wrote starter config", logger.String("path", a.path))
	return nil
}
