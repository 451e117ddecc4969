package actions

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/vcnkl/xbuild/exec"
	"github.com/vcnkl/xbuild/logger"
	"github.com/vcnkl/xbuild/models"
)

// ErrNoTargets is the structural error for a run requested with an empty
// target list; there is nothing meaningful to orchestrate.
var ErrNoTargets = errors.New("no targets configured")

// BuildAction runs the configured toolchain once per target triple, in
// order, and aggregates the outcomes. A failed target never halts the run
// unless stopOnFailure is set: one broken target must not block release
// artifacts for the others.
type BuildAction struct {
	invoker       exec.Invoker
	log           logger.Logger
	logDir        string
	stopOnFailure bool
}

// NewBuildAction wires an orchestration pass. logDir is the root for
// per-session toolchain logs; empty disables log files.
func NewBuildAction(invoker exec.Invoker, log logger.Logger, logDir string, stopOnFailure bool) *BuildAction {
	return &BuildAction{
		invoker:       invoker,
		log:           log,
		logDir:        logDir,
		stopOnFailure: stopOnFailure,
	}
}

// Execute visits every triple exactly once, strictly sequentially: target
// builds share toolchain caches and lock files, so they must not overlap.
// Tool failures of any kind are downgraded to failed results; only a
// structural problem is returned as an error.
func (a *BuildAction) Execute(ctx context.Context, triples []models.Triple) (*models.Report, error) {
	if len(triples) == 0 {
		return nil, ErrNoTargets
	}
	if a.invoker == nil {
		return nil, errors.New("no toolchain invoker configured")
	}

	rep := &models.Report{Started: time.Now()}

	sessionDir := a.sessionDir()

	group := ""
	for _, triple := range triples {
		if g := triple.OS(); g != group {
			group = g
			a.log.Info("building for " + group + "...")
		}

		targetLog := a.log.WithTarget(triple.String())
		targetLog.Info("starting...")

		result := a.buildTarget(ctx, triple, sessionDir, targetLog)
		rep.Results = append(rep.Results, result)

		if result.Success {
			targetLog.Info("completed", logger.Duration("duration", result.Duration))
			continue
		}

		targetLog.Error("failed",
			logger.Int("exit_code", result.ExitCode),
			logger.Err(result.Err))

		if a.stopOnFailure {
			a.log.Warn("stopping after first failure",
				logger.Int("remaining", len(triples)-len(rep.Results)))
			break
		}
	}

	rep.Duration = time.Since(rep.Started)
	return rep, nil
}

func (a *BuildAction) buildTarget(ctx context.Context, triple models.Triple, sessionDir string, targetLog logger.Logger) models.TargetResult {
	console := io.Writer(targetLog.Writer())

	if sessionDir != "" {
		logPath := filepath.Join(sessionDir, triple.String()+".log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			targetLog.Warn("failed to open target log file", logger.Err(err))
		} else {
			defer f.Close()
			console = io.MultiWriter(f, console)
		}
	}

	inv := a.invoker.Invoke(ctx, triple, console)

	return models.TargetResult{
		Triple:   triple,
		Success:  inv.Err == nil,
		ExitCode: inv.ExitCode,
		Duration: inv.Duration,
		Output:   inv.Output,
		Err:      inv.Err,
	}
}

// sessionDir creates a timestamped directory so every run keeps its
// per-target tool logs together.
func (a *BuildAction) sessionDir() string {
	if a.logDir == "" {
		return ""
	}

	dir := filepath.Join(a.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		a.log.Warn("failed to create session log directory", logger.Err(err))
		return ""
	}
	return dir
}

// DryRun prints the invocations a run would perform without executing them.
func (a *BuildAction) DryRun(triples []models.Triple) {
	type previewer interface {
		Command(models.Triple) string
	}

	p, ok := a.invoker.(previewer)

	for _, triple := range triples {
		a.log.Info("target",
			logger.String("triple", triple.String()),
			logger.String("group", triple.OS()))
		if ok {
			a.log.Info("command", logger.String("cmd", p.Command(triple)))
		}
	}
}
