package subcmds

import (
	"fmt"
	"os"
	"time"

	"github.com/vcnkl/xbuild/actions"
	"github.com/vcnkl/xbuild/artifacts"
	"github.com/vcnkl/xbuild/config"
	"github.com/vcnkl/xbuild/exec"
	"github.com/vcnkl/xbuild/git"
	"github.com/vcnkl/xbuild/logger"
	"github.com/vcnkl/xbuild/models"
	"github.com/vcnkl/xbuild/report"
	"github.com/vcnkl/xbuild/stores/runs"

	"github.com/urfave/cli/v2"
)

func BuildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build release artifacts for every configured target",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "targets",
				Aliases: []string{"t"},
				Usage:   "Comma-separated target triples overriding the configured list",
			},
			&cli.BoolFlag{
				Name:  "stop-on-failure",
				Usage: "Stop at the first failed target instead of continuing",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the toolchain invocations without executing",
			},
		},
		Action: func(ctx *cli.Context) error {
			debug := ctx.Bool("debug")

			level := logger.InfoLevel
			if debug {
				level = logger.DebugLevel
			}
			log := logger.New(level)

			cfg := config.NewConfig(ctx.String("config"))
			build := cfg.Build()

			triples := build.Triples()
			if s := ctx.String("targets"); s != "" {
				triples = models.ParseTriples(s)
			}

			stopOnFailure := build.StopOnFailure || ctx.Bool("stop-on-failure")

			invoker := &exec.ToolInvoker{
				Tool:    build.Tool,
				Args:    build.Args,
				Release: build.ReleaseEnabled(),
				Env:     exec.ComposeEnv(cfg.ProjectRoot(), build.Env),
				Timeout: build.ToolTimeout,
			}

			action := actions.NewBuildAction(invoker, log, cfg.LogDir(), stopOnFailure)

			if ctx.Bool("dry-run") {
				action.DryRun(triples)
				return nil
			}

			rep, err := action.Execute(ctx.Context, triples)
			if err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}

			finishRun(cfg, log, rep)

			log.Info(fmt.Sprintf("%d/%d targets succeeded", rep.Succeeded(), len(rep.Results)),
				logger.Duration("duration", rep.Duration))

			if !rep.OK() {
				return cli.Exit("build failed", 1)
			}

			log.Info("build complete!")
			return nil
		},
	}
}

// finishRun records the pass: report file, run history, artifact checksums,
// and the captured output of every failed target on stderr.
func finishRun(cfg *config.Config, log logger.Logger, rep *models.Report) {
	revision := git.Head(cfg.ProjectRoot())
	version, _ := git.Describe(cfg.ProjectRoot())

	meta := report.Meta{
		Generated: time.Now(),
		Revision:  revision,
		Version:   version,
	}
	if err := report.WriteFile(cfg.ReportPath(), rep, meta); err != nil {
		log.Warn("failed to write report", logger.Err(err))
	} else {
		log.Info("report written", logger.String("path", cfg.ReportPath()))
	}

	store := runs.NewStore(cfg.RunsPath())
	if err := store.Load(); err != nil {
		log.Warn("failed to load run history", logger.Err(err))
	}
	store.Append(runs.FromReport(rep, revision))
	if err := store.Save(); err != nil {
		log.Warn("failed to save run history", logger.Err(err))
	}

	if dir := cfg.ArtifactsDir(); dir != "" && rep.OK() {
		sums, err := artifacts.Collect(dir)
		if err != nil {
			log.Warn("failed to checksum artifacts", logger.Err(err))
		} else if err = artifacts.WriteSums(dir, sums); err != nil {
			log.Warn("failed to write checksums", logger.Err(err))
		} else {
			log.Info("checksums written", logger.Int("files", len(sums)))
		}
	}

	for _, res := range rep.Failed() {
		fmt.Fprintf(os.Stderr, "--- %s (exit %d) ---\n%s\n", res.Triple, res.ExitCode, res.Output)
	}
}
