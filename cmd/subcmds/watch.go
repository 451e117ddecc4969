package subcmds

import (
	"github.com/vcnkl/xbuild/actions"
	"github.com/vcnkl/xbuild/config"
	"github.com/vcnkl/xbuild/exec"
	"github.com/vcnkl/xbuild/logger"
	"github.com/vcnkl/xbuild/models"

	"github.com/urfave/cli/v2"
)

func WatchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Rebuild all targets whenever the watched source paths change",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "targets",
				Aliases: []string{"t"},
				Usage:   "Comma-separated target triples overriding the configured list",
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

			invoker := &exec.ToolInvoker{
				Tool:    build.Tool,
				Args:    build.Args,
				Release: build.ReleaseEnabled(),
				Env:     exec.ComposeEnv(cfg.ProjectRoot(), build.Env),
				Timeout: build.ToolTimeout,
			}

			buildAction := actions.NewBuildAction(invoker, log, cfg.LogDir(), build.StopOnFailure)
			action := actions.NewWatchAction(buildAction, log, cfg.WatchPaths(), []string{build.LogDir, build.ArtifactsDir})

			if err := action.Execute(ctx.Context, triples); err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}

			return nil
		},
	}
}
