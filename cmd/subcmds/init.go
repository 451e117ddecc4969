package subcmds

import (
	"github.com/vcnkl/xbuild/actions"
	"github.com/vcnkl/xbuild/config"
	"github.com/vcnkl/xbuild/logger"

	"github.com/urfave/cli/v2"
)

func InitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter xbuild.yml to the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing xbuild.yml",
			},
		},
		Action: func(ctx *cli.Context) error {
			log := logger.New(logger.InfoLevel)

			path := ctx.String("config")
			if path == "" {
				path = config.FileName
			}

			action := actions.NewInitAction(log, path, ctx.Bool("force"))
			if err := action.Execute(); err != nil {
				return cli.Exit("error: "+err.Error(), 1)
			}

			return nil
		},
	}
}
