package cmd

import (
	"github.com/vcnkl/xbuild/cmd/subcmds"

	"github.com/urfave/cli/v2"
)

func NewApp() *cli.App {
	return &cli.App{
		Name:    "xbuild",
		Usage:   "Cross-target release build orchestration",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to xbuild.yml (default: auto-detect via git root)",
			},
		},
		Commands: []*cli.Command{
			subcmds.InitCmd(),
			subcmds.BuildCmd(),
			subcmds.TargetsCmd(),
			subcmds.WatchCmd(),
		},
	}
}
