package subcmds

import (
	"fmt"

	"github.com/vcnkl/xbuild/config"

	"github.com/urfave/cli/v2"
)

func TargetsCmd() *cli.Command {
	return &cli.Command{
		Name:  "targets",
		Usage: "List the configured target triples, grouped by OS",
		Action: func(ctx *cli.Context) error {
			cfg := config.NewConfig(ctx.String("config"))

			group := ""
			for _, triple := range cfg.Build().Triples() {
				if g := triple.OS(); g != group {
					group = g
					fmt.Printf("%s:\n", group)
				}
				fmt.Printf("  %s\n", triple)
			}

			return nil
		},
	}
}
