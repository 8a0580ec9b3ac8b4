package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/cli/config"
	"github.com/m-mizutani/storeget/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var (
		storeCfg config.Store
		cfgPath  string
	)

	flags := append([]cli.Flag{config.FileFlag(&cfgPath)}, storeCfg.Flags()...)

	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Resolve a store product URL and list its assets without downloading",
		ArgsUsage: "<product URL>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadFile(cfgPath)
			if err != nil {
				return err
			}
			storeCfg.ApplyFile(file)

			productURL := c.Args().First()
			if productURL == "" {
				return goerr.New("product URL argument is required")
			}

			resolver := usecase.NewResolve(newCatalog(&storeCfg))
			result, err := resolver.Resolve(ctx, productURL)
			if err != nil {
				return err
			}

			cons := newConsole(os.Stdout, os.Stdin)
			cons.PrintAssets(result)
			cons.Infof("\n%d asset(s), family: %s", len(result.Assets), result.Family)
			return nil
		},
	}
}
