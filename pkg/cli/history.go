package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/cli/config"
	"github.com/m-mizutani/storeget/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

func cmdHistory() *cli.Command {
	var (
		histCfg config.History
		cfgPath string
		limit   int
	)

	flags := []cli.Flag{
		config.FileFlag(&cfgPath),
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of records to show",
			Value:       20,
			Destination: &limit,
		},
	}
	flags = append(flags, histCfg.Flags()...)

	return &cli.Command{
		Name:  "history",
		Usage: "Show recent download history",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadFile(cfgPath)
			if err != nil {
				return err
			}
			histCfg.ApplyFile(file)

			if !histCfg.Enabled() {
				return goerr.New("history database is not configured, set --history-db")
			}

			store, err := storage.New(histCfg.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(ctx, limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No download history")
				return nil
			}

			ok := color.New(color.FgGreen).SprintFunc()
			failed := color.New(color.FgRed).SprintFunc()
			for _, rec := range records {
				status := ok("ok")
				if !rec.Succeeded {
					status = failed(rec.FailureKind)
				}
				fmt.Fprintf(os.Stdout, "%s  %-8s  %-10s  %10d  %s  %s\n",
					rec.CreatedAt.Format("2006-01-02 15:04:05"),
					status,
					rec.Arch,
					rec.Size,
					rec.AssetName,
					rec.DestPath,
				)
			}
			return nil
		},
	}
}
