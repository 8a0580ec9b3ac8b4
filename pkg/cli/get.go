package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/storeget/pkg/cli/config"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/infra/msstore"
	"github.com/m-mizutani/storeget/pkg/infra/storage"
	"github.com/m-mizutani/storeget/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// DefaultProductURL is used when no URL argument is given
const DefaultProductURL = "https://apps.microsoft.com/detail/9pdxgncfsczv"

func cmdGet() *cli.Command {
	var (
		storeCfg config.Store
		dlCfg    config.Download
		histCfg  config.History
		cfgPath  string
		auto     bool
	)

	flags := []cli.Flag{
		config.FileFlag(&cfgPath),
		&cli.BoolFlag{
			Name:        "auto",
			Usage:       "Automatically download the first available asset",
			Destination: &auto,
			Sources:     cli.EnvVars("STOREGET_AUTO"),
		},
	}
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, dlCfg.Flags()...)
	flags = append(flags, histCfg.Flags()...)

	return &cli.Command{
		Name:      "get",
		Aliases:   []string{"g"},
		Usage:     "Resolve a store product URL and download a chosen asset",
		ArgsUsage: "[product URL]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadFile(cfgPath)
			if err != nil {
				return err
			}
			storeCfg.ApplyFile(file)
			dlCfg.ApplyFile(file)
			histCfg.ApplyFile(file)

			productURL := c.Args().First()
			if productURL == "" {
				productURL = DefaultProductURL
			}

			cons := newConsole(os.Stdout, os.Stdin)
			cons.Infof("Processing URL: %s", productURL)
			if auto {
				cons.Infof("Auto-download mode enabled")
			}

			resolver := usecase.NewResolve(newCatalog(&storeCfg))
			result, err := resolver.Resolve(ctx, productURL)
			if err != nil {
				return err
			}

			cons.PrintAssets(result)

			var asset model.Asset
			if auto {
				asset, err = autoSelect(result)
				if err != nil {
					return err
				}
				cons.Infof("Auto-selecting first asset: %s", asset.Name)
			} else {
				index, quit, err := cons.PromptChoice(len(result.Assets))
				if errors.Is(err, io.EOF) {
					cons.Infof("Running in non-interactive mode. Use --auto to download the first asset.")
					return nil
				}
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
				asset = result.Assets[index]
				cons.Infof("Selected: %s", asset.Name)
			}

			destDir, err := dlCfg.ResolveDir()
			if err != nil {
				return err
			}
			cons.Infof("Downloading to: %s", destDir)

			downloader := usecase.NewDownload(
				usecase.WithTimeout(dlCfg.Timeout),
				usecase.WithChunkSize(dlCfg.ChunkSize),
				usecase.WithProgressFunc(cons.ProgressFunc()),
			)

			res, dlErr := downloader.Download(ctx, asset, destDir)
			recordHistory(ctx, &histCfg, productURL, asset, res, dlErr)
			if dlErr != nil {
				return dlErr
			}

			cons.Successf("Asset downloaded to: %s", res.Path)
			return nil
		},
	}
}

// newCatalog builds the store catalog client from config, leaving unset
// values to the msstore defaults
func newCatalog(cfg *config.Store) interfaces.StoreCatalog {
	var opts []msstore.Option
	if cfg.APIBase != "" {
		opts = append(opts, msstore.WithAPIBase(cfg.APIBase))
	}
	if cfg.Market != "" {
		opts = append(opts, msstore.WithMarket(cfg.Market))
	}
	if cfg.Locale != "" {
		opts = append(opts, msstore.WithLocale(cfg.Locale))
	}
	return msstore.New(opts...)
}

// recordHistory appends a download record when history is configured. It is
// best effort: a broken history database never fails the download itself.
func recordHistory(ctx context.Context, cfg *config.History, productURL string, asset model.Asset, res *model.DownloadResult, dlErr error) {
	if !cfg.Enabled() {
		return
	}
	logger := ctxlog.From(ctx)

	store, err := storage.New(cfg.Path)
	if err != nil {
		logger.Warn("Failed to open history database", "error", err, "path", cfg.Path)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close history database", "error", err)
		}
	}()

	rec := &model.DownloadRecord{
		ProductURL: productURL,
		AssetName:  asset.Name,
		Arch:       asset.Arch,
		Extension:  asset.Extension,
		Family:     string(asset.Family),
		SourceURL:  asset.DownloadURL,
		Succeeded:  dlErr == nil,
		CreatedAt:  time.Now(),
	}
	if res != nil {
		rec.DestPath = res.Path
		rec.Size = res.Size
	}
	if dlErr != nil {
		rec.FailureKind = string(model.FailureKindOf(dlErr))
		rec.Error = dlErr.Error()
	}

	if err := store.Record(ctx, rec); err != nil {
		logger.Warn("Failed to record download history", "error", err)
	}
}
