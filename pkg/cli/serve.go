package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/cli/config"
	controller "github.com/m-mizutani/storeget/pkg/controller/http"
	"github.com/m-mizutani/storeget/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		storeCfg  config.Store
		dlCfg     config.Download
		cfgPath   string
	)

	flags := []cli.Flag{config.FileFlag(&cfgPath)}
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, dlCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start a local HTTP API for resolving and downloading assets",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			file, err := config.LoadFile(cfgPath)
			if err != nil {
				return err
			}
			storeCfg.ApplyFile(file)
			dlCfg.ApplyFile(file)

			destDir, err := dlCfg.ResolveDir()
			if err != nil {
				return err
			}

			resolveUC := usecase.NewResolve(newCatalog(&storeCfg))
			downloadUC := usecase.NewDownload(
				usecase.WithTimeout(dlCfg.Timeout),
				usecase.WithChunkSize(dlCfg.ChunkSize),
			)

			server, err := controller.NewServer(
				ctx,
				resolveUC,
				downloadUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithDownloadDir(destDir),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
