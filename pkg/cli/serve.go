package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	githubctrl "github.com/m-mizutani/herald/pkg/controller/github"
	controller "github.com/m-mizutani/herald/pkg/controller/http"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/infra/favro"
	"github.com/m-mizutani/herald/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		favroCfg  config.Favro
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, favroCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			logger.Info("Starting herald server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("favro", favroCfg),
			)

			var favroClient interfaces.FavroClient
			if favroCfg.Enabled() {
				favroClient = favro.NewClient(favroCfg.Org, favroCfg.Auth)
			} else {
				logger.Warn("Favro credentials not configured, running in dry-run mode")
			}

			relayUC := usecase.NewRelay(favroCfg.Prefix, favroClient)
			processor := githubctrl.NewEventProcessor(relayUC)

			server, err := controller.NewServer(
				ctx,
				processor,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
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

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
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
