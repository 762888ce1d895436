package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"urljournal/internal/api"
	"urljournal/internal/api/handler/v1handler"
	"urljournal/internal/config"
	"urljournal/internal/watcher"
	"urljournal/pkg/logger"
	"urljournal/pkg/storage"
	"urljournal/pkg/storage/memory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, reports storage.ReportStorage) func(ctx context.Context) {
	server := api.NewServer(api.Deps{Deps: v1handler.Deps{Reports: reports}}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func watchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Starts the API server and takes scheduled snapshots of the watched URLs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(cfg.Watch.URLs) == 0 {
				return errors.New("no URLs to watch, set watch.urls or WATCH_URLS")
			}

			sender, err := newSender(cfg)
			if err != nil {
				return err
			}

			store := memory.New()
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn(ctx, "could not close storage", zap.Error(err))
				}
			}()

			w := watcher.New(watcher.Deps{
				Fetcher: newFetcher(cfg),
				Sender:  sender,
				Storage: store,
			}, watcher.Options{
				URLs:           cfg.Watch.URLs,
				Schedule:       cfg.Watch.Schedule,
				Recipient:      cfg.Notifier.Recipient,
				RecipientName:  cfg.Notifier.RecipientName,
				JournalOptions: journalOptions(cfg),
				RunOnStart:     cfg.Watch.RunOnStart,
			})

			stopWebserver := setupServer(ctx, cfg, store)

			if err := w.Start(ctx); err != nil {
				stopWebserver(context.WithoutCancel(ctx))

				return fmt.Errorf("could not start watcher: %w", err)
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			w.Stop(shutdownCtx)

			return nil
		},
	}

	return cmd
}
