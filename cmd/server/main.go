package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DoyleJ11/debate-timer-backend/internal/catalog"
	"github.com/DoyleJ11/debate-timer-backend/internal/clock"
	"github.com/DoyleJ11/debate-timer-backend/internal/config"
	"github.com/DoyleJ11/debate-timer-backend/internal/httpapi"
	"github.com/DoyleJ11/debate-timer-backend/internal/hub"
	"github.com/DoyleJ11/debate-timer-backend/internal/journal"
	"github.com/DoyleJ11/debate-timer-backend/internal/logging"
	"github.com/DoyleJ11/debate-timer-backend/internal/room"
	"github.com/DoyleJ11/debate-timer-backend/internal/sound"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() (err error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	formats := catalog.Default()
	if cfg.CatalogPath != "" {
		if formats, err = catalog.Load(cfg.CatalogPath); err != nil {
			return err
		}
		logger.Info("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Strings("formats", formats.Names()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	var recorder journal.Recorder = journal.Nop{}
	if cfg.DatabaseURL != "" {
		store, openErr := journal.Open(cfg.DatabaseURL)
		if openErr != nil {
			return openErr
		}
		defer func() { err = multierr.Append(err, store.Close()) }()

		writer := journal.NewWriter(store, cfg.JournalBuffer, logger)
		g.Go(func() error { return writer.Run(ctx) })
		recorder = writer
		logger.Info("journal enabled")
	}

	cues := sound.NewAsync(sound.NewLogger(logger), 16, logger)
	g.Go(func() error { return cues.Run(ctx) })

	h := hub.NewHub(ctx, room.Config{
		Formats:      formats,
		Cues:         cues,
		Journal:      recorder,
		Clock:        clock.Real{},
		TickInterval: cfg.TickInterval,
		IdleTimeout:  cfg.IdleTimeout,
		Logger:       logger,
	})

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:       h,
			Formats:   formats,
			Logger:    logger,
			PublicURL: cfg.PublicURL,
		}),
	}

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return multierr.Combine(
			srv.Shutdown(shutdownCtx),
			h.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}
