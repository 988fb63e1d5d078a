package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"msa-addon/internal/addon"
	"msa-addon/internal/catalog"
	"msa-addon/internal/platform/config"
	"msa-addon/internal/platform/logger"
	"msa-addon/internal/platform/metrics"
	"msa-addon/internal/platform/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context) error {
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		File:   settings.LogFile,
	})

	fs := afero.NewOsFs()
	snap, err := catalog.LoadSnapshot(fs, settings.MediaRoot)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store := catalog.NewStore(snap)

	sources, err := addon.NewURLSourceResolver(settings.BaseStreamAddress)
	if err != nil {
		return err
	}

	met := metrics.New()
	met.SetCatalogTitles(snap.Len())
	h := addon.NewHandler(
		addon.NewResolver(store, sources),
		addon.NewManifest(addon.ManifestOptions{ID: settings.AddonID, ContactEmail: settings.ContactEmail, Logo: settings.Logo}),
		log,
		met,
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RequestMetrics(met))
	r.Use(middleware.AddonHeaders)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetCatalogTitles(store.Snapshot().Len()) }).ServeHTTP(w, r)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	h.Routes(r)
	if settings.ServeMedia {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(settings.MediaRoot))))
	}

	addr := ":" + settings.Port
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if settings.WatchCatalog {
		w := catalog.NewWatcher(store, fs, settings.MediaRoot, log, met)
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown signal received, draining connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Info("server starting",
		slog.String("port", settings.Port),
		slog.String("media_root", settings.MediaRoot),
		slog.String("base_stream_address", settings.BaseStreamAddress),
		slog.Int("titles", snap.Len()),
		slog.Bool("watch_catalog", settings.WatchCatalog),
		slog.String("log_level", settings.LogLevel),
	)

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	log.Info("server stopped")
	return nil
}
