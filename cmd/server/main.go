package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shiinama/blog-sub000/internal/api"
	"github.com/Shiinama/blog-sub000/internal/cache"
	"github.com/Shiinama/blog-sub000/internal/config"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/render"
	"github.com/Shiinama/blog-sub000/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var renderOpts []render.Option
	if cfg.UnsafeHTML {
		renderOpts = append(renderOpts, render.WithUnsafeHTML())
	}
	assembler := &post.Assembler{
		Renderer:     render.New(renderOpts...),
		Locales:      post.NewLocales(cfg.DefaultLocale, cfg.Locales),
		PreviewRatio: cfg.PreviewRatio,
	}

	pages := cache.NewStore(cfg.CacheTTL, cfg.CacheMaxEntries)
	go pages.Run(ctx, cache.CleanupInterval)

	srv := api.NewServer(assembler, pages, stats.NewRenders(stats.DefaultWindow), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting blog content service", "port", cfg.Port, "locales", assembler.Locales.Supported)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
