package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/thumbcard/internal/api"
	"github.com/youruser/thumbcard/internal/cards"
	"github.com/youruser/thumbcard/internal/config"
	imagepkg "github.com/youruser/thumbcard/internal/image"
	"github.com/youruser/thumbcard/internal/logx"
	"github.com/youruser/thumbcard/internal/util"
	"github.com/youruser/thumbcard/internal/watcher"
)

func main() {
	configPath := flag.String("config", os.Getenv("THUMBCARD_CONFIG"), "Path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Warn("config", "err", err)
	}
	logx.SetDefault(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the catalog at startup (best-effort)
	store := cards.NewStore(nil)
	if err := store.Reload(cfg.DataDir); err != nil {
		slog.Warn("failed to load catalog at startup", "dir", cfg.DataDir, "err", err)
	}
	if err := util.EnsureDir(cfg.OutputDir); err != nil {
		slog.Error("output dir", "dir", cfg.OutputDir, "err", err)
		os.Exit(1)
	}

	comp, err := imagepkg.NewCompositor(imagepkg.WithMaxDimension(cfg.MaxDimension))
	if err != nil {
		slog.Error("compositor", "err", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	if cfg.WatchCatalog {
		w, err := watcher.New(cfg.DataDir, cards.IsCatalogFile)
		if err != nil {
			slog.Warn("catalog hot reload disabled", "err", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Start(ctx, func() {
					if err := store.Reload(cfg.DataDir); err != nil {
						slog.Warn("catalog reload failed, keeping previous", "err", err)
					}
				})
			}()
		}
	}

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	api.RegisterRoutes(r, &api.Handler{
		Store:      store,
		Fetcher:    imagepkg.NewFetcher(time.Duration(cfg.FetchTimeout)),
		Compositor: comp,
		OutputDir:  cfg.OutputDir,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Workers:    cfg.Workers,
	})

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Port), Handler: r}
	go func() {
		<-ctx.Done()
		slog.Info("server is shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown", "err", err)
		}
	}()

	slog.Info("starting server", "addr", "http://localhost:"+strconv.Itoa(cfg.Port), "size", strconv.Itoa(cfg.Width)+"x"+strconv.Itoa(cfg.Height))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "err", err)
		stop()
	}
	wg.Wait()
	slog.Info("shutdown complete")
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
