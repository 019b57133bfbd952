package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/vidgrab/internal/api"
	"github.com/iconidentify/vidgrab/internal/api/handler"
	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/service"
	"github.com/iconidentify/vidgrab/pkg/execx"
	"github.com/iconidentify/vidgrab/pkg/ffmpeg"
	"github.com/iconidentify/vidgrab/pkg/ytdlp"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vidgrab %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting vidgrab",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.Storage.OutputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	for _, bin := range []string{cfg.Tools.YtDlpPath, cfg.Tools.FFmpegPath} {
		if _, err := execx.LookPath(bin); err != nil {
			logger.Warn("external tool unavailable", "tool", bin, "error", err)
		}
	}

	// Initialize dependencies
	runner := execx.NewOSRunner()
	extractor := ytdlp.NewClient(cfg.Tools, runner)
	merger := ffmpeg.NewStreamMerger(cfg.Tools, runner)

	videoInfoSvc := service.NewVideoInfoService(extractor, merger, cfg.Storage, logger)

	// Setup router
	router := api.NewRouter(api.Handlers{
		VideoInfo: handler.NewVideoInfoHandler(videoInfoSvc, logger),
		Health:    handler.NewHealthHandler(cfg.Tools, cfg.Storage),
		UI:        handler.NewUIHandler(),
		Downloads: handler.NewDownloadsHandler(cfg.Storage.OutputDir, api.DownloadsPrefix),
	}, cfg.Server, cfg.RateLimit)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
