package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tex2html/internal/audit"
	"github.com/alnah/go-tex2html/internal/config"
)

func main() {
	configName := flag.StringP("config", "c", "", "config file name or path")
	addr := flag.String("addr", config.DefaultServerAddr, "listen address")
	dir := flag.String("dir", ".", "directory with converted HTML and manifest.json")
	sourceDir := flag.String("source-dir", "", "directory with .tex sources (default: --dir)")
	auditDB := flag.String("audit-db", "", "SQLite audit log path")
	driveLink := flag.String("drive-link", "", "cloud-drive share link for /download")
	corsOrigins := flag.String("cors-origins", "", "comma-separated allowed CORS origins")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// Config supplies defaults; explicit flags win.
	if *configName != "" {
		cfg, err := config.LoadConfig(*configName)
		if err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
		if !flag.CommandLine.Changed("addr") && cfg.Server.Addr != "" {
			*addr = cfg.Server.Addr
		}
		if !flag.CommandLine.Changed("dir") && cfg.Output.DefaultDir != "" {
			*dir = cfg.Output.DefaultDir
		}
		if !flag.CommandLine.Changed("source-dir") && cfg.Input.DefaultDir != "" {
			*sourceDir = cfg.Input.DefaultDir
		}
		if *auditDB == "" {
			*auditDB = cfg.Audit.DBPath
		}
		if *driveLink == "" {
			*driveLink = cfg.Drive.ShareLink
		}
	}

	if *sourceDir == "" {
		*sourceDir = *dir
	}

	var store *audit.Store
	if *auditDB != "" {
		var err error
		store, err = audit.Open(*auditDB)
		if err != nil {
			slog.Error("opening audit log", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	h, err := newHandler(*dir, *sourceDir, *driveLink, store)
	if err != nil {
		slog.Error("configuring server", "error", err)
		os.Exit(1)
	}

	// Middleware chain: recovery -> cors -> logging -> mux
	var handler http.Handler = h.routes()
	handler = logMiddleware(handler)
	handler = corsMiddleware(*corsOrigins, handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", *addr, "dir", *dir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
