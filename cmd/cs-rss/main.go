package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iceq1337/cs-rss-feed/app/api"
	"github.com/iceq1337/cs-rss-feed/app/cfg"
	"github.com/iceq1337/cs-rss-feed/app/database"
	"github.com/iceq1337/cs-rss-feed/app/feed"
	"github.com/iceq1337/cs-rss-feed/app/markup"
	"github.com/iceq1337/cs-rss-feed/app/steam"
	"github.com/iceq1337/cs-rss-feed/app/tasks"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is fine.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if appCfg == nil {
		return 0
	}

	setupLogging(appCfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	langs, err := feed.LoadLanguages(appCfg.LanguagesFile)
	if err != nil {
		slog.Error("Failed to load languages", "file", appCfg.LanguagesFile, "error", err)
		return 1
	}

	var runRepo database.RunRepository
	if appCfg.HistoryDB != "" {
		db, err := database.NewConnection(appCfg.HistoryDB)
		if err != nil {
			slog.Error("Failed to open history database", "path", appCfg.HistoryDB, "error", err)
			return 1
		}
		defer db.Close()

		schema, err := database.RunMigrations(db)
		if err != nil {
			slog.Error("Failed to migrate history database", "path", appCfg.HistoryDB, "error", err)
			return 1
		}
		slog.Debug("History database ready", "path", appCfg.HistoryDB, "version", schema.Version)

		runRepo = database.NewRunRepository(db)
	}

	var renderer feed.Renderer = markup.NewDefault()
	if appCfg.Sanitize {
		renderer = markup.NewSanitizer().Wrap(markup.NewDefault())
	}

	client := steam.NewClient(&http.Client{Timeout: appCfg.Timeout}, steam.Options{
		APIURL:    appCfg.APIURL,
		AppID:     appCfg.AppID,
		Origin:    appCfg.Origin,
		Count:     appCfg.Count,
		Timeout:   appCfg.Timeout,
		UserAgent: appCfg.UserAgent,
	})

	runner := tasks.NewRunner(client, renderer, runRepo, tasks.RunnerOptions{
		FeedsDir:    appCfg.FeedsDir,
		FeedBaseURL: appCfg.FeedBaseURL,
		Generator:   "CS-RSS-Feed/" + appCfg.Version,
	})

	refresh := func(ctx context.Context) (tasks.Summary, error) {
		return runner.Run(ctx, langs)
	}

	if appCfg.Serve {
		return serve(ctx, appCfg, runRepo, refresh)
	}

	slog.Info("Refreshing feeds", "languages", len(langs), "feeds_dir", appCfg.FeedsDir, "version", appCfg.Version)

	if _, err := refresh(ctx); err != nil {
		slog.Error("Refresh finished with errors", "error", err)
		return 1
	}

	return 0
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func serve(ctx context.Context, appCfg *cfg.Cfg, runRepo database.RunRepository, refresh api.RefreshFunc) int {
	handler := api.NewHandler(appCfg.FeedsDir, runRepo, refresh, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "feeds_dir", appCfg.FeedsDir)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return 1
	}

	slog.Info("HTTP server stopped")
	return exitCode
}
