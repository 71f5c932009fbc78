package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ay-kasimov/shed/internal/bootstrap"
	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/config"
	"github.com/ay-kasimov/shed/internal/database"
	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/export"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/server"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/statistics"
	"github.com/ay-kasimov/shed/internal/tag"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "shed-server",
		Short:         "Practice tracker HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	c := cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	lessonRepo := lesson.NewDBRepository(db)
	settingsService := settings.NewService(settings.NewDBRepository(db), c)
	statsService := statistics.NewService(
		lessonRepo,
		record.NewDBRepository(db),
		record.NewDBStreakHistoryRepository(db),
		settingsService,
		c,
	)
	srv := server.NewServer(
		cfg,
		lesson.NewService(lessonRepo, c),
		tag.NewService(tag.NewDBRepository(db), c),
		statsService,
		settingsService,
		datasync.NewSyncer(lessonRepo, c, os.Stdout),
		export.NewExporter(statsService),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(srv.Handler(), &http2.Server{}),
	}
	app.AddShutdownHook(httpServer.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
