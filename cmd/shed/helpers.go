package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/config"
	"github.com/ay-kasimov/shed/internal/database"
	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/export"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/statistics"
	"github.com/ay-kasimov/shed/internal/tag"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// app bundles the open database with the services a command needs.
type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	lessons  *lesson.Service
	tags     *tag.Service
	stats    *statistics.Service
	settings *settings.Service
	syncer   *datasync.Syncer
	exporter *export.Exporter
}

// openApp loads the configuration, opens the database and wires the services.
// Sync progress lines go to out.
func openApp(out io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

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

	return &app{
		cfg:      cfg,
		db:       db,
		lessons:  lesson.NewService(lessonRepo, c),
		tags:     tag.NewService(tag.NewDBRepository(db), c),
		stats:    statsService,
		settings: settingsService,
		syncer:   datasync.NewSyncer(lessonRepo, c, out),
		exporter: export.NewExporter(statsService),
	}, nil
}

// Close releases the database handle.
func (a *app) Close() error {
	return a.db.Close()
}
