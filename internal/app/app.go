// Package app wires configuration into the caption store, LLM client and
// caption service shared by the API server and captionctl.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"conferencecaptions/db"
	"conferencecaptions/internal/config"
	"conferencecaptions/internal/repository"
	"conferencecaptions/internal/service"
	"conferencecaptions/pkg/llm"
)

type App struct {
	Store   repository.CaptionStore
	Service *service.CaptionService
	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	store, err := a.openStore(ctx, cfg.Store)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Redis.URL != "" {
		err = db.ConnectRedis(ctx, cfg.Redis.URL)
		a.closers = append(a.closers, db.CloseRedis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("error connecting to Redis: %w", err)
		}
		store = repository.NewCachedCaptionStore(store, db.Redis, cfg.Redis.TTL)
		slog.Info("redis caption cache enabled", "ttl", cfg.Redis.TTL)
	}

	client, err := llm.NewClient(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store = store
	a.Service = service.NewCaptionService(store, client, service.Options{
		Model:        cfg.LLM.Model,
		MaxTokens:    cfg.LLM.MaxTokens,
		Temperature:  cfg.LLM.Temperature,
		Organization: cfg.LLM.Organization,
	})

	slog.Info("caption service ready",
		"store", cfg.Store.Driver,
		"provider", client.Name(),
		"model", cfg.LLM.Model,
	)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.StoreConfig) (repository.CaptionStore, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		err := db.ConnectMongo(ctx, cfg.MongoURI)
		a.closers = append(a.closers, db.CloseMongo)
		if err != nil {
			return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
		}
		return repository.NewCaptionMongoRepository(db.Mongo.Database(cfg.MongoDatabase)), nil

	case config.DriverPostgres:
		err := db.Connect(cfg.PostgresURL)
		a.closers = append(a.closers, db.Close)
		if err != nil {
			return nil, fmt.Errorf("error connecting to DB: %w", err)
		}
		repo := repository.NewCaptionRepository(db.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("error preparing captions table: %w", err)
		}
		return repo, nil

	case config.DriverSQLite:
		err := db.ConnectSQLite(cfg.SQLitePath)
		a.closers = append(a.closers, db.Close)
		if err != nil {
			return nil, fmt.Errorf("error opening SQLite database: %w", err)
		}
		repo := repository.NewCaptionSQLiteRepository(db.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("error preparing captions table: %w", err)
		}
		return repo, nil
	}

	return nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Driver)
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// SetupLogger installs the default slog logger writing to w with the given
// level and format ("json" or "text").
func SetupLogger(w io.Writer, level, format string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
