// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/database"
	"github.com/brisingire/gastronomie-verzeichnis/internal/documents"
	"github.com/brisingire/gastronomie-verzeichnis/internal/i18n"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/cache"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/delivery"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/directory"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/email"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/storage"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/verification"
	"github.com/brisingire/gastronomie-verzeichnis/internal/sse"
	"github.com/vinovest/sqlx"
)

// App holds the services shared by the HTTP server and the CLI commands.
type App struct {
	Config    *config.Config
	DB        *sqlx.DB
	Repo      *repository.Repository
	Directory *directory.Service
	Gate      *verification.Gate
	Delivery  *delivery.Service
	Hub       *sse.Hub
	Store     storage.Store

	suggestions *cache.SuggestionCache
}

// NewApp opens the database and wires all services from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &App{Config: cfg, DB: db, Repo: repository.New(db)}
	if err := app.wire(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config

	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to init i18n: %w", err)
	}

	assets, err := documents.LoadAssets(cfg.Assets)
	if err != nil {
		return fmt.Errorf("failed to load document assets: %w", err)
	}
	composer := documents.New(assets, documents.IssuerFromConfig(cfg.Invoice))

	a.Store, err = storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to set up storage: %w", err)
	}

	a.suggestions, err = cache.NewFromURL(ctx, cfg.Redis.URL, cfg.Redis.SuggestTTL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	mailer, err := newMailer(cfg)
	if err != nil {
		return err
	}

	a.Hub = sse.NewHub()
	a.Gate = verification.NewGate(a.Repo)

	if a.suggestions != nil {
		a.Directory = directory.New(a.Repo, a.suggestions)
	} else {
		a.Directory = directory.New(a.Repo, nil)
	}

	a.Delivery = delivery.New(a.Repo, composer, mailer, a.Store, a.Hub)
	if cfg.Unlock.ClaimTTL > 0 {
		a.Delivery.ClaimTTL = cfg.Unlock.ClaimTTL
	}

	return nil
}

func newMailer(cfg *config.Config) (delivery.Mailer, error) {
	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP host not configured, emails are logged and unlocks fail")
		return email.LogService{}, nil
	}
	svc, err := email.NewService(&cfg.SMTP)
	if err != nil {
		return nil, fmt.Errorf("failed to set up email: %w", err)
	}
	return svc, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.suggestions != nil {
		errs = append(errs, a.suggestions.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
