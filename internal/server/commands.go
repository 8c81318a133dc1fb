// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/database"
	"github.com/brisingire/gastronomie-verzeichnis/internal/importer"
	"github.com/urfave/cli/v3"
)

// Commands returns the maintenance subcommands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "serve",
			Usage:  "Run the HTTP server",
			Action: Run,
		},
		{
			Name:      "import",
			Usage:     "Create or update restaurants from a TOML seed file",
			ArgsUsage: "FILE",
			Action:    withApp(importAction),
		},
		{
			Name:      "regenerate",
			Usage:     "Render and publish the test report of a restaurant",
			ArgsUsage: "SLUG",
			Action:    withApp(regenerateAction),
		},
		{
			Name:      "render",
			Usage:     "Write report, certificate and invoice of a restaurant to disk",
			ArgsUsage: "SLUG",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: ".",
					Usage: "Output directory",
				},
			},
			Action: withApp(renderAction),
		},
		{
			Name:      "deliveries",
			Usage:     "List the delivery attempts of a restaurant",
			ArgsUsage: "SLUG",
			Action:    withApp(deliveriesAction),
		},
		{
			Name:  "migrate",
			Usage: "Roll back database migrations",
			Commands: []*cli.Command{
				{
					Name:   "down",
					Usage:  "Roll back the latest migration",
					Action: migrateAction(database.MigrateDown),
				},
				{
					Name:   "reset",
					Usage:  "Roll back all migrations",
					Action: migrateAction(database.MigrateReset),
				},
			},
		},
	}
}

type appAction func(ctx context.Context, cmd *cli.Command, app *App) error

// withApp builds the App from the command flags for the duration of action.
func withApp(action appAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		setupLogger(cfg.Log.Level, cfg.Log.Format)

		app, err := NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := app.Close(); closeErr != nil {
				slog.Error("failed to close app", "error", closeErr)
			}
		}()

		return action(ctx, cmd, app)
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return arg, nil
}

func importAction(ctx context.Context, cmd *cli.Command, app *App) error {
	path, err := requireArg(cmd, "FILE")
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // path is given by the operator
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := importer.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	result, err := importer.Import(ctx, app.Repo, records)
	if err != nil {
		return err
	}
	app.Directory.Invalidate(ctx)

	slog.Info("import finished", "created", result.Created, "updated", result.Updated)
	_, err = fmt.Fprintf(cmd.Root().Writer, "%d created, %d updated\n", result.Created, result.Updated)
	return err
}

func regenerateAction(ctx context.Context, cmd *cli.Command, app *App) error {
	slug, err := requireArg(cmd, "SLUG")
	if err != nil {
		return err
	}

	url, err := app.Delivery.RegenerateReport(ctx, slug)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, url)
	return err
}

func renderAction(ctx context.Context, cmd *cli.Command, app *App) error {
	slug, err := requireArg(cmd, "SLUG")
	if err != nil {
		return err
	}

	bundle, err := app.Delivery.Render(ctx, slug)
	if err != nil {
		return err
	}

	dir := cmd.String("out")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"report.jpg", bundle.Report},
		{"certificate.png", bundle.Certificate},
		{"invoice.pdf", bundle.Invoice.PDF},
	}

	var errs []error
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o600); err != nil {
			errs = append(errs, fmt.Errorf("writing %s: %w", path, err))
			continue
		}
		if _, err := fmt.Fprintln(cmd.Root().Writer, path); err != nil {
			errs = append(errs, err)
		}
	}
	slog.Info("documents rendered", "slug", slug, "invoice", bundle.Invoice.Number, "dir", dir)
	return errors.Join(errs...)
}

func deliveriesAction(ctx context.Context, cmd *cli.Command, app *App) error {
	slug, err := requireArg(cmd, "SLUG")
	if err != nil {
		return err
	}

	rest, err := app.Repo.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", slug, err)
	}
	deliveries, err := app.Repo.ListDeliveries(ctx, rest.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tSTATUS\tEMAIL\tINVOICE\tERROR")
	for _, d := range deliveries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.CreatedAt.Format(time.RFC3339), d.Status, d.Email, d.InvoiceNumber, d.Error)
	}
	return w.Flush()
}

// migrateAction opens the database, which applies pending migrations, and
// then runs rollback.
func migrateAction(rollback func(db *sql.DB, driver string) error) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		setupLogger(cfg.Log.Level, cfg.Log.Format)

		driver := cfg.Database.Driver
		if driver == "" {
			driver = database.DriverSQLite
		}

		db, err := database.Open(driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := rollback(db.DB, driver); err != nil {
			return fmt.Errorf("rolling back migrations: %w", err)
		}
		slog.Info("migrations rolled back", "driver", driver)
		return nil
	}
}
