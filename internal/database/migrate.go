// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// goose keeps its dialect in package state.
var gooseMu sync.Mutex

func prepare(driver string) (string, error) {
	goose.SetBaseFS(embedMigrations)

	switch driver {
	case DriverSQLite:
		return "migrations/sqlite", goose.SetDialect("sqlite3")
	case DriverPostgres:
		return "migrations/postgres", goose.SetDialect("postgres")
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunMigrations runs all pending goose migrations.
func RunMigrations(db *sql.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepare(driver)
	if err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// MigrateDown rolls back the last migration.
func MigrateDown(db *sql.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepare(driver)
	if err != nil {
		return err
	}
	return goose.Down(db, dir)
}

// MigrateReset rolls back all migrations.
func MigrateReset(db *sql.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepare(driver)
	if err != nil {
		return err
	}
	return goose.Reset(db, dir)
}
