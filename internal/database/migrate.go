package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationsDir returns the embedded directory holding the scripts for driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "migrations/postgres", nil
	case config.DriverSQLite:
		return "migrations/sqlite", nil
	case config.DriverOracle:
		return "migrations/oracle", nil
	}
	return "", fmt.Errorf("no migrations for driver %q", driver)
}

// RunMigrations brings the schema up to date. Postgres and SQLite go through
// golang-migrate; Oracle executes the embedded up scripts directly.
func RunMigrations(db *sqlx.DB) error {
	driver := db.DriverName()
	dir, err := MigrationsDir(driver)
	if err != nil {
		return err
	}

	if driver == config.DriverOracle {
		return runScripts(db, dir)
	}

	var dbDriver migratedb.Driver
	switch driver {
	case config.DriverPostgres:
		dbDriver, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	case config.DriverSQLite:
		dbDriver, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("migrate: failed to create %s driver: %w", driver, err)
	}

	srcDriver, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("migrate: failed to create iofs: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", srcDriver, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("migrate: failed to create instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up failed: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.String("driver", driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// UpScripts lists the *.up.sql files in dir in execution order.
func UpScripts(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// runScripts executes each up script once per call. The Oracle scripts guard
// themselves against objects that already exist.
func runScripts(db *sqlx.DB, dir string) error {
	names, err := UpScripts(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		content, err := fs.ReadFile(migrationsFS, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}
	logger.Get().Info("Migrations completed successfully", zap.String("driver", config.DriverOracle))
	return nil
}
