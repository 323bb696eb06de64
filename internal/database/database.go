package database

import (
	"context"
	"fmt"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

func init() {
	// sqlx does not know these driver names; without this Rebind leaves '?' untouched.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// Connect opens a pooled connection for the configured driver and verifies it.
func Connect(ctx context.Context, cfg config.DBConfig, dsn string) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite, config.DriverOracle:
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	logger.Get().Info("Connected to database", zap.String("driver", cfg.Driver))
	return db, nil
}
