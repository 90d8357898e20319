package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/tundex/resume-parser/internal/common"
)

//go:embed schema.sql
var schemaSQL string

// Open connects to the configured database and applies pool settings.
// Postgres goes through the pgx stdlib driver; sqlite is used for batch
// runs and tests and is pinned to a single connection so an in-memory
// database is not silently dropped between connections.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("connecting to database", "driver", cfg.Driver)

	var driverName string
	switch cfg.Driver {
	case "postgres":
		driverName = "pgx"
	case "sqlite":
		driverName = "sqlite"
	default:
		return nil, common.NewAppError("DB_ERROR", "unsupported database driver: "+cfg.Driver, common.ErrInvalidInput)
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to open database", err)
	}

	if cfg.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		logger.Error("failed to connect to database", "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to connect to database", err)
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// ApplySchema creates the tables and indexes if they do not exist. The
// schema is executed one statement at a time because the pgx extended
// protocol rejects multi-statement Exec calls.
func ApplySchema(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("failed to apply schema statement", "error", err)
			return common.NewAppError("DB_ERROR", "failed to apply schema", err)
		}
	}
	logger.Info("database schema applied")
	return nil
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	logger.Info("closing database connection")
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	logger.Info("database connection closed")
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return common.NewAppError("DB_ERROR", "database ping failed", err)
	}
	logger.Debug("database ping successful")
	return nil
}
