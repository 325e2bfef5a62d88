package database

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/news/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Open connects to PostgreSQL through the configured database/sql driver
// ("postgres" for lib/pq, "pgx" for pgx's stdlib adapter) and pings it.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, xerrors.New(err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*cfg.DBQueryTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, xerrors.Newf("database: ping failed: %w", err)
	}

	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return xerrors.Newf("database: migrate failed: %w", err)
	}
	log.Info("Database schema is up to date")
	return nil
}
