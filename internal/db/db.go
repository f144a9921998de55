// Package db bootstraps the panel's tables in a self-hosted PostgreSQL
// database. Runtime queries go through the gateway package instead.
package db

import (
	"context"
	"fmt"

	"github.com/Dhoini/Admin-panel/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Schema creates the four tables the panel reads and writes. Every statement
// is idempotent.
var Schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name       TEXT NOT NULL,
		phone           TEXT,
		membership_code TEXT UNIQUE,
		status          TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Inactive')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS subscriptions_user_id_idx ON subscriptions (user_id)`,
	`CREATE INDEX IF NOT EXISTS subscriptions_end_date_idx ON subscriptions (end_date)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email      TEXT NOT NULL UNIQUE,
		role       TEXT NOT NULL DEFAULT 'admin',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id      UUID REFERENCES users (id) ON DELETE CASCADE,
		session_date DATE NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_session_date_idx ON sessions (session_date)`,
}

// DBClient представляет клиент для работы с базой данных.
type DBClient struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewDBClient создает новый экземпляр DBClient.
func NewDBClient(ctx context.Context, dsn string, log *logger.Logger) (*DBClient, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		log.Errorw("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DBClient{db: db, log: log}, nil
}

// Close закрывает соединение с базой данных.
func (dc *DBClient) Close() error {
	if err := dc.db.Close(); err != nil {
		dc.log.Errorw("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// Migrate применяет схему в одной транзакции
func (dc *DBClient) Migrate(ctx context.Context) error {
	tx, err := dc.BeginTx(ctx)
	if err != nil {
		return err
	}

	for i, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			dc.log.Errorw("Migration statement failed", "statement", i, "error", err)
			if rbErr := dc.RollbackTx(tx); rbErr != nil {
				return fmt.Errorf("migration statement %d: %w (rollback: %v)", i, err, rbErr)
			}
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}

	if err := dc.CommitTx(tx); err != nil {
		return err
	}
	dc.log.Infow("Schema migrated", "statements", len(Schema))
	return nil
}

// BeginTx начинает транзакцию
func (dc *DBClient) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := dc.db.BeginTxx(ctx, nil)
	if err != nil {
		dc.log.Errorw("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	dc.log.Debug("Transaction started")
	return tx, nil
}

// CommitTx фиксирует транзакцию
func (dc *DBClient) CommitTx(tx *sqlx.Tx) error {
	if err := tx.Commit(); err != nil {
		dc.log.Errorw("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	dc.log.Debug("Transaction committed")
	return nil
}

// RollbackTx откатывает транзакцию
func (dc *DBClient) RollbackTx(tx *sqlx.Tx) error {
	if err := tx.Rollback(); err != nil {
		dc.log.Errorw("Failed to rollback transaction", "error", err)
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	dc.log.Debug("Transaction rolled back")
	return nil
}
