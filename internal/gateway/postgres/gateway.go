// Package postgres is the gateway driver for a directly reachable
// PostgreSQL database, built on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// Querier is the subset of *pgxpool.Pool the gateway uses
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Gateway реализация шлюза данных через PostgreSQL
type Gateway struct {
	db  Querier
	log *logger.Logger
}

// NewGateway создает новый шлюз данных через PostgreSQL
func NewGateway(db Querier, log *logger.Logger) *Gateway {
	return &Gateway{db: db, log: log}
}

// Select выполняет выборку и возвращает строки в порядке колонок запроса
func (g *Gateway) Select(ctx context.Context, table domain.Table, q gateway.Query) ([]gateway.Row, error) {
	if err := gateway.ValidateQuery(table, q); err != nil {
		return nil, err
	}

	sql, args := buildSelect(table, q)
	rows, err := g.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, g.wrap("select", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []gateway.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, g.wrap("select", table, fmt.Errorf("failed to read row: %w", err))
		}
		row := gateway.Row{}
		for i, fd := range fields {
			row.Set(fd.Name, normalizeField(fd.DataTypeOID, values[i]))
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, g.wrap("select", table, fmt.Errorf("error iterating rows: %w", err))
	}
	return result, nil
}

// Count возвращает количество подходящих строк
func (g *Gateway) Count(ctx context.Context, table domain.Table, filters ...gateway.Filter) (int64, error) {
	if err := gateway.ValidateTable(table); err != nil {
		return 0, err
	}
	if err := gateway.ValidateFilters(filters); err != nil {
		return 0, err
	}

	sql, args := buildCount(table, filters)
	var n int64
	if err := g.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, g.wrap("count", table, err)
	}
	return n, nil
}

// Insert добавляет строку
func (g *Gateway) Insert(ctx context.Context, table domain.Table, rec gateway.Record) error {
	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(rec); err != nil {
		return err
	}

	sql, args := buildInsert(table, rec)
	if _, err := g.db.Exec(ctx, sql, args...); err != nil {
		return g.wrap("insert", table, err)
	}
	return nil
}

// Update обновляет подходящие строки
func (g *Gateway) Update(ctx context.Context, table domain.Table, patch gateway.Record, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(patch); err != nil {
		return err
	}

	sql, args := buildUpdate(table, patch, filters)
	tag, err := g.db.Exec(ctx, sql, args...)
	if err != nil {
		return g.wrap("update", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// Delete удаляет подходящие строки
func (g *Gateway) Delete(ctx context.Context, table domain.Table, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}

	sql, args := buildDelete(table, filters)
	tag, err := g.db.Exec(ctx, sql, args...)
	if err != nil {
		return g.wrap("delete", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete from %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// wrap maps driver errors onto domain errors
func (g *Gateway) wrap(op string, table domain.Table, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s %s: %w", op, table, domain.ErrDuplicate)
		case invalidTextRepresentation:
			// e.g. a malformed uuid in a filter
			return fmt.Errorf("%s %s: %w: %s", op, table, domain.ErrInvalidInput, pgErr.Message)
		}
	}
	g.log.Errorw("PostgreSQL query failed", "op", op, "table", table, "error", err)
	return domain.NewGatewayError(op, string(table), err)
}

// normalizeField keeps DATE columns as calendar-date strings so they stay
// distinguishable from timestamps, as the REST driver returns them.
func normalizeField(oid uint32, v any) any {
	if t, ok := v.(time.Time); ok && oid == pgtype.DateOID {
		return domain.FormatDate(t)
	}
	return normalize(v)
}

// normalize converts pgx native values into the plain types the renderer and
// CSV writer understand.
func normalize(v any) any {
	switch t := v.(type) {
	case [16]byte:
		return uuid.UUID(t).String()
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}

var _ gateway.Gateway = (*Gateway)(nil)
