package gateway

import (
	"context"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

// Observer receives one observation per gateway call
type Observer interface {
	ObserveGatewayCall(table, op string, err error, elapsed time.Duration)
}

// Instrumented wraps a Gateway and reports every call to an Observer.
// It adds no retries and no caching.
type Instrumented struct {
	next     Gateway
	observer Observer
	log      *logger.Logger
}

// NewInstrumented создает обертку с метриками над драйвером хранилища
func NewInstrumented(next Gateway, observer Observer, log *logger.Logger) *Instrumented {
	return &Instrumented{next: next, observer: observer, log: log}
}

func (g *Instrumented) observe(table domain.Table, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	if g.observer != nil {
		g.observer.ObserveGatewayCall(string(table), op, err, elapsed)
	}
	if err != nil {
		g.log.Debugw("Gateway call failed", "table", table, "op", op, "elapsed", elapsed, "error", err)
		return
	}
	g.log.Debugw("Gateway call", "table", table, "op", op, "elapsed", elapsed)
}

// Select делегирует выборку драйверу
func (g *Instrumented) Select(ctx context.Context, table domain.Table, q Query) ([]Row, error) {
	start := time.Now()
	rows, err := g.next.Select(ctx, table, q)
	g.observe(table, "select", start, err)
	return rows, err
}

// Count делегирует подсчет драйверу
func (g *Instrumented) Count(ctx context.Context, table domain.Table, filters ...Filter) (int64, error) {
	start := time.Now()
	n, err := g.next.Count(ctx, table, filters...)
	g.observe(table, "count", start, err)
	return n, err
}

// Insert делегирует вставку драйверу
func (g *Instrumented) Insert(ctx context.Context, table domain.Table, rec Record) error {
	start := time.Now()
	err := g.next.Insert(ctx, table, rec)
	g.observe(table, "insert", start, err)
	return err
}

// Update делегирует обновление драйверу
func (g *Instrumented) Update(ctx context.Context, table domain.Table, patch Record, filters ...Filter) error {
	start := time.Now()
	err := g.next.Update(ctx, table, patch, filters...)
	g.observe(table, "update", start, err)
	return err
}

// Delete делегирует удаление драйверу
func (g *Instrumented) Delete(ctx context.Context, table domain.Table, filters ...Filter) error {
	start := time.Now()
	err := g.next.Delete(ctx, table, filters...)
	g.observe(table, "delete", start, err)
	return err
}
