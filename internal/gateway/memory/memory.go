// Package memory is an in-process gateway driver used in development mode
// and as the test double for the services.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/google/uuid"
)

// schema fixes the column order of inserted rows and the unique column
type schema struct {
	columns []string
	unique  string
}

var schemas = map[domain.Table]schema{
	domain.TableUsers: {
		columns: []string{domain.ColID, domain.ColFullName, domain.ColPhone, domain.ColMembershipCode, domain.ColStatus, domain.ColCreatedAt},
		unique:  domain.ColID,
	},
	domain.TableSubscriptions: {
		columns: []string{domain.ColID, domain.ColUserID, domain.ColStartDate, domain.ColEndDate, domain.ColStatus, domain.ColCreatedAt},
		unique:  domain.ColID,
	},
	domain.TableAdmins: {
		columns: []string{domain.ColID, domain.ColEmail, domain.ColRole, domain.ColCreatedAt},
		unique:  domain.ColEmail,
	},
	domain.TableSessions: {
		columns: []string{domain.ColID, domain.ColUserID, domain.ColSessionDate, domain.ColCreatedAt},
		unique:  domain.ColID,
	},
}

// Gateway хранит таблицы в памяти процесса
type Gateway struct {
	mu       sync.RWMutex
	tables   map[domain.Table][]gateway.Row
	failures map[string]error
	calls    int
	now      func() time.Time
	log      *logger.Logger
}

// New создает пустое хранилище в памяти
func New(log *logger.Logger) *Gateway {
	return &Gateway{
		tables:   make(map[domain.Table][]gateway.Row),
		failures: make(map[string]error),
		now:      time.Now,
		log:      log,
	}
}

// Seed appends rows to a table as given, bypassing defaults and unique checks
func (g *Gateway) Seed(table domain.Table, rows ...gateway.Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range rows {
		g.tables[table] = append(g.tables[table], r.Clone())
	}
}

// FailOn makes every subsequent call of op ("select", "count", "insert",
// "update", "delete") on table return err. A nil err clears the failure.
func (g *Gateway) FailOn(table domain.Table, op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := failureKey(table, op)
	if err == nil {
		delete(g.failures, key)
		return
	}
	g.failures[key] = err
}

// Calls returns how many gateway calls were made, failed ones included
func (g *Gateway) Calls() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.calls
}

func failureKey(table domain.Table, op string) string {
	return string(table) + "." + op
}

// enter counts the call and returns the injected failure, if any.
// Caller must hold the lock.
func (g *Gateway) enter(table domain.Table, op string) error {
	g.calls++
	if err, ok := g.failures[failureKey(table, op)]; ok {
		return domain.NewGatewayError(op, string(table), err)
	}
	return nil
}

// Select возвращает строки, подходящие под фильтры
func (g *Gateway) Select(ctx context.Context, table domain.Table, q gateway.Query) ([]gateway.Row, error) {
	if err := gateway.ValidateQuery(table, q); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewGatewayError("select", string(table), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(table, "select"); err != nil {
		return nil, err
	}

	var out []gateway.Row
	for _, r := range g.tables[table] {
		if matches(r, q.Filters) {
			out = append(out, r)
		}
	}

	if q.Order != nil {
		col, desc := q.Order.Column, q.Order.Descending
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Value(col), out[j].Value(col)
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			c := compare(a, b)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	result := make([]gateway.Row, 0, len(out))
	for _, r := range out {
		if len(q.Columns) == 0 {
			result = append(result, r.Clone())
		} else {
			result = append(result, r.Project(q.Columns))
		}
	}
	return result, nil
}

// Count возвращает количество строк, подходящих под фильтры
func (g *Gateway) Count(ctx context.Context, table domain.Table, filters ...gateway.Filter) (int64, error) {
	if err := gateway.ValidateTable(table); err != nil {
		return 0, err
	}
	if err := gateway.ValidateFilters(filters); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, domain.NewGatewayError("count", string(table), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(table, "count"); err != nil {
		return 0, err
	}

	var n int64
	for _, r := range g.tables[table] {
		if matches(r, filters) {
			n++
		}
	}
	return n, nil
}

// Insert добавляет строку, заполняя id и created_at, если они не заданы
func (g *Gateway) Insert(ctx context.Context, table domain.Table, rec gateway.Record) error {
	if err := gateway.ValidateTable(table); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(rec); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewGatewayError("insert", string(table), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(table, "insert"); err != nil {
		return err
	}

	s := schemas[table]
	row := gateway.Row{}
	for _, c := range s.columns {
		if v, ok := rec[c]; ok {
			row.Set(c, v)
			continue
		}
		switch c {
		case domain.ColID:
			row.Set(c, uuid.NewString())
		case domain.ColCreatedAt:
			row.Set(c, g.now().UTC())
		default:
			row.Set(c, nil)
		}
	}
	extras := make([]string, 0)
	for k := range rec {
		if _, ok := row.Get(k); !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		row.Set(k, rec[k])
	}

	if s.unique != "" {
		key := row.Value(s.unique)
		for _, existing := range g.tables[table] {
			if compare(existing.Value(s.unique), key) == 0 {
				return fmt.Errorf("insert into %s: %w", table, domain.ErrDuplicate)
			}
		}
	}

	g.tables[table] = append(g.tables[table], row)
	g.log.Debugw("Row inserted", "table", table)
	return nil
}

// Update применяет patch ко всем подходящим строкам
func (g *Gateway) Update(ctx context.Context, table domain.Table, patch gateway.Record, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}
	if err := gateway.ValidateRecord(patch); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewGatewayError("update", string(table), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(table, "update"); err != nil {
		return err
	}

	rows := g.tables[table]
	matched := 0
	for i := range rows {
		if !matches(rows[i], filters) {
			continue
		}
		matched++
		keys := make([]string, 0, len(patch))
		for k := range patch {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows[i].Set(k, patch[k])
		}
	}
	if matched == 0 {
		return fmt.Errorf("update %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// Delete удаляет все подходящие строки
func (g *Gateway) Delete(ctx context.Context, table domain.Table, filters ...gateway.Filter) error {
	if err := gateway.ValidateMutation(table, filters); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewGatewayError("delete", string(table), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(table, "delete"); err != nil {
		return err
	}

	rows := g.tables[table]
	kept := rows[:0]
	removed := 0
	for _, r := range rows {
		if matches(r, filters) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return fmt.Errorf("delete from %s: %w", table, domain.ErrNotFound)
	}
	g.tables[table] = kept
	return nil
}

var _ gateway.Gateway = (*Gateway)(nil)
