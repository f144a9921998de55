// Package gateway defines the narrow query contract the panel uses to talk to
// the hosted table store. Drivers live in the memory, postgres and rest
// subpackages.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Dhoini/Admin-panel/internal/domain"
)

// ErrInvalidQuery is returned before any I/O when a query names an unknown
// table, a malformed column or an unsupported operator.
var ErrInvalidQuery = errors.New("invalid gateway query")

// Operator is a filter comparison
type Operator string

const (
	OpEq  Operator = "eq"
	OpGte Operator = "gte"
	OpLte Operator = "lte"
)

// Filter restricts a query to rows where Column Op Value holds
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Eq builds an equality filter
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Gte builds a greater-or-equal filter
func Gte(column string, value any) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

// Lte builds a less-or-equal filter
func Lte(column string, value any) Filter {
	return Filter{Column: column, Op: OpLte, Value: value}
}

// Order sorts the result by a single column. NULLs sort last in both
// directions on every driver.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a select. Empty Columns selects every column.
type Query struct {
	Columns []string
	Filters []Filter
	Order   *Order
}

// Record is a set of column values for insert and update
type Record map[string]any

// Gateway is the data access contract. Every call is a single round trip;
// implementations do not retry and do not cache.
type Gateway interface {
	Select(ctx context.Context, table domain.Table, q Query) ([]Row, error)
	Count(ctx context.Context, table domain.Table, filters ...Filter) (int64, error)
	Insert(ctx context.Context, table domain.Table, rec Record) error
	Update(ctx context.Context, table domain.Table, patch Record, filters ...Filter) error
	Delete(ctx context.Context, table domain.Table, filters ...Filter) error
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidColumn reports whether name is a safe column identifier
func ValidColumn(name string) bool {
	return identRe.MatchString(name)
}

// ValidateTable checks the table against the known set
func ValidateTable(table domain.Table) error {
	if !table.Valid() {
		return fmt.Errorf("%w: unknown table %q", ErrInvalidQuery, table)
	}
	return nil
}

// ValidateFilters checks column names and operators
func ValidateFilters(filters []Filter) error {
	for _, f := range filters {
		if !ValidColumn(f.Column) {
			return fmt.Errorf("%w: bad filter column %q", ErrInvalidQuery, f.Column)
		}
		switch f.Op {
		case OpEq, OpGte, OpLte:
		default:
			return fmt.Errorf("%w: unsupported operator %q", ErrInvalidQuery, f.Op)
		}
	}
	return nil
}

// ValidateQuery checks a select before it reaches a driver
func ValidateQuery(table domain.Table, q Query) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	for _, c := range q.Columns {
		if !ValidColumn(c) {
			return fmt.Errorf("%w: bad column %q", ErrInvalidQuery, c)
		}
	}
	if q.Order != nil && !ValidColumn(q.Order.Column) {
		return fmt.Errorf("%w: bad order column %q", ErrInvalidQuery, q.Order.Column)
	}
	return ValidateFilters(q.Filters)
}

// ValidateRecord checks record keys
func ValidateRecord(rec Record) error {
	if len(rec) == 0 {
		return fmt.Errorf("%w: empty record", ErrInvalidQuery)
	}
	for k := range rec {
		if !ValidColumn(k) {
			return fmt.Errorf("%w: bad column %q", ErrInvalidQuery, k)
		}
	}
	return nil
}

// ValidateMutation checks an update or delete. At least one filter is
// required so a mutation can never address a whole table.
func ValidateMutation(table domain.Table, filters []Filter) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("%w: mutation without filter on %s", ErrInvalidQuery, table)
	}
	return ValidateFilters(filters)
}
