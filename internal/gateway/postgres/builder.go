package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/jackc/pgx/v5"
)

// Identifiers are validated by the gateway package and quoted here, values
// always travel as bind parameters.

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

var sqlOps = map[gateway.Operator]string{
	gateway.OpEq:  "=",
	gateway.OpGte: ">=",
	gateway.OpLte: "<=",
}

func buildWhere(filters []gateway.Filter, args []any) (string, []any) {
	if len(filters) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		parts = append(parts, fmt.Sprintf("%s %s $%d", ident(f.Column), sqlOps[f.Op], len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildSelect(table domain.Table, q gateway.Query) (string, []any) {
	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = ident(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args := buildWhere(q.Filters, nil)
	sql := "SELECT " + cols + " FROM " + ident(string(table)) + where
	if q.Order != nil {
		dir := "ASC"
		if q.Order.Descending {
			dir = "DESC"
		}
		sql += " ORDER BY " + ident(q.Order.Column) + " " + dir + " NULLS LAST"
	}
	return sql, args
}

func buildCount(table domain.Table, filters []gateway.Filter) (string, []any) {
	where, args := buildWhere(filters, nil)
	return "SELECT COUNT(*) FROM " + ident(string(table)) + where, args
}

func sortedKeys(rec gateway.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildInsert(table domain.Table, rec gateway.Record) (string, []any) {
	keys := sortedKeys(rec)
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = ident(k)
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[k]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident(string(table)), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return sql, args
}

func buildUpdate(table domain.Table, patch gateway.Record, filters []gateway.Filter) (string, []any) {
	keys := sortedKeys(patch)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(filters))
	for i, k := range keys {
		args = append(args, patch[k])
		sets[i] = fmt.Sprintf("%s = $%d", ident(k), len(args))
	}
	where, args := buildWhere(filters, args)
	return "UPDATE " + ident(string(table)) + " SET " + strings.Join(sets, ", ") + where, args
}

func buildDelete(table domain.Table, filters []gateway.Filter) (string, []any) {
	where, args := buildWhere(filters, nil)
	return "DELETE FROM " + ident(string(table)) + where, args
}
