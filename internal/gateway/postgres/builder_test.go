package postgres

import (
	"testing"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestBuildSelect(t *testing.T) {
	sql, args := buildSelect(domain.TableSubscriptions, gateway.Query{
		Columns: []string{"id", "end_date"},
		Filters: []gateway.Filter{gateway.Eq("user_id", "u1")},
		Order:   &gateway.Order{Column: "end_date", Descending: true},
	})
	assert.Equal(t, `SELECT "id", "end_date" FROM "subscriptions" WHERE "user_id" = $1 ORDER BY "end_date" DESC NULLS LAST`, sql)
	assert.Equal(t, []any{"u1"}, args)

	sql, args = buildSelect(domain.TableUsers, gateway.Query{})
	assert.Equal(t, `SELECT * FROM "users"`, sql)
	assert.Empty(t, args)
}

func TestBuildCountWithRange(t *testing.T) {
	sql, args := buildCount(domain.TableSessions,
		[]gateway.Filter{gateway.Gte("session_date", "2024-01-01"), gateway.Lte("session_date", "2024-01-31")})
	assert.Equal(t, `SELECT COUNT(*) FROM "sessions" WHERE "session_date" >= $1 AND "session_date" <= $2`, sql)
	assert.Equal(t, []any{"2024-01-01", "2024-01-31"}, args)
}

func TestBuildInsertSortsColumns(t *testing.T) {
	sql, args := buildInsert(domain.TableAdmins, gateway.Record{"role": "admin", "email": "a@club.ir"})
	assert.Equal(t, `INSERT INTO "admins" ("email", "role") VALUES ($1, $2)`, sql)
	assert.Equal(t, []any{"a@club.ir", "admin"}, args)
}

func TestBuildUpdateNumbersFilterArgsAfterSet(t *testing.T) {
	sql, args := buildUpdate(domain.TableSubscriptions,
		gateway.Record{"end_date": "2024-03-11"},
		[]gateway.Filter{gateway.Eq("id", "s2")})
	assert.Equal(t, `UPDATE "subscriptions" SET "end_date" = $1 WHERE "id" = $2`, sql)
	assert.Equal(t, []any{"2024-03-11", "s2"}, args)
}

func TestBuildDelete(t *testing.T) {
	sql, args := buildDelete(domain.TableUsers, []gateway.Filter{gateway.Eq("id", "u1")})
	assert.Equal(t, `DELETE FROM "users" WHERE "id" = $1`, sql)
	assert.Equal(t, []any{"u1"}, args)
}

func TestNormalize(t *testing.T) {
	id := [16]byte{0x12, 0x34, 0x56, 0x78, 0x12, 0x34, 0x56, 0x78, 0x12, 0x34, 0x56, 0x78, 0x12, 0x34, 0x56, 0x78}
	assert.Equal(t, "12345678-1234-5678-1234-567812345678", normalize(id))
	assert.Equal(t, "x", normalize("x"))
	assert.Nil(t, normalize(nil))
}

func TestBuildSelectAscendingPutsNullsLast(t *testing.T) {
	sql, _ := buildSelect(domain.TableSubscriptions, gateway.Query{
		Order: &gateway.Order{Column: "end_date"},
	})
	assert.Equal(t, `SELECT * FROM "subscriptions" ORDER BY "end_date" ASC NULLS LAST`, sql)
}

func TestNormalizeFieldKeepsDateColumnsAsDates(t *testing.T) {
	midnight := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-08", normalizeField(pgtype.DateOID, midnight))
	assert.Equal(t, midnight, normalizeField(pgtype.TimestamptzOID, midnight))
	assert.Nil(t, normalizeField(pgtype.DateOID, nil))
}
