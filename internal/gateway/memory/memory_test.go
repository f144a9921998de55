package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Gateway {
	t.Helper()
	g := New(logger.NewNop())
	g.Seed(domain.TableUsers,
		gateway.NewRow("id", "u1", "full_name", "Ali", "membership_code", "M-1", "status", "Active"),
		gateway.NewRow("id", "u2", "full_name", "Sara", "membership_code", "M-2", "status", "Inactive"),
		gateway.NewRow("id", "u3", "full_name", "Reza", "membership_code", "M-3", "status", "Active"),
	)
	g.Seed(domain.TableSubscriptions,
		gateway.NewRow("id", "s1", "user_id", "u1", "start_date", "2024-01-01", "end_date", "2024-02-01", "status", "expired"),
		gateway.NewRow("id", "s2", "user_id", "u1", "start_date", "2024-02-01", "end_date", "2024-03-01", "status", "active"),
		gateway.NewRow("id", "s3", "user_id", "u2", "start_date", "2024-01-15", "end_date", "2024-01-20", "status", "expired"),
	)
	return g
}

func TestSelectFiltersOrdersAndProjects(t *testing.T) {
	g := seeded(t)
	ctx := context.Background()

	rows, err := g.Select(ctx, domain.TableSubscriptions, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("user_id", "u1")},
		Order:   &gateway.Order{Column: "end_date", Descending: true},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "s2", rows[0].Value("id"))
	assert.Equal(t, "s1", rows[1].Value("id"))

	rows, err = g.Select(ctx, domain.TableUsers, gateway.Query{Columns: []string{"full_name", "id"}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"full_name", "id"}, rows[0].Columns())
}

func TestSelectDateRangeIsInclusive(t *testing.T) {
	g := seeded(t)
	rows, err := g.Select(context.Background(), domain.TableSubscriptions, gateway.Query{
		Filters: []gateway.Filter{
			gateway.Gte("end_date", "2024-01-20"),
			gateway.Lte("end_date", time.Date(2024, 2, 1, 23, 59, 59, 0, time.UTC)),
		},
	})
	require.NoError(t, err)
	ids := []any{}
	for _, r := range rows {
		ids = append(ids, r.Value("id"))
	}
	assert.ElementsMatch(t, []any{"s1", "s3"}, ids)
}

func TestCount(t *testing.T) {
	g := seeded(t)
	n, err := g.Count(context.Background(), domain.TableUsers, gateway.Eq("status", "Active"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestInsertFillsDefaultsAndRejectsDuplicates(t *testing.T) {
	g := New(logger.NewNop())
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, domain.TableAdmins, gateway.Record{"email": "a@club.ir", "role": "admin"}))
	rows, err := g.Select(ctx, domain.TableAdmins, gateway.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"id", "email", "role", "created_at"}, rows[0].Columns())
	assert.Equal(t, fixed, rows[0].Value("created_at"))
	assert.NotEmpty(t, rows[0].Value("id"))

	err = g.Insert(ctx, domain.TableAdmins, gateway.Record{"email": "a@club.ir", "role": "admin"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestUpdateAndDelete(t *testing.T) {
	g := seeded(t)
	ctx := context.Background()

	require.NoError(t, g.Update(ctx, domain.TableUsers, gateway.Record{"status": "Inactive"}, gateway.Eq("id", "u1")))
	rows, err := g.Select(ctx, domain.TableUsers, gateway.Query{Filters: []gateway.Filter{gateway.Eq("id", "u1")}})
	require.NoError(t, err)
	assert.Equal(t, "Inactive", rows[0].Value("status"))

	err = g.Update(ctx, domain.TableUsers, gateway.Record{"status": "Inactive"}, gateway.Eq("id", "nope"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, g.Delete(ctx, domain.TableUsers, gateway.Eq("id", "u2")))
	n, err := g.Count(ctx, domain.TableUsers)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	err = g.Delete(ctx, domain.TableUsers, gateway.Eq("id", "u2"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFailOnInjectsGatewayErrors(t *testing.T) {
	g := seeded(t)
	g.FailOn(domain.TableUsers, "count", errors.New("timeout"))

	_, err := g.Count(context.Background(), domain.TableUsers)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	g.FailOn(domain.TableUsers, "count", nil)
	_, err = g.Count(context.Background(), domain.TableUsers)
	assert.NoError(t, err)
	assert.Equal(t, 2, g.Calls())
}

func TestReturnedRowsAreCopies(t *testing.T) {
	g := seeded(t)
	rows, err := g.Select(context.Background(), domain.TableUsers, gateway.Query{})
	require.NoError(t, err)
	rows[0].Set("full_name", "changed")

	again, err := g.Select(context.Background(), domain.TableUsers, gateway.Query{})
	require.NoError(t, err)
	assert.Equal(t, "Ali", again[0].Value("full_name"))
}

func TestInvalidQueryMakesNoCall(t *testing.T) {
	g := seeded(t)
	_, err := g.Select(context.Background(), domain.Table("pg_user"), gateway.Query{})
	assert.True(t, errors.Is(err, gateway.ErrInvalidQuery))
	assert.Equal(t, 0, g.Calls())
}

func TestOrderPutsNullsLastBothWays(t *testing.T) {
	g := New(logger.NewNop())
	g.Seed(domain.TableSubscriptions,
		gateway.NewRow("id", "s0", "user_id", "u1", "end_date", nil),
		gateway.NewRow("id", "s1", "user_id", "u1", "end_date", "2024-05-01"),
		gateway.NewRow("id", "s2", "user_id", "u1", "end_date", "2024-06-01"),
	)
	ctx := context.Background()

	ids := func(desc bool) []any {
		rows, err := g.Select(ctx, domain.TableSubscriptions, gateway.Query{
			Order: &gateway.Order{Column: "end_date", Descending: desc},
		})
		require.NoError(t, err)
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = r.Value("id")
		}
		return out
	}

	assert.Equal(t, []any{"s2", "s1", "s0"}, ids(true))
	assert.Equal(t, []any{"s1", "s2", "s0"}, ids(false))
}

func TestNumericLookingStringsCompareAsText(t *testing.T) {
	g := New(logger.NewNop())
	g.Seed(domain.TableUsers,
		gateway.NewRow("id", "u1", "membership_code", "007"),
		gateway.NewRow("id", "u2", "membership_code", "7.0"),
	)

	n, err := g.Count(context.Background(), domain.TableUsers, gateway.Eq("membership_code", "7"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = g.Count(context.Background(), domain.TableUsers, gateway.Eq("membership_code", "007"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
