package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", time.Second, logger.NewNop())
}

func TestSelectBuildsQueryAndKeepsColumnOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/subscriptions", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "end_date,id", q.Get("select"))
		assert.Equal(t, "eq.u1", q.Get("user_id"))
		assert.Equal(t, "end_date.desc.nullslast", q.Get("order"))

		_, _ = io.WriteString(w, `[{"end_date":"2024-03-01","id":"s2"},{"end_date":"2024-02-01","id":"s1"}]`)
	})

	rows, err := c.Select(context.Background(), domain.TableSubscriptions, gateway.Query{
		Columns: []string{"end_date", "id"},
		Filters: []gateway.Filter{gateway.Eq("user_id", "u1")},
		Order:   &gateway.Order{Column: "end_date", Descending: true},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"end_date", "id"}, rows[0].Columns())
	assert.Equal(t, "s2", rows[0].Value("id"))
}

func TestSelectRangeFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		vals := r.URL.Query()["session_date"]
		assert.ElementsMatch(t, []string{"gte.2024-01-01T00:00:00Z", "lte.2024-01-31T23:59:59Z"}, vals)
		_, _ = io.WriteString(w, `[]`)
	})

	rows, err := c.Select(context.Background(), domain.TableSessions, gateway.Query{
		Filters: []gateway.Filter{
			gateway.Gte("session_date", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			gateway.Lte("session_date", time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCountReadsContentRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		assert.Equal(t, "eq.Active", r.URL.Query().Get("status"))
		w.Header().Set("Content-Range", "0-24/42")
	})

	n, err := c.Count(context.Background(), domain.TableUsers, gateway.Eq("status", "Active"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestParseContentRange(t *testing.T) {
	n, err := parseContentRange("*/0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for _, bad := range []string{"", "0-9", "0-9/*", "0-9/x"} {
		_, err := parseContentRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestInsertMapsConflictToDuplicate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@club.ir", body["email"])

		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"code":"23505","message":"duplicate key value violates unique constraint"}`)
	})

	err := c.Insert(context.Background(), domain.TableAdmins, gateway.Record{"email": "a@club.ir", "role": "admin"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestUpdateWithNoMatchIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.missing", r.URL.Query().Get("id"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		_, _ = io.WriteString(w, `[]`)
	})

	err := c.Update(context.Background(), domain.TableUsers, gateway.Record{"status": "Inactive"}, gateway.Eq("id", "missing"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteSucceeds(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.WriteString(w, `[{"id":"u1"}]`)
	})

	require.NoError(t, c.Delete(context.Background(), domain.TableUsers, gateway.Eq("id", "u1")))
}

func TestServerErrorBecomesGatewayError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"boom"}`)
	})

	_, err := c.Count(context.Background(), domain.TableUsers)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	var gwErr *domain.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "count", gwErr.Op)
	assert.Contains(t, err.Error(), "boom")
}

func TestMutationWithoutFilterIsRejectedLocally(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	err := c.Delete(context.Background(), domain.TableUsers)
	assert.True(t, errors.Is(err, gateway.ErrInvalidQuery))
	assert.False(t, called)
}

func TestSelectAscendingAsksForNullsLast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "end_date.asc.nullslast", r.URL.Query().Get("order"))
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.Select(context.Background(), domain.TableSubscriptions, gateway.Query{
		Order: &gateway.Order{Column: "end_date"},
	})
	require.NoError(t, err)
}
