package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	for _, name := range []string{"users", "subscriptions", "admins", "sessions"} {
		tbl, err := ParseTable(name)
		require.NoError(t, err)
		assert.Equal(t, name, tbl.String())
	}

	_, err := ParseTable("users; drop table admins")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestReportDateColumn(t *testing.T) {
	assert.Equal(t, ColStartDate, TableSubscriptions.ReportDateColumn())
	assert.Equal(t, ColSessionDate, TableSessions.ReportDateColumn())
	assert.Equal(t, ColCreatedAt, TableUsers.ReportDateColumn())
	assert.Equal(t, ColCreatedAt, TableAdmins.ReportDateColumn())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{"2024-01-31", "2024-01-31T00:00:00Z", []byte("2024-01-31"), want} {
		got, err := ParseDate(in)
		require.NoError(t, err, "input %v", in)
		assert.True(t, want.Equal(got), "input %v got %v", in, got)
	}

	_, err := ParseDate("31/01/2024")
	assert.Error(t, err)
	_, err = ParseDate(42)
	assert.Error(t, err)
}

func TestErrorClassification(t *testing.T) {
	verr := NewValidationError("days", "must be positive")
	assert.True(t, errors.Is(verr, ErrInvalidInput))
	assert.Equal(t, "must be positive", verr.GetByField("days"))

	gerr := fmt.Errorf("count users: %w", NewGatewayError("count", "users", errors.New("connection refused")))
	assert.True(t, errors.Is(gerr, ErrUnavailable))
	assert.False(t, errors.Is(gerr, ErrNotFound))

	nf := NewNotFoundError("user", "42")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "user with ID 42 not found", nf.Error())
}

func TestParseDateValueDetectsBareDates(t *testing.T) {
	d, dateOnly, err := ParseDateValue("2024-05-08")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), d)

	_, dateOnly, err = ParseDateValue([]byte("2024-05-08"))
	require.NoError(t, err)
	assert.True(t, dateOnly)

	for _, v := range []any{"2024-05-08T00:00:00Z", time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)} {
		_, dateOnly, err = ParseDateValue(v)
		require.NoError(t, err)
		assert.False(t, dateOnly, "%v", v)
	}

	_, _, err = ParseDateValue(nil)
	assert.Error(t, err)
}
