package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAdmin(t *testing.T) {
	gw := newMemory()
	pub := &recordingPublisher{}
	svc := NewAdminService(gw, pub, logger.NewNop())
	ctx := context.Background()

	rows, err := svc.Add(ctx, domain.AdminRequest{Email: "a@club.ir"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, AdminListColumns, rows[0].Columns())
	assert.Equal(t, "admin", rows[0].Value("role"))
	assert.Equal(t, []string{events.TypeAdminAdded}, pub.types())

	_, err = svc.Add(ctx, domain.AdminRequest{Email: "a@club.ir"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Len(t, pub.types(), 1)
}

func TestAddAdminValidatesEmail(t *testing.T) {
	gw := newMemory()
	svc := NewAdminService(gw, nil, logger.NewNop())

	for _, email := range []string{"", "not-an-email"} {
		_, err := svc.Add(context.Background(), domain.AdminRequest{Email: email})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), email)
	}
	assert.Equal(t, 0, gw.Calls())
}

func TestListAdminsFailure(t *testing.T) {
	gw := newMemory()
	gw.FailOn(domain.TableAdmins, "select", errors.New("timeout"))
	svc := NewAdminService(gw, nil, logger.NewNop())

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
