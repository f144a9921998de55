package pages

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/gateway/memory"
	"github.com/Dhoini/Admin-panel/internal/render"
	"github.com/Dhoini/Admin-panel/internal/service"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := map[string]PageID{
		"users":                    PageUsers,
		"users.html":               PageUsers,
		"/pages/users.html":        PageUsers,
		"/pages/user":              PageUser,
		"admins.html":              PageAdmins,
		"/admin/admins-index.html": PageDashboard,
		"reports/":                 PageReports,
		"dashboard":                PageDashboard,
	}
	for in, want := range cases {
		got, err := Resolve(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "/", "settings.html", "users.php"} {
		_, err := Resolve(bad)
		assert.True(t, errors.Is(err, domain.ErrUnknownPage), bad)
	}
}

func newDispatcher(t *testing.T) (*Dispatcher, *memory.Gateway) {
	t.Helper()
	gw := memory.New(logger.NewNop())
	gw.Seed(domain.TableUsers,
		gateway.NewRow("id", "u1", "full_name", "Ali", "phone", "0912", "membership_code", "M-1", "status", "Active"),
	)
	gw.Seed(domain.TableAdmins,
		gateway.NewRow("id", "a1", "email", "a@club.ir", "role", "admin", "created_at", "2024-03-09T18:22:11Z"),
	)
	log := logger.NewNop()
	clock := func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	d := NewDispatcher(
		service.NewUserService(gw, nil, log),
		service.NewAdminService(gw, nil, log),
		service.NewDashboardService(gw, nil, time.UTC, clock, log),
		log,
	)
	return d, gw
}

func TestDispatchEveryPage(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()

	for _, id := range IDs() {
		page, err := d.Dispatch(ctx, id, Request{ID: "u1"})
		require.NoError(t, err, id)
		assert.Equal(t, id, page.ID)
		assert.NotNil(t, page.View)
	}
}

func TestUsersPageRendersLinks(t *testing.T) {
	d, _ := newDispatcher(t)
	page, err := d.Dispatch(context.Background(), PageUsers, Request{})
	require.NoError(t, err)

	view, ok := page.View.(render.TableView)
	require.True(t, ok)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "/pages/user?id=u1", view.Rows[0].Action.Href)
}

func TestUserPageNeedsID(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Dispatch(context.Background(), PageUser, Request{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d, _ := newDispatcher(t)
	d.Register(PageReports, func(context.Context, Request) (*Page, error) {
		panic("nil map")
	})

	page, err := d.Dispatch(context.Background(), PageReports, Request{})
	assert.Nil(t, page)
	assert.True(t, errors.Is(err, domain.ErrInternal))
}

func TestRegisterWhileDispatching(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Register(PageReports, func(context.Context, Request) (*Page, error) {
				return &Page{ID: PageReports, Title: "Reports"}, nil
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = d.Dispatch(ctx, PageReports, Request{})
		}()
	}
	wg.Wait()

	page, err := d.Dispatch(ctx, PageReports, Request{})
	require.NoError(t, err)
	assert.Equal(t, "Reports", page.Title)
}

func TestDispatchUnknownPage(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Dispatch(context.Background(), PageID("settings"), Request{})
	assert.True(t, errors.Is(err, domain.ErrUnknownPage))
}

func TestGatewayFailureLeavesPageEmpty(t *testing.T) {
	d, gw := newDispatcher(t)
	gw.FailOn(domain.TableAdmins, "select", errors.New("timeout"))

	page, err := d.Dispatch(context.Background(), PageAdmins, Request{})
	assert.Nil(t, page)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
