// Package pages maps a page identity to the handler that builds its view.
package pages

import (
	"context"
	"fmt"
	"path"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/render"
	"github.com/Dhoini/Admin-panel/internal/service"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

// PageID идентификатор страницы панели
type PageID string

const (
	PageUsers     PageID = "users"
	PageUser      PageID = "user"
	PageAdmins    PageID = "admins"
	PageReports   PageID = "reports"
	PageDashboard PageID = "dashboard"
)

// aliases maps legacy file names onto page ids
var aliases = map[string]PageID{
	"admins-index": PageDashboard,
	"index":        PageDashboard,
}

// IDs returns every known page
func IDs() []PageID {
	return []PageID{PageDashboard, PageUsers, PageUser, PageAdmins, PageReports}
}

// Resolve returns the page for the last segment of a request path.
// "users", "users.html" and "/pages/users.html" all resolve to PageUsers.
func Resolve(p string) (PageID, error) {
	seg := strings.TrimSuffix(path.Base("/"+strings.Trim(p, "/")), ".html")
	if id, ok := aliases[seg]; ok {
		return id, nil
	}
	for _, id := range IDs() {
		if string(id) == seg {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownPage, p)
}

// Request параметры страницы. ID is only used by the user page.
type Request struct {
	ID string
}

// Page результат обработки страницы
type Page struct {
	ID    PageID `json:"page"`
	Title string `json:"title"`
	View  any    `json:"view"`
}

// Handler строит представление страницы
type Handler func(ctx context.Context, r Request) (*Page, error)

// UserReader is the part of the user service pages need
type UserReader interface {
	List(ctx context.Context) ([]gateway.Row, error)
	Detail(ctx context.Context, id string) (*service.UserDetail, error)
}

// AdminLister is the part of the admin service pages need
type AdminLister interface {
	List(ctx context.Context) ([]gateway.Row, error)
}

// StatsProvider is the part of the dashboard service pages need
type StatsProvider interface {
	Stats(ctx context.Context) domain.DashboardStats
}

// Dispatcher вызывает обработчик по идентификатору страницы
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[PageID]Handler
	log      *logger.Logger
}

// NewDispatcher создает диспетчер со всеми страницами панели
func NewDispatcher(users UserReader, admins AdminLister, stats StatsProvider, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{log: log}
	d.handlers = map[PageID]Handler{
		PageUsers: func(ctx context.Context, _ Request) (*Page, error) {
			rows, err := users.List(ctx)
			if err != nil {
				return nil, err
			}
			return &Page{ID: PageUsers, Title: "Users", View: render.Users(rows)}, nil
		},
		PageUser: func(ctx context.Context, r Request) (*Page, error) {
			detail, err := users.Detail(ctx, r.ID)
			if err != nil {
				return nil, err
			}
			return &Page{ID: PageUser, Title: "User", View: render.UserDetail(detail.User, detail.Subscriptions)}, nil
		},
		PageAdmins: func(ctx context.Context, _ Request) (*Page, error) {
			rows, err := admins.List(ctx)
			if err != nil {
				return nil, err
			}
			return &Page{ID: PageAdmins, Title: "Admins", View: render.Admins(rows)}, nil
		},
		PageReports: func(context.Context, Request) (*Page, error) {
			return &Page{ID: PageReports, Title: "Reports", View: render.ReportForm()}, nil
		},
		PageDashboard: func(ctx context.Context, _ Request) (*Page, error) {
			return &Page{ID: PageDashboard, Title: "Dashboard", View: render.Dashboard(stats.Stats(ctx))}, nil
		},
	}
	return d
}

// Register replaces the handler of a page. Safe to call while pages are
// being dispatched.
func (d *Dispatcher) Register(id PageID, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[id] = h
}

// Dispatch runs the page handler. A panic inside the handler is logged and
// returned as domain.ErrInternal; no partial page is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, id PageID, r Request) (page *Page, err error) {
	d.mu.RLock()
	h, ok := d.handlers[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPage, id)
	}

	defer func() {
		if rec := recover(); rec != nil {
			d.log.Errorw("Page handler panicked", "page", id, "panic", rec, "stack", string(debug.Stack()))
			page = nil
			err = fmt.Errorf("%w: page %s failed", domain.ErrInternal, id)
		}
	}()

	page, err = h(ctx, r)
	if err != nil {
		d.log.Warnw("Page handler failed", "page", id, "error", err)
		return nil, err
	}
	return page, nil
}
