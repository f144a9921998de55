package render

import (
	"net/url"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
)

// Link is a per-row action
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// RowView is one rendered record
type RowView struct {
	Cells  []string `json:"cells"`
	Action *Link    `json:"action,omitempty"`
}

// TableView is a rendered list
type TableView struct {
	Headers []string  `json:"headers"`
	Rows    []RowView `json:"rows"`
}

// Projection fixes which fields of a record become cells
type Projection struct {
	Headers []string
	Cells   func(gateway.Row) []string
	Action  func(gateway.Row) *Link
}

// Fill clears the view and appends one row per record
func (t *TableView) Fill(rows []gateway.Row, p Projection) {
	t.Headers = append(t.Headers[:0], p.Headers...)
	t.Rows = t.Rows[:0]
	for _, r := range rows {
		rv := RowView{Cells: p.Cells(r)}
		if p.Action != nil {
			rv.Action = p.Action(r)
		}
		t.Rows = append(t.Rows, rv)
	}
}

// NewTable renders rows into a fresh view
func NewTable(rows []gateway.Row, p Projection) TableView {
	t := TableView{Headers: []string{}, Rows: []RowView{}}
	t.Fill(rows, p)
	return t
}

// UserDetailHref is the detail page link for a user id
func UserDetailHref(id any) string {
	return "/pages/user?" + url.Values{"id": {FormatValue(id)}}.Encode()
}

// UsersProjection renders the users list
var UsersProjection = Projection{
	Headers: []string{"Full name", "Membership code", "Status", ""},
	Cells: func(r gateway.Row) []string {
		return []string{
			FormatValue(r.Value(domain.ColFullName)),
			FormatValue(r.Value(domain.ColMembershipCode)),
			StatusLabel(r.Value(domain.ColStatus)),
		}
	},
	Action: func(r gateway.Row) *Link {
		return &Link{Label: "View", Href: UserDetailHref(r.Value(domain.ColID))}
	},
}

// SubscriptionsProjection renders a user's subscriptions
var SubscriptionsProjection = Projection{
	Headers: []string{"Start date", "End date", "Status"},
	Cells: func(r gateway.Row) []string {
		return []string{
			FormatValue(r.Value(domain.ColStartDate)),
			FormatValue(r.Value(domain.ColEndDate)),
			FormatValue(r.Value(domain.ColStatus)),
		}
	},
}

// AdminsProjection renders the admins list
var AdminsProjection = Projection{
	Headers: []string{"Email", "Role", "Created"},
	Cells: func(r gateway.Row) []string {
		return []string{
			FormatValue(r.Value(domain.ColEmail)),
			FormatValue(r.Value(domain.ColRole)),
			FormatDateOnly(r.Value(domain.ColCreatedAt)),
		}
	},
}

// Users renders the users list
func Users(rows []gateway.Row) TableView {
	return NewTable(rows, UsersProjection)
}

// Subscriptions renders a subscriptions list
func Subscriptions(rows []gateway.Row) TableView {
	return NewTable(rows, SubscriptionsProjection)
}

// Admins renders the admins list
func Admins(rows []gateway.Row) TableView {
	return NewTable(rows, AdminsProjection)
}
