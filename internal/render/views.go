package render

import (
	"fmt"
	"strconv"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
)

// Field is a labelled value in an info block
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// UserDetailView is the user page
type UserDetailView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Info          []Field   `json:"info"`
	Subscriptions TableView `json:"subscriptions"`
}

// UserDetail renders one user with their subscriptions
func UserDetail(user gateway.Row, subs []gateway.Row) UserDetailView {
	name := FormatValue(user.Value(domain.ColFullName))
	return UserDetailView{
		ID:    FormatValue(user.Value(domain.ColID)),
		Title: name,
		Info: []Field{
			{Label: "Name", Value: name},
			{Label: "Phone", Value: FormatValue(user.Value(domain.ColPhone))},
			{Label: "Membership code", Value: FormatValue(user.Value(domain.ColMembershipCode))},
			{Label: "Status", Value: FormatValue(user.Value(domain.ColStatus))},
		},
		Subscriptions: Subscriptions(subs),
	}
}

// ConsistencyPlaceholder is shown while average consistency is not computed
const ConsistencyPlaceholder = "--%"

// DashboardView is the dashboard page. Empty strings mark groups that failed.
type DashboardView struct {
	Today           string `json:"today"`
	ActiveMembers   string `json:"active_members"`
	InactiveMembers string `json:"inactive_members"`
	Expiring7Days   string `json:"expiring_7_days"`
	Expiring12Days  string `json:"expiring_12_days"`
	Expiring30Days  string `json:"expiring_30_days"`
	AvgConsistency  string `json:"avg_consistency"`
}

func countText(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

// Dashboard renders the statistics
func Dashboard(s domain.DashboardStats) DashboardView {
	v := DashboardView{
		Today:           s.Today,
		ActiveMembers:   countText(s.ActiveUsers),
		InactiveMembers: countText(s.InactiveUsers),
		AvgConsistency:  ConsistencyPlaceholder,
	}
	if s.Expiring != nil {
		v.Expiring7Days = strconv.Itoa(s.Expiring.Within7Days)
		v.Expiring12Days = strconv.Itoa(s.Expiring.Within12Days)
		v.Expiring30Days = strconv.Itoa(s.Expiring.Within30Days)
	}
	if s.AvgConsistency != nil {
		v.AvgConsistency = fmt.Sprintf("%.0f%%", *s.AvgConsistency)
	}
	return v
}

// ReportTable describes one option of the report form
type ReportTable struct {
	Table      string `json:"table"`
	DateColumn string `json:"date_column"`
}

// ReportFormView is the reports page
type ReportFormView struct {
	Tables []ReportTable `json:"tables"`
}

// ReportForm renders the report form model
func ReportForm() ReportFormView {
	v := ReportFormView{}
	for _, t := range domain.Tables() {
		v.Tables = append(v.Tables, ReportTable{Table: string(t), DateColumn: t.ReportDateColumn()})
	}
	return v
}
