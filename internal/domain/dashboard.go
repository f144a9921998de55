package domain

// Expiry thresholds, in days from today, shown on the dashboard.
const (
	ExpiringSoonDays  = 7
	ExpiringMidDays   = 12
	ExpiringMonthDays = 30
)

// ExpiryThresholds returns the dashboard thresholds in ascending order.
// The widest one also bounds the range query.
func ExpiryThresholds() []int {
	return []int{ExpiringSoonDays, ExpiringMidDays, ExpiringMonthDays}
}

// ExpiringCounts количество подписок, истекающих в пределах N дней (включительно)
type ExpiringCounts struct {
	Within7Days  int `json:"within_7_days"`
	Within12Days int `json:"within_12_days"`
	Within30Days int `json:"within_30_days"`
}

// DashboardStats сводная статистика для главной страницы панели.
// Nil-поле означает, что соответствующая группа запросов завершилась ошибкой
// и на экране остается пустым.
type DashboardStats struct {
	Today         string          `json:"today"`
	ActiveUsers   *int64          `json:"active_users"`
	InactiveUsers *int64          `json:"inactive_users"`
	Expiring      *ExpiringCounts `json:"expiring"`
	// AvgConsistency is not computed: the metric has no agreed definition yet.
	AvgConsistency *float64 `json:"avg_consistency"`
}
