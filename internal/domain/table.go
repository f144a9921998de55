package domain

import "fmt"

// Table имя таблицы во внешнем хранилище
type Table string

const (
	TableUsers         Table = "users"
	TableSubscriptions Table = "subscriptions"
	TableAdmins        Table = "admins"
	TableSessions      Table = "sessions"
)

// Column names shared by the gateway drivers, services and renderer.
const (
	ColID             = "id"
	ColFullName       = "full_name"
	ColPhone          = "phone"
	ColMembershipCode = "membership_code"
	ColStatus         = "status"
	ColUserID         = "user_id"
	ColStartDate      = "start_date"
	ColEndDate        = "end_date"
	ColEmail          = "email"
	ColRole           = "role"
	ColCreatedAt      = "created_at"
	ColSessionDate    = "session_date"
)

// DateLayout is the calendar-date format used in filters and writes.
const DateLayout = "2006-01-02"

// Tables returns every table the panel knows about, in display order
func Tables() []Table {
	return []Table{TableUsers, TableSubscriptions, TableSessions, TableAdmins}
}

// Valid reports whether t is one of the known tables
func (t Table) Valid() bool {
	switch t {
	case TableUsers, TableSubscriptions, TableAdmins, TableSessions:
		return true
	}
	return false
}

// ParseTable validates a table name coming from user input
func ParseTable(name string) (Table, error) {
	t := Table(name)
	if !t.Valid() {
		return "", NewValidationError("table", fmt.Sprintf("unknown table %q", name))
	}
	return t, nil
}

// String реализует fmt.Stringer
func (t Table) String() string {
	return string(t)
}

// ReportDateColumn возвращает колонку даты, по которой фильтруется отчет
func (t Table) ReportDateColumn() string {
	switch t {
	case TableSessions:
		return ColSessionDate
	case TableSubscriptions:
		return ColStartDate
	default:
		return ColCreatedAt
	}
}
