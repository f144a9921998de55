package domain

import (
	"fmt"
	"time"
)

// Subscription представляет собой модель подписки.
// Ссылка на пользователя не проверяется на стороне панели.
type Subscription struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp, as stores
// return either for date columns depending on the driver.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil date")
		}
		return *v, nil
	case string:
		if t, err := time.Parse(DateLayout, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02T15:04:05", v); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", v)
	case []byte:
		return ParseDate(string(v))
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", value)
	}
}

// ParseDateValue parses like ParseDate and also reports whether the stored
// value was a bare calendar date. Only a "2006-01-02" string is date-only;
// every time.Time is an instant, even at midnight UTC.
func ParseDateValue(value any) (t time.Time, dateOnly bool, err error) {
	if b, ok := value.([]byte); ok {
		value = string(b)
	}
	if s, ok := value.(string); ok && len(s) == len(DateLayout) {
		if t, err := time.Parse(DateLayout, s); err == nil {
			return t, true, nil
		}
	}
	t, err = ParseDate(value)
	return t, false, err
}

// FormatDate formats t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
