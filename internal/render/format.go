// Package render turns gateway rows into display-ready views. It does no I/O:
// every function takes the rows a page handler already fetched.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
)

// FormatValue converts a stored value to cell text. The CSV export uses the
// same rules so screen and file agree.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return formatTime(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return formatTime(*t)
	default:
		return fmt.Sprint(v)
	}
}

func formatTime(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return domain.FormatDate(u)
	}
	return t.Format(time.RFC3339)
}

// FormatDateOnly renders a date or timestamp as a calendar date, falling back
// to FormatValue when the value does not parse.
func FormatDateOnly(v any) string {
	if v == nil {
		return ""
	}
	t, err := domain.ParseDate(v)
	if err != nil {
		return FormatValue(v)
	}
	return domain.FormatDate(t.UTC())
}

// StatusLabel maps a user status to its display label
func StatusLabel(v any) string {
	if FormatValue(v) == string(domain.UserStatusActive) {
		return "Active"
	}
	return "Inactive"
}
