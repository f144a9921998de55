package memory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
)

// compare orders two stored values the way a SQL store would for the
// column types the panel uses: times, numbers, then text. Strings are
// never compared as numbers.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if ta, tb, ok := asTimes(a, b); ok {
		return ta.Compare(tb)
	}
	if fa, okA := asFloat(a); okA {
		if fb, okB := asFloat(b); okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// asTimes converts both values to times when at least one of them is a
// time.Time or both parse as dates.
func asTimes(a, b any) (time.Time, time.Time, bool) {
	_, aIsTime := a.(time.Time)
	_, bIsTime := b.(time.Time)
	if !aIsTime && !bIsTime && !(looksLikeDate(a) && looksLikeDate(b)) {
		return time.Time{}, time.Time{}, false
	}
	ta, err := domain.ParseDate(a)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	tb, err := domain.ParseDate(b)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return ta, tb, true
}

func looksLikeDate(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) < len(domain.DateLayout) {
		return false
	}
	_, err := domain.ParseDate(s)
	return err == nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func matches(row gateway.Row, filters []gateway.Filter) bool {
	for _, f := range filters {
		v, ok := row.Get(f.Column)
		if !ok {
			return false
		}
		c := compare(v, f.Value)
		switch f.Op {
		case gateway.OpEq:
			if c != 0 {
				return false
			}
		case gateway.OpGte:
			if v == nil || c < 0 {
				return false
			}
		case gateway.OpLte:
			if v == nil || c > 0 {
				return false
			}
		}
	}
	return true
}
