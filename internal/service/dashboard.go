package service

import (
	"context"
	"math"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

// Dashboard statistic groups. Each group fails on its own.
const (
	GroupMembers  = "members"
	GroupExpiring = "expiring"
)

// DashboardMetrics метрики сбоев панели статистики
type DashboardMetrics interface {
	IncDashboardFailure(group string)
}

// DashboardService собирает статистику для главной страницы
type DashboardService struct {
	gw      gateway.Gateway
	metrics DashboardMetrics
	loc     *time.Location
	now     func() time.Time
	log     *logger.Logger
}

// NewDashboardService создает сервис статистики.
// now may be nil, in which case the wall clock is used.
func NewDashboardService(gw gateway.Gateway, metrics DashboardMetrics, loc *time.Location, now func() time.Time, log *logger.Logger) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardService{gw: gw, metrics: metrics, loc: loc, now: now, log: log}
}

// Today returns the current calendar date in the service time zone, as
// midnight UTC of that date.
func (s *DashboardService) Today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Stats issues the two member counts and the expiring range query. A failed
// group stays nil in the result; the other group is still filled.
func (s *DashboardService) Stats(ctx context.Context) domain.DashboardStats {
	today := s.Today()
	stats := domain.DashboardStats{Today: domain.FormatDate(today)}

	active, inactive, err := s.memberCounts(ctx)
	if err != nil {
		s.fail(GroupMembers, err)
	} else {
		stats.ActiveUsers = &active
		stats.InactiveUsers = &inactive
	}

	expiring, err := s.expiring(ctx, today)
	if err != nil {
		s.fail(GroupExpiring, err)
	} else {
		stats.Expiring = expiring
	}

	return stats
}

func (s *DashboardService) fail(group string, err error) {
	s.log.Errorw("Dashboard statistics group failed", "group", group, "error", err)
	if s.metrics != nil {
		s.metrics.IncDashboardFailure(group)
	}
}

func (s *DashboardService) memberCounts(ctx context.Context) (int64, int64, error) {
	active, err := s.gw.Count(ctx, domain.TableUsers, gateway.Eq(domain.ColStatus, string(domain.UserStatusActive)))
	if err != nil {
		return 0, 0, err
	}
	inactive, err := s.gw.Count(ctx, domain.TableUsers, gateway.Eq(domain.ColStatus, string(domain.UserStatusInactive)))
	if err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}

func (s *DashboardService) expiring(ctx context.Context, today time.Time) (*domain.ExpiringCounts, error) {
	thresholds := domain.ExpiryThresholds()
	horizon := today.AddDate(0, 0, thresholds[len(thresholds)-1])

	rows, err := s.gw.Select(ctx, domain.TableSubscriptions, gateway.Query{
		Columns: []string{domain.ColEndDate},
		Filters: []gateway.Filter{
			gateway.Gte(domain.ColEndDate, domain.FormatDate(today)),
			gateway.Lte(domain.ColEndDate, domain.FormatDate(horizon)),
		},
	})
	if err != nil {
		return nil, err
	}

	ends := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		end, err := s.endOnCalendar(r.Value(domain.ColEndDate))
		if err != nil {
			s.log.Warnw("Skipping subscription with unreadable end date", "value", r.Value(domain.ColEndDate), "error", err)
			continue
		}
		ends = append(ends, end)
	}

	counts := ExpiringBuckets(today, ends, thresholds)
	return &domain.ExpiringCounts{
		Within7Days:  counts[0],
		Within12Days: counts[1],
		Within30Days: counts[2],
	}, nil
}

// endOnCalendar maps a stored end value onto the same UTC-based calendar as
// Today. A bare date is the start of that day; any instant is read as wall
// clock time in the service zone.
func (s *DashboardService) endOnCalendar(v any) (time.Time, error) {
	t, dateOnly, err := domain.ParseDateValue(v)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		return t, nil
	}
	l := t.In(s.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC), nil
}

// DaysUntil is the calendar-day difference from today to end, rounded up
func DaysUntil(today, end time.Time) int {
	return int(math.Ceil(end.Sub(today).Hours() / 24))
}

// ExpiringBuckets counts, for each threshold, the end dates at most that many
// days from today. The boundary day is included.
func ExpiringBuckets(today time.Time, ends []time.Time, thresholds []int) []int {
	counts := make([]int, len(thresholds))
	for _, end := range ends {
		d := DaysUntil(today, end)
		for i, t := range thresholds {
			if d <= t {
				counts[i]++
			}
		}
	}
	return counts
}
