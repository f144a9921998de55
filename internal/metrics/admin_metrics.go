package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adminpanel"

// AdminMetrics интерфейс для метрик панели администратора
type AdminMetrics interface {
	gateway.Observer
	IncReportGenerated(table string)
	IncDashboardFailure(group string)
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

type adminMetrics struct {
	log               *logger.Logger
	gatewayCalls      *prometheus.CounterVec
	gatewayLatency    *prometheus.HistogramVec
	reportsGenerated  *prometheus.CounterVec
	dashboardFailures *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// NewAdminMetrics создает новые метрики панели администратора
func NewAdminMetrics(registry *prometheus.Registry, log *logger.Logger) AdminMetrics {
	factory := promauto.With(registry)

	gatewayCalls := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "The total number of data gateway calls",
		},
		[]string{"table", "op", "outcome"},
	)

	gatewayLatency := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_call_duration_seconds",
			Help:      "Data gateway call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"table", "op"},
	)

	reportsGenerated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "The total number of generated CSV reports",
		},
		[]string{"table"},
	)

	dashboardFailures := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_failures_total",
			Help:      "The total number of dashboard statistic groups that failed to load",
		},
		[]string{"group"},
	)

	httpRequests := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpLatency := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	return &adminMetrics{
		log:               log,
		gatewayCalls:      gatewayCalls,
		gatewayLatency:    gatewayLatency,
		reportsGenerated:  reportsGenerated,
		dashboardFailures: dashboardFailures,
		httpRequests:      httpRequests,
		httpLatency:       httpLatency,
	}
}

// Outcome classifies a gateway error for the outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, gateway.ErrInvalidQuery):
		return "invalid"
	default:
		return "error"
	}
}

// ObserveGatewayCall записывает вызов шлюза данных
func (m *adminMetrics) ObserveGatewayCall(table, op string, err error, elapsed time.Duration) {
	m.gatewayCalls.WithLabelValues(table, op, Outcome(err)).Inc()
	m.gatewayLatency.WithLabelValues(table, op).Observe(elapsed.Seconds())
}

// IncReportGenerated увеличивает счетчик сформированных отчетов
func (m *adminMetrics) IncReportGenerated(table string) {
	m.reportsGenerated.WithLabelValues(table).Inc()
}

// IncDashboardFailure увеличивает счетчик сбоев групп статистики
func (m *adminMetrics) IncDashboardFailure(group string) {
	m.dashboardFailures.WithLabelValues(group).Inc()
}

// ObserveHTTPRequest записывает HTTP запрос
func (m *adminMetrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
