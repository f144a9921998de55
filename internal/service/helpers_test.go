package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/gateway/memory"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type countingMetrics struct {
	mu       sync.Mutex
	failures map[string]int
	reports  map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{failures: map[string]int{}, reports: map[string]int{}}
}

func (m *countingMetrics) IncDashboardFailure(group string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[group]++
}

func (m *countingMetrics) IncReportGenerated(table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[table]++
}

// inactiveCountFails lets the active count succeed and fails the inactive one
type inactiveCountFails struct {
	gateway.Gateway
}

func (g inactiveCountFails) Count(ctx context.Context, table domain.Table, filters ...gateway.Filter) (int64, error) {
	for _, f := range filters {
		if f.Column == domain.ColStatus && f.Value == string(domain.UserStatusInactive) {
			return 0, domain.NewGatewayError("count", string(table), errors.New("timeout"))
		}
	}
	return g.Gateway.Count(ctx, table, filters...)
}

func newMemory() *memory.Gateway {
	return memory.New(logger.NewNop())
}
