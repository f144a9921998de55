package service

import (
	"context"

	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/pkg/logger"
)

// auditor publishes write events. A failed publish never fails the write
// that already happened.
type auditor struct {
	pub events.Publisher
	log *logger.Logger
}

func newAuditor(pub events.Publisher, log *logger.Logger) auditor {
	if pub == nil {
		pub = events.Noop{}
	}
	return auditor{pub: pub, log: log}
}

func (a auditor) record(ctx context.Context, eventType, table, recordID string, details map[string]any) {
	e := events.NewEvent(eventType, table, recordID, details)
	if err := a.pub.Publish(ctx, e); err != nil {
		a.log.Warnw("Failed to publish audit event", "type", eventType, "record_id", recordID, "error", err)
	}
}
