// Package events publishes an audit trail of the panel's write operations.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTopic топик аудита по умолчанию
const DefaultTopic = "adminpanel.audit"

// Типы событий аудита
const (
	TypeUserDeleted          = "user.deleted"
	TypeUserDeactivated      = "user.deactivated"
	TypeSubscriptionExtended = "subscription.extended"
	TypeAdminAdded           = "admin.added"
)

// Event событие аудита
type Event struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Table    string         `json:"table"`
	RecordID string         `json:"record_id"`
	At       time.Time      `json:"at"`
	Details  map[string]any `json:"details,omitempty"`
}

// NewEvent создает событие с новым идентификатором
func NewEvent(eventType, table, recordID string, details map[string]any) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Table:    table,
		RecordID: recordID,
		At:       time.Now().UTC(),
		Details:  details,
	}
}

// Publisher интерфейс для отправки событий аудита
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards events. Used when kafka.enabled is false.
type Noop struct{}

// Publish ничего не делает
func (Noop) Publish(context.Context, Event) error { return nil }

// Close ничего не делает
func (Noop) Close() error { return nil }
