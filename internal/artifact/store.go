// Package artifact keeps generated report files for a limited time so they
// can be downloaded after the generating request returns.
package artifact

import (
	"context"
	"time"
)

const (
	// DefaultTTL время хранения отчета по умолчанию
	DefaultTTL = 15 * time.Minute

	// ContentTypeCSV тип содержимого CSV отчетов
	ContentTypeCSV = "text/csv; charset=utf-8"
)

// Artifact сформированный файл отчета
type Artifact struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Table       string    `json:"table"`
	Rows        int       `json:"rows"`
	CreatedAt   time.Time `json:"created_at"`
	Data        []byte    `json:"data"`
}

// Store хранилище сформированных отчетов.
// Get returns an error matching domain.ErrNotFound for unknown or expired ids.
type Store interface {
	Save(ctx context.Context, a *Artifact, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Artifact, error)
	Close() error
}
