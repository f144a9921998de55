package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Dhoini/Admin-panel/internal/artifact"
	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/render"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/req"
	"github.com/google/uuid"
)

// utf8BOM is written first so spreadsheet tools detect the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReportRequest параметры отчета. Dates are optional calendar dates.
type ReportRequest struct {
	Table     string `json:"table" validate:"required,oneof=users subscriptions sessions admins"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Report сформированный CSV отчет
type Report struct {
	Table    domain.Table
	Filename string
	Rows     int
	Data     []byte
}

// ReportMetrics метрики отчетов
type ReportMetrics interface {
	IncReportGenerated(table string)
}

// ReportService формирует CSV отчеты по таблицам
type ReportService struct {
	gw      gateway.Gateway
	store   artifact.Store
	ttl     time.Duration
	metrics ReportMetrics
	log     *logger.Logger
}

// NewReportService создает сервис отчетов
func NewReportService(gw gateway.Gateway, store artifact.Store, ttl time.Duration, metrics ReportMetrics, log *logger.Logger) *ReportService {
	if ttl <= 0 {
		ttl = artifact.DefaultTTL
	}
	return &ReportService{gw: gw, store: store, ttl: ttl, metrics: metrics, log: log}
}

// ReportFilename returns the download name for a table report
func ReportFilename(table domain.Table) string {
	return fmt.Sprintf("%s-report.csv", table)
}

// ReportFilters builds the inclusive date range for a table's report column.
// The end bound is the last instant of the end day so timestamp columns
// include the whole day.
func ReportFilters(table domain.Table, start, end string) ([]gateway.Filter, error) {
	col := table.ReportDateColumn()
	var filters []gateway.Filter
	var from, to time.Time

	if start != "" {
		t, err := time.Parse(domain.DateLayout, start)
		if err != nil {
			return nil, domain.NewValidationError("start_date", "must be a date in 2006-01-02 format")
		}
		from = t
		filters = append(filters, gateway.Gte(col, t))
	}
	if end != "" {
		t, err := time.Parse(domain.DateLayout, end)
		if err != nil {
			return nil, domain.NewValidationError("end_date", "must be a date in 2006-01-02 format")
		}
		to = t
		filters = append(filters, gateway.Lte(col, t.AddDate(0, 0, 1).Add(-time.Microsecond)))
	}
	if start != "" && end != "" && from.After(to) {
		return nil, domain.NewValidationError("start_date", "must not be after end_date")
	}
	return filters, nil
}

// Build selects the rows and encodes them without storing anything
func (s *ReportService) Build(ctx context.Context, r ReportRequest) (*Report, error) {
	if err := req.IsValid(r); err != nil {
		return nil, err
	}
	table, err := domain.ParseTable(r.Table)
	if err != nil {
		return nil, err
	}
	filters, err := ReportFilters(table, r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.gw.Select(ctx, table, gateway.Query{Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("failed to select report rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyReport
	}

	data, err := EncodeCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	return &Report{
		Table:    table,
		Filename: ReportFilename(table),
		Rows:     len(rows),
		Data:     data,
	}, nil
}

// Generate builds a report and stores it as a downloadable artifact
func (s *ReportService) Generate(ctx context.Context, r ReportRequest) (*artifact.Artifact, error) {
	rep, err := s.Build(ctx, r)
	if err != nil {
		return nil, err
	}

	a := &artifact.Artifact{
		ID:          uuid.NewString(),
		Filename:    rep.Filename,
		ContentType: artifact.ContentTypeCSV,
		Table:       string(rep.Table),
		Rows:        rep.Rows,
		CreatedAt:   time.Now().UTC(),
		Data:        rep.Data,
	}
	if err := s.store.Save(ctx, a, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncReportGenerated(a.Table)
	}
	s.log.Infow("Report generated", "id", a.ID, "table", a.Table, "rows", a.Rows)
	return a, nil
}

// Download возвращает сохраненный отчет
func (s *ReportService) Download(ctx context.Context, id string) (*artifact.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("report", id)
	}
	return s.store.Get(ctx, id)
}

// EncodeCSV writes a byte-order marker, a header made of the first row's
// columns and one line per row in that column order. Fields are quoted only
// when they contain a comma, quote or line break. There is no trailing
// newline.
func EncodeCSV(rows []gateway.Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyReport
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	header := rows[0].Columns()
	if err := w.Write(header); err != nil {
		return nil, err
	}

	record := make([]string, len(header))
	for _, r := range rows {
		for i, col := range header {
			record[i] = render.FormatValue(r.Value(col))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
