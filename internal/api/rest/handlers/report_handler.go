package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Dhoini/Admin-panel/internal/artifact"
	"github.com/Dhoini/Admin-panel/internal/service"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/req"
	"github.com/Dhoini/Admin-panel/pkg/res"
	"github.com/gin-gonic/gin"
)

// ReportGenerator формирует и отдает отчеты
type ReportGenerator interface {
	Generate(ctx context.Context, r service.ReportRequest) (*artifact.Artifact, error)
	Download(ctx context.Context, id string) (*artifact.Artifact, error)
}

// ReportResponse описывает сохраненный отчет
type ReportResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Table       string    `json:"table"`
	Rows        int       `json:"rows"`
	CreatedAt   time.Time `json:"created_at"`
	DownloadURL string    `json:"download_url"`
}

// ReportHandler обработчик отчетов
type ReportHandler struct {
	reports ReportGenerator
	log     *logger.Logger
	debug   bool
}

// NewReportHandler создает новый обработчик отчетов
func NewReportHandler(reports ReportGenerator, debug bool, log *logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log, debug: debug}
}

// CreateReport формирует CSV отчет и возвращает ссылку на скачивание
func (h *ReportHandler) CreateReport(c *gin.Context) {
	r, err := req.Decode[service.ReportRequest](c.Request.Body)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	a, err := h.reports.Generate(c.Request.Context(), r)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	res.JsonResponse(c, ReportResponse{
		ID:          a.ID,
		Filename:    a.Filename,
		Table:       a.Table,
		Rows:        a.Rows,
		CreatedAt:   a.CreatedAt,
		DownloadURL: fmt.Sprintf("/api/v1/reports/%s/download", a.ID),
	}, http.StatusCreated)
}

// DownloadReport отдает байты отчета как вложение
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	a, err := h.reports.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}
