package handlers

import (
	"context"
	"net/http"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/pkg/res"
	"github.com/gin-gonic/gin"
)

// StatsProvider собирает статистику для главной страницы
type StatsProvider interface {
	Stats(ctx context.Context) domain.DashboardStats
}

// DashboardHandler обработчик статистики
type DashboardHandler struct {
	stats StatsProvider
}

// NewDashboardHandler создает новый обработчик статистики
func NewDashboardHandler(stats StatsProvider) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// GetStats always answers 200: failed groups come back as null.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	res.JsonResponse(c, h.stats.Stats(c.Request.Context()), http.StatusOK)
}
