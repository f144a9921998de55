package handlers

import (
	"context"
	"net/http"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/render"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/req"
	"github.com/Dhoini/Admin-panel/pkg/res"
	"github.com/gin-gonic/gin"
)

// AdminManager управление списком администраторов
type AdminManager interface {
	List(ctx context.Context) ([]gateway.Row, error)
	Add(ctx context.Context, r domain.AdminRequest) ([]gateway.Row, error)
}

// AdminHandler обработчик администраторов
type AdminHandler struct {
	admins AdminManager
	log    *logger.Logger
	debug  bool
}

// NewAdminHandler создает новый обработчик администраторов
func NewAdminHandler(admins AdminManager, debug bool, log *logger.Logger) *AdminHandler {
	return &AdminHandler{admins: admins, log: log, debug: debug}
}

// GetAdmins возвращает таблицу администраторов
func (h *AdminHandler) GetAdmins(c *gin.Context) {
	rows, err := h.admins.List(c.Request.Context())
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, render.Admins(rows), http.StatusOK)
}

// AddAdmin добавляет администратора и возвращает обновленную таблицу
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	r, err := req.Decode[domain.AdminRequest](c.Request.Body)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	rows, err := h.admins.Add(c.Request.Context(), r)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, render.Admins(rows), http.StatusCreated)
}
