package handlers

import (
	"context"
	"net/http"

	"github.com/Dhoini/Admin-panel/internal/pages"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/res"
	"github.com/gin-gonic/gin"
)

// PageDispatcher строит страницу по ее идентификатору
type PageDispatcher interface {
	Dispatch(ctx context.Context, id pages.PageID, r pages.Request) (*pages.Page, error)
}

// PageHandler обработчик страниц панели
type PageHandler struct {
	pages PageDispatcher
	log   *logger.Logger
	debug bool
}

// NewPageHandler создает новый обработчик страниц
func NewPageHandler(d PageDispatcher, debug bool, log *logger.Logger) *PageHandler {
	return &PageHandler{pages: d, log: log, debug: debug}
}

// GetPage возвращает модель страницы; ?id= выбирает пользователя
func (h *PageHandler) GetPage(c *gin.Context) {
	id, err := pages.Resolve(c.Param("page"))
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	page, err := h.pages.Dispatch(c.Request.Context(), id, pages.Request{ID: c.Query("id")})
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, page, http.StatusOK)
}
