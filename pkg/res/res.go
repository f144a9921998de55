// Package res writes JSON responses and maps application errors to HTTP
// statuses.
package res

import (
	"errors"
	"net/http"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse представляет формат JSON-ответа для ошибок.
type ErrorResponse struct {
	Error     string `json:"error"`                // Сообщение об ошибке (для пользователя)
	Details   any    `json:"details,omitempty"`    // Детали ошибки (например, ошибки валидации)
	DebugInfo string `json:"debug_info,omitempty"` // Отладочная информация (ТОЛЬКО в development среде!)
}

// JsonResponse отправляет JSON-ответ с заданным статусом.
func JsonResponse(c *gin.Context, data any, status int) {
	c.JSON(status, data)
}

// Status возвращает HTTP статус для ошибки
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoSubscription):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrEmptyReport),
		errors.Is(err, domain.ErrUnknownPage):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// message is the user-facing text. Server-side failures never leak details.
func message(err error, status int) string {
	switch {
	case errors.Is(err, domain.ErrEmptyReport):
		return domain.ErrEmptyReport.Error()
	case errors.Is(err, domain.ErrNoSubscription):
		return domain.ErrNoSubscription.Error()
	case errors.Is(err, domain.ErrUnknownPage):
		return domain.ErrUnknownPage.Error()
	}

	switch status {
	case http.StatusUnprocessableEntity:
		return "validation failed"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "already exists"
	case http.StatusBadGateway:
		return "data store unavailable"
	default:
		return "internal server error"
	}
}

// JsonErrorResponse отправляет JSON ответ ошибки и логирует ее один раз.
// With debug set the raw error is included as debug_info.
func JsonErrorResponse(c *gin.Context, err error, log *logger.Logger, debug bool) {
	status := Status(err)
	body := ErrorResponse{Error: message(err, status)}

	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		body.Details = verrs
	}
	if debug {
		body.DebugInfo = err.Error()
	}

	if status >= http.StatusInternalServerError {
		log.Errorw("Request failed", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
	} else {
		log.Warnw("Request rejected", "method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
	}

	c.AbortWithStatusJSON(status, body)
}
