package handlers

import (
	"context"
	"net/http"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/render"
	"github.com/Dhoini/Admin-panel/internal/service"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/req"
	"github.com/Dhoini/Admin-panel/pkg/res"
	"github.com/gin-gonic/gin"
)

// UserManager действия сотрудника над пользователем
type UserManager interface {
	Delete(ctx context.Context, id string) (*service.DeleteResult, error)
	Deactivate(ctx context.Context, id string) (*service.UserDetail, error)
	ExtendSubscription(ctx context.Context, id string, r domain.ExtendSubscriptionRequest) (*service.UserDetail, error)
}

// UserHandler обработчик действий над пользователями
type UserHandler struct {
	users UserManager
	log   *logger.Logger
	debug bool
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(users UserManager, debug bool, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, log: log, debug: debug}
}

// DeleteUser удаляет пользователя и возвращает адрес списка
func (h *UserHandler) DeleteUser(c *gin.Context) {
	result, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, result, http.StatusOK)
}

// DeactivateUser деактивирует пользователя и возвращает обновленную карточку
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	detail, err := h.users.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, render.UserDetail(detail.User, detail.Subscriptions), http.StatusOK)
}

// ExtendSubscription продлевает последнюю подписку пользователя
func (h *UserHandler) ExtendSubscription(c *gin.Context) {
	r, err := req.Decode[domain.ExtendSubscriptionRequest](c.Request.Body)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}

	detail, err := h.users.ExtendSubscription(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		res.JsonErrorResponse(c, err, h.log, h.debug)
		return
	}
	res.JsonResponse(c, render.UserDetail(detail.User, detail.Subscriptions), http.StatusOK)
}
