package usernotification

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/overcomingroom/bellbell/internal/handler"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/model"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service interface {
	Create(ctx context.Context, token string, req *model.UserNotificationRequest) (response.Code, error)
	ListAll(ctx context.Context, token string) ([]*model.UserNotificationResponse, error)
	Delete(ctx context.Context, token string, notificationID int64) (response.Code, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/user-notification")
	{
		notifications.POST("", h.Create)
		notifications.GET("", h.List)
		notifications.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.UserNotificationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	code, err := h.service.Create(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, code, nil)
}

func (h *Handler) List(c *gin.Context) {
	notifications, err := h.service.ListAll(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, response.UserNotificationGetSuccessful, notifications)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.Fail(c, apperrors.New(apperrors.InvalidInputValue))
		return
	}

	code, err := h.service.Delete(c.Request.Context(), middleware.AccessToken(c), id)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, code, nil)
}
