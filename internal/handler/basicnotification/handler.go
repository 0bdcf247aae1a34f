package basicnotification

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/overcomingroom/bellbell/internal/handler"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service interface {
	List(ctx context.Context, token string) ([]*model.BasicNotificationResponse, error)
	Save(ctx context.Context, token string, req *model.BasicNotificationRequest) (response.Code, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/basic-notification")
	{
		notifications.GET("", h.List)
		notifications.PUT("", h.Save)
	}
}

func (h *Handler) List(c *gin.Context) {
	notifications, err := h.service.List(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, response.BasicNotificationGetSuccessful, notifications)
}

func (h *Handler) Save(c *gin.Context) {
	var req model.BasicNotificationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	code, err := h.service.Save(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, code, nil)
}
