package member

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/overcomingroom/bellbell/internal/handler"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service interface {
	GetMemberInfo(ctx context.Context, token string) (*model.MemberResponse, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/member", h.GetMemberInfo)
}

func (h *Handler) GetMemberInfo(c *gin.Context) {
	info, err := h.service.GetMemberInfo(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, response.MemberInfoGetSuccessful, info)
}
