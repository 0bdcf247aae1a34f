package weather

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/overcomingroom/bellbell/internal/handler"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service interface {
	SaveLocation(ctx context.Context, token string, req *model.LocationRequest) (response.Code, error)
	GetLocation(ctx context.Context, token string) (*model.LocationResponse, error)
	CurrentWeather(ctx context.Context, token string) (*model.Weather, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	location := r.Group("/location")
	{
		location.POST("", h.SaveLocation)
		location.GET("", h.GetLocation)
	}
	r.GET("/weather", h.GetWeather)
}

func (h *Handler) SaveLocation(c *gin.Context) {
	var req model.LocationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	code, err := h.service.SaveLocation(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, code, nil)
}

func (h *Handler) GetLocation(c *gin.Context) {
	loc, err := h.service.GetLocation(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, response.LocationInformationSearchSuccessful, loc)
}

func (h *Handler) GetWeather(c *gin.Context) {
	w, err := h.service.CurrentWeather(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Respond(c, response.WeatherInfoGetSuccessful, w)
}
