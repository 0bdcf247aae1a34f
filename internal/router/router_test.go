package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	basichandler "github.com/overcomingroom/bellbell/internal/handler/basicnotification"
	"github.com/overcomingroom/bellbell/internal/handler/health"
	memberhandler "github.com/overcomingroom/bellbell/internal/handler/member"
	"github.com/overcomingroom/bellbell/internal/handler/prometheus"
	notificationhandler "github.com/overcomingroom/bellbell/internal/handler/usernotification"
	weatherhandler "github.com/overcomingroom/bellbell/internal/handler/weather"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/service/basicnotification"
	"github.com/overcomingroom/bellbell/internal/service/member"
	"github.com/overcomingroom/bellbell/internal/service/usernotification"
	"github.com/overcomingroom/bellbell/internal/service/weather"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/metrics"
	"github.com/overcomingroom/bellbell/pkg/response"
)

// emptyStore knows no tokens, members, notifications or locations.
type emptyStore struct{}

func (emptyStore) Get(context.Context, int64) (*model.Member, error) {
	return nil, repository.ErrNotFound
}

func (emptyStore) FindMemberID(context.Context, string) (int64, error) {
	return 0, repository.ErrNotFound
}

func (emptyStore) PingContext(context.Context) error { return nil }

type nopNotifications struct{}

func (nopNotifications) Create(context.Context, *model.UserNotification) error { return nil }
func (nopNotifications) FindAllByMember(context.Context, int64) ([]*model.UserNotification, error) {
	return nil, nil
}
func (nopNotifications) FindByID(context.Context, int64) (*model.UserNotification, error) {
	return nil, repository.ErrNotFound
}
func (nopNotifications) Delete(context.Context, int64) error { return repository.ErrNotFound }
func (n nopNotifications) WithTx(_ context.Context, fn func(repository.UserNotificationRepository) error) error {
	return fn(n)
}

type nopBasic struct{}

func (nopBasic) Upsert(context.Context, *model.BasicNotification) error { return nil }
func (nopBasic) FindAllByMember(context.Context, int64) ([]*model.BasicNotification, error) {
	return nil, nil
}

type nopLocations struct{}

func (nopLocations) Save(context.Context, *model.MemberLocation) error { return nil }
func (nopLocations) FindByMember(context.Context, int64) (*model.MemberLocation, error) {
	return nil, repository.ErrNotFound
}

type nopForecaster struct{}

func (nopForecaster) Current(context.Context, int, int, time.Time) (*model.Weather, error) {
	return nil, apperrors.New(apperrors.WeatherAPIResResultIsEmpty)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.RegisterValidators())

	store := emptyStore{}
	members := member.NewService(store, store)

	r := NewRouter(Handlers{
		Health:            health.NewHandler(store),
		Metrics:           prometheus.New(metrics.New("test")),
		Member:            memberhandler.NewHandler(members),
		UserNotification:  notificationhandler.NewHandler(usernotification.NewService(nopNotifications{}, members)),
		BasicNotification: basichandler.NewHandler(basicnotification.NewService(nopBasic{}, members)),
		Weather:           weatherhandler.NewHandler(weather.NewService(nopLocations{}, members, nopForecaster{})),
	}, RouterConfig{
		Mode:       gin.TestMode,
		CORSConfig: middleware.DefaultCORSConfig(),
		Timeout:    time.Second,
	})
	r.Setup()
	return r.Engine()
}

func TestUnknownTokenIsMemberNotFound(t *testing.T) {
	engine := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/member", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, apperrors.MemberNotFound.Message, body.Message)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderXRequestID))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/v1/member"},
		{http.MethodGet, "/v1/user-notification"},
		{http.MethodPost, "/v1/user-notification"},
		{http.MethodDelete, "/v1/user-notification/1"},
		{http.MethodGet, "/v1/basic-notification"},
		{http.MethodPut, "/v1/basic-notification"},
		{http.MethodGet, "/v1/location"},
		{http.MethodPost, "/v1/location"},
		{http.MethodGet, "/v1/weather"},
	} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestOpsRoutes(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestNoRoute(t *testing.T) {
	engine := newTestRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2/member", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
