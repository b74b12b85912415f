package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/growai/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("connection refused") }

func TestSystemHandler_Health(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health handler.HealthResponse
	decode(t, w, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSystemHandler_HealthUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewSystemHandler("GrowAI API", failingPinger{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	h.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var health handler.HealthResponse
	resp := decode(t, w, &health)
	assert.False(t, resp.Success)
	assert.Equal(t, "unreachable", health.Database)
}

func TestSystemHandler_InfoAndPing(t *testing.T) {
	api := newTestAPI(t)

	var info handler.SystemInfoResponse
	decode(t, api.do(http.MethodGet, "/api/v1/system/info", nil), &info)
	assert.Equal(t, "GrowAI API", info.Name)
	assert.Equal(t, handler.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)

	var pong handler.PingResponse
	decode(t, api.do(http.MethodGet, "/api/v1/system/ping", nil), &pong)
	assert.Equal(t, "pong", pong.Message)
	_, err := time.Parse(time.RFC3339, pong.Timestamp)
	assert.NoError(t, err)
}
