package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/healthguide/internal/config"
	"github.com/vcscsvcscs/healthguide/internal/handler"
	"github.com/vcscsvcscs/healthguide/internal/middleware"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, origins []string, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doc, err := api.GetSwagger()
	require.NoError(t, err)

	logger := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{AllowedOrigins: origins, ShutdownTimeout: time.Second}}
	server := &handler.APIHandler{
		System: handler.NewSystemHandler(map[string]handler.Pinger{}, doc, logger),
		// malformed bodies are rejected before the service is reached
		Chat: handler.NewChatHandler(nil, logger),
	}

	return newRouter(cfg, server, middleware.NewRateLimiter(0.001, burst), logger)
}

func TestRouter_Health(t *testing.T) {
	router := newTestServer(t, []string{"*"}, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, w.Header().Get(middleware.TraceIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestServer(t, []string{"https://app.example.com"}, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/scores/preview", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_RateLimitsPublicEndpoints(t *testing.T) {
	router := newTestServer(t, []string{"*"}, 2)

	send := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/respond", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.7:5000"
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	// the health check is never throttled
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, allowsAnyOrigin([]string{"https://a.example", "*"}))
	assert.False(t, allowsAnyOrigin([]string{"https://a.example"}))
	assert.False(t, allowsAnyOrigin(nil))
}
