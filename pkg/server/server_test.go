package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mokeyzz1/buzzline-04-moses/pkg/logging"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/monitoring"
)

func TestSetupServiceRouter(t *testing.T) {
	logger := logging.NewLogger()
	hc := monitoring.NewHealthChecker("svc", "v1")
	mc := monitoring.NewMetricsCollector("svc", "v1", "abc")
	r := SetupServiceRouter(logger, "svc", hc, mc)
	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), "GET", "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequestWithContext(context.Background(), "GET", "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("expected 200 from /health, got %d", w.Code)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("PORT", "")
	cfg := DefaultConfig("svc", "8080")
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	t.Setenv("PORT", "9999")
	cfg = DefaultConfig("svc", "8080")
	if cfg.Port != "9999" {
		t.Fatalf("expected env port 9999, got %s", cfg.Port)
	}
}
