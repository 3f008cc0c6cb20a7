package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/pkg/logging"
)

func TestSetupMetricsExposesMetrics(t *testing.T) {
	handler, gatewayMetrics, searchMetrics := setupMetrics()
	if handler == nil || gatewayMetrics == nil || searchMetrics == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	gatewayMetrics.ObserveCall("find_specialist", "ok", 0.2)
	searchMetrics.ObserveView("matched")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"medmatch_gateway_calls_total", "medmatch_search_views_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s to be exported", name)
		}
	}
}

func TestBuildServerWithoutExternalServices(t *testing.T) {
	cfg := &appconfig.Config{
		Port:            "0",
		Env:             "development",
		SeedDemoDoctors: true,
	}

	srv, closers, err := buildServer(context.Background(), cfg, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closers) != 0 {
		t.Fatalf("expected no closers without gemini or redis, got %d", len(closers))
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/doctors", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /doctors, got %d", rr.Code)
	}
}

func TestBuildServerRequiresOwnerSecretInProduction(t *testing.T) {
	cfg := &appconfig.Config{Port: "8080", Env: "production"}
	if _, _, err := buildServer(context.Background(), cfg, logging.New("error")); err == nil {
		t.Fatalf("expected error without owner token secret in production")
	}
}
