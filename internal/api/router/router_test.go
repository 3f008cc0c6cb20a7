package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	httpmiddleware "github.com/wolfman30/medmatch/internal/http/middleware"
	"github.com/wolfman30/medmatch/internal/matching"
	"github.com/wolfman30/medmatch/internal/observability/metrics"
	"github.com/wolfman30/medmatch/internal/search"
	"github.com/wolfman30/medmatch/internal/session"
	"github.com/wolfman30/medmatch/pkg/logging"
)

type stubGateway struct{}

func (stubGateway) FindSpecialist(_ context.Context, _ string, _ []directory.Doctor) []matching.MatchResult {
	return []matching.MatchResult{{ID: "3", MatchReason: "children", Confidence: 0.9}}
}

func (stubGateway) GenerateBio(context.Context, directory.BioRequest) string {
	return "Generated bio."
}

func (stubGateway) AskClinicalQuestion(context.Context, string) gateway.ClinicalResponse {
	return gateway.ClinicalResponse{Answer: "answer", Sources: []gateway.ClinicalSource{}}
}

func newTestRouter(t *testing.T, rate float64, burst int) (http.Handler, *httpmiddleware.OwnerTokens) {
	t.Helper()

	logger := logging.NewWithWriter("error", io.Discard)
	reg := prometheus.NewRegistry()
	tokens := httpmiddleware.NewOwnerTokens("router-secret", time.Hour)
	store := directory.NewStore(logger, directory.Seed()...)
	ai := stubGateway{}
	svc := search.NewService(store, session.NewMemoryStore(0), ai, metrics.NewSearchMetrics(reg), logger)

	return New(&Config{
		Logger:               logger,
		DirectoryHandler:     directory.NewHandler(store, ai, tokens, logger),
		SearchHandler:        search.NewHandler(svc, logger),
		OwnerTokens:          tokens,
		MetricsHandler:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:   []string{"https://medmatch.example"},
		AIRateLimitPerSecond: rate,
		AIRateLimitBurst:     burst,
	}), tokens
}

func request(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, 0, 0)

	rr := request(router, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterDoctorsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, 0, 0)

	rr := request(router, http.MethodGet, "/doctors", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp struct {
		Doctors []directory.Doctor `json:"doctors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Doctors) != 4 {
		t.Fatalf("expected 4 seeded doctors, got %d", len(resp.Doctors))
	}

	rr = request(router, http.MethodGet, "/doctors/3", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected doctor 3, got %d", rr.Code)
	}
}

func TestRouterOwnerRoutesRequireToken(t *testing.T) {
	router, tokens := newTestRouter(t, 0, 0)

	if rr := request(router, http.MethodGet, "/me", "", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	token, err := tokens.Issue("2")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rr := request(router, http.MethodPost, "/me/calendar-sync", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 toggling calendar sync, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = request(router, http.MethodGet, "/doctors/2", "", "")
	var doc directory.Doctor
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.CalendarSynced {
		t.Fatalf("expected calendar sync to be visible in the directory")
	}
}

func TestRouterSearchFlow(t *testing.T) {
	router, _ := newTestRouter(t, 0, 0)

	rr := request(router, http.MethodPost, "/search/specialists", "", `{"query":"fever in toddler"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get(search.SessionHeader) == "" {
		t.Fatalf("expected a session id header")
	}
	var page search.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Specialist == nil || page.Specialist.State != matching.StateMatched {
		t.Fatalf("expected matched view, got %+v", page.Specialist)
	}
	if len(page.Specialist.Doctors) != 1 || page.Specialist.Doctors[0].Doctor.ID != "3" {
		t.Fatalf("unexpected doctors: %+v", page.Specialist.Doctors)
	}
}

func TestRouterRateLimitsAIRoutes(t *testing.T) {
	router, _ := newTestRouter(t, 0.001, 1)

	if rr := request(router, http.MethodPost, "/search/clinical", "", `{"query":"q"}`); rr.Code != http.StatusOK {
		t.Fatalf("expected first clinical call to pass, got %d", rr.Code)
	}
	if rr := request(router, http.MethodPost, "/search/clinical", "", `{"query":"q"}`); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr := request(router, http.MethodGet, "/search", "", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected non-AI search route to stay open, got %d", rr.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, 0, 0)
	request(router, http.MethodGet, "/search", "", "")

	rr := request(router, http.MethodGet, "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "medmatch_search_views_total") {
		t.Fatalf("expected search metrics in output")
	}
}
