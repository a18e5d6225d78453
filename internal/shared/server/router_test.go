package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/corrections"
	"resume-o-matic/internal/facts"
	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/submissions"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config:             config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:5173"}},
		CorrectionsHandler: corrections.NewHandler(corrections.NewService(corrections.NewMemoryRepo())),
		FactsHandler:       facts.NewHandler(facts.NewService(facts.NewMemoryRepo())),
		SubmissionsHandler: submissions.NewHandler(&submissions.Service{Repo: submissions.NewMemoryRepo()}),
	})
}

func TestHealthWithoutDatabase(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true || body["db"] != "memory" {
		t.Fatalf("unexpected body %v", body)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "# TYPE generation_started_total counter") {
		t.Fatalf("unexpected metrics body %s", resp.Body.String())
	}
}

func TestRoutesRegistered(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/api/v1/corrections", "/api/v1/facts", "/api/v1/tweaks", "/api/v1/submissions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
