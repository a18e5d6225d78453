package facts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandlerFactsAndTweaksAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(router.Group("/api/v1"))

	post := func(path, text string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"text": text})
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	if resp := post("/api/v1/facts", "Speaks Spanish"); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if resp := post("/api/v1/tweaks", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tweaks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var tweaks []ItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&tweaks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tweaks) != 0 {
		t.Fatalf("expected no tweaks, got %d", len(tweaks))
	}

	body, _ := json.Marshal(map[string]string{"text": "x"})
	req = httptest.NewRequest(http.MethodPut, "/api/v1/facts/missing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
