package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"causeway/internal/domain"
	"causeway/internal/http/handlers"
	"causeway/internal/pricing"
)

type stubBackend struct {
	handlers.Backend
}

func (stubBackend) GetCause(context.Context, string) (*domain.Cause, json.RawMessage, error) {
	return &domain.Cause{TokenSymbol: "SAVE", Status: "Active", IsActive: true, CurrentPrice: 0.01}, json.RawMessage(`{}`), nil
}

func newTestRouter(t *testing.T, staticDir string, rateLimit int) http.Handler {
	t.Helper()
	app := handlers.NewApp(stubBackend{}, nil, pricing.DefaultBounds(), nil, nil)
	return NewRouter(app, Options{
		Logger:          zerolog.New(io.Discard),
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitPerMin: rateLimit,
		DefaultLocale:   "en",
		StaticDir:       staticDir,
	})
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, "", 0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t, "", 0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/openapi.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range []string{"/api/quote", "/api/causes/donate", "/api/causes/{id}/quote"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("openapi document missing %s", p)
		}
	}
}

func TestQuoteUsesRequestLocale(t *testing.T) {
	h := newTestRouter(t, "", 0)
	req := httptest.NewRequest(http.MethodGet, "/api/causes/SAVE/quote?amount_cents=10000", nil)
	req.Header.Set("X-Locale", "de")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Locale  string `json:"locale"`
		Display struct {
			UserReceipts string `json:"user_receipts"`
		} `json:"display"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Locale != "de" || resp.Display.UserReceipts != "~8.592,17" {
		t.Fatalf("unexpected localized quote %+v", resp)
	}
	if got := rr.Header().Get("Content-Language"); got != "de" {
		t.Fatalf("Content-Language = %q", got)
	}
}

func TestStaticFilesServed(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rr := httptest.NewRecorder()
	newTestRouter(t, dir, 0).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/images/a.png", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "png" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/causes/donate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	newTestRouter(t, "", 0).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("missing allow origin header")
	}
}

func TestAPIRateLimited(t *testing.T) {
	h := newTestRouter(t, "", 2)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/causes/SAVE/quote?amount_cents=1000", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	// health checks sit outside the limiter
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz should not be rate limited, got %d", rr.Code)
	}
}
