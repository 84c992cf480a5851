package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"causeway/internal/pricing"
	"causeway/internal/storage"
)

func TestHealthReportsConfiguration(t *testing.T) {
	curves := pricing.NewCurveSet(pricing.DefaultCurve())
	if err := curves.Set("HOPE", pricing.Curve{CashFeeRate: 0.1, Slope: 0.001, PlatformReceiptShare: 0.05}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	uploader := storage.NewImageUploader(store, "http://cdn.test/static", 0)
	tests := []struct {
		name        string
		app         *App
		wantCurves  int
		wantUploads bool
	}{
		{name: "defaults", app: newTestApp(&fakeBackend{}), wantCurves: 0, wantUploads: false},
		{name: "configured", app: NewApp(&fakeBackend{}, curves, pricing.DefaultBounds(), uploader, nil), wantCurves: 1, wantUploads: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			routes(tc.app).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("unexpected status %d", rr.Code)
			}
			var body healthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != "ok" || body.CurveOverrides != tc.wantCurves || body.Uploads != tc.wantUploads {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
