package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("DONATION_MAX_CENTS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:8080" {
		t.Fatalf("BackendURL mismatch: got %q", cfg.BackendURL)
	}
	if cfg.StorageBaseURL != "http://localhost:8080/static" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
	if cfg.DonationMinCents != 100 || cfg.DonationMaxCents != 20000 {
		t.Fatalf("donation bounds mismatch: %d..%d", cfg.DonationMinCents, cfg.DonationMaxCents)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Fatalf("BackendTimeout mismatch: %s", cfg.BackendTimeout)
	}
}

func TestLoadConfigFallsBackToPublicAPIURL(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "")
	t.Setenv("NEXT_PUBLIC_API_URL", "https://api.example.org")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BackendURL != "https://api.example.org" {
		t.Fatalf("BackendURL mismatch: got %q", cfg.BackendURL)
	}
}

func TestLoadConfigInheritsPortInStorageBaseURL(t *testing.T) {
	t.Setenv("PORT", "1919")
	t.Setenv("STORAGE_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:1919/static" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
}

func TestLoadConfigParsesOriginList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("origins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("origin[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}

func TestLoadConfigRejectsInvertedBounds(t *testing.T) {
	t.Setenv("DONATION_MIN_CENTS", "500")
	t.Setenv("DONATION_MAX_CENTS", "100")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for inverted donation bounds")
	}
}

func TestLoadConfigRejectsRelativeBackendURL(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "api/v1")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for relative backend url")
	}
}
