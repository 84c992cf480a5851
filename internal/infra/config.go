package infra

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	BackendURL         string
	BackendTimeout     time.Duration
	BackendMaxTries    int
	StoragePath        string
	StorageBaseURL     string
	MaxUploadBytes     int64
	CurvesFile         string
	DonationMinCents   int64
	DonationMaxCents   int64
	CORSAllowedOrigins []string
	GeoIPDBPath        string
	DefaultLocale      string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		BackendURL:         getEnv("BACKEND_API_URL", getEnv("NEXT_PUBLIC_API_URL", "http://127.0.0.1:8080")),
		BackendTimeout:     time.Second * time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 15)),
		BackendMaxTries:    getEnvInt("BACKEND_MAX_TRIES", 3),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:"+port+"/static"),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
		CurvesFile:         os.Getenv("CURVES_FILE"),
		DonationMinCents:   int64(getEnvInt("DONATION_MIN_CENTS", 100)),
		DonationMaxCents:   int64(getEnvInt("DONATION_MAX_CENTS", 20000)),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if u, err := url.Parse(cfg.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BACKEND_API_URL must be an absolute url, got %q", cfg.BackendURL)
	}
	if cfg.BackendMaxTries < 1 {
		return nil, fmt.Errorf("BACKEND_MAX_TRIES must be at least 1")
	}
	if cfg.DonationMinCents < 1 {
		return nil, fmt.Errorf("DONATION_MIN_CENTS must be positive")
	}
	if cfg.DonationMaxCents < cfg.DonationMinCents {
		return nil, fmt.Errorf("DONATION_MAX_CENTS (%d) is below DONATION_MIN_CENTS (%d)", cfg.DonationMaxCents, cfg.DonationMinCents)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
