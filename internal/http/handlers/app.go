package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"causeway/internal/domain"
	"causeway/internal/infra"
	"causeway/internal/pricing"
	"causeway/internal/providers/backend"
)

// Backend is the subset of the cause backend client the handlers call.
type Backend interface {
	ListCauses(ctx context.Context) (json.RawMessage, error)
	GetCause(ctx context.Context, symbol string) (*domain.Cause, json.RawMessage, error)
	CreateCause(ctx context.Context, req domain.CreateCauseRequest) (*domain.CreateCauseResult, error)
	Donate(ctx context.Context, req domain.DonateRequest) (*domain.CheckoutSession, error)
	FindDrafts(ctx context.Context, email string) ([]domain.DraftSummary, error)
	DraftStatus(ctx context.Context, draftID string) (*domain.DraftStatus, error)
	ValidateField(ctx context.Context, field domain.ValidatedField, value string) (*domain.FieldValidation, error)
	WalletUser(ctx context.Context, address string) (json.RawMessage, error)
}

// Uploader stores cause images and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	MaxBytes() int64
}

type App struct {
	Backend  Backend
	Curves   *pricing.CurveSet
	Bounds   pricing.Bounds
	Uploader Uploader
	Logger   *infra.Logger
}

func NewApp(be Backend, curves *pricing.CurveSet, bounds pricing.Bounds, uploader Uploader, logger *infra.Logger) *App {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	if curves == nil {
		curves = pricing.NewCurveSet(pricing.DefaultCurve())
	}
	return &App{Backend: be, Curves: curves, Bounds: bounds, Uploader: uploader, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// forwardBackendError relays a backend rejection with its own status and body.
// It reports false when err is not a backend answer.
func (a *App) forwardBackendError(w http.ResponseWriter, err error) bool {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if gjson.ValidBytes(apiErr.Body) && len(apiErr.Body) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.Status)
		_, _ = w.Write(apiErr.Body)
		return true
	}
	a.error(w, apiErr.Status, "backend_error", http.StatusText(apiErr.Status))
	return true
}

func (a *App) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(v)
}
