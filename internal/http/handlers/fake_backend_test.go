package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"causeway/internal/domain"
	"causeway/internal/pricing"
)

type fakeBackend struct {
	mu sync.Mutex

	causes     json.RawMessage
	causesErr  error
	cause      *domain.Cause
	causeRaw   json.RawMessage
	causeErr   error
	create     *domain.CreateCauseResult
	createErr  error
	session    *domain.CheckoutSession
	donateErr  error
	drafts     []domain.DraftSummary
	draftsErr  error
	statuses   map[string]*domain.DraftStatus
	statusErr  error
	validation *domain.FieldValidation
	validErr   error
	wallet     json.RawMessage
	walletErr  error

	donations []domain.DonateRequest
	created   []domain.CreateCauseRequest
}

func (f *fakeBackend) ListCauses(context.Context) (json.RawMessage, error) {
	return f.causes, f.causesErr
}

func (f *fakeBackend) GetCause(context.Context, string) (*domain.Cause, json.RawMessage, error) {
	return f.cause, f.causeRaw, f.causeErr
}

func (f *fakeBackend) CreateCause(_ context.Context, req domain.CreateCauseRequest) (*domain.CreateCauseResult, error) {
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	return f.create, f.createErr
}

func (f *fakeBackend) Donate(_ context.Context, req domain.DonateRequest) (*domain.CheckoutSession, error) {
	f.mu.Lock()
	f.donations = append(f.donations, req)
	f.mu.Unlock()
	return f.session, f.donateErr
}

func (f *fakeBackend) FindDrafts(context.Context, string) ([]domain.DraftSummary, error) {
	return f.drafts, f.draftsErr
}

func (f *fakeBackend) DraftStatus(_ context.Context, id string) (*domain.DraftStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	s, ok := f.statuses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeBackend) ValidateField(context.Context, domain.ValidatedField, string) (*domain.FieldValidation, error) {
	return f.validation, f.validErr
}

func (f *fakeBackend) WalletUser(context.Context, string) (json.RawMessage, error) {
	return f.wallet, f.walletErr
}

func newTestApp(be *fakeBackend) *App {
	return NewApp(be, nil, pricing.DefaultBounds(), nil, nil)
}

// routes mounts the handlers the way the API router does so chi URL
// parameters resolve.
func routes(app *App) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/healthz", app.Health)
	r.Post("/api/quote", app.Quote)
	r.Get("/api/causes", app.ListCauses)
	r.Post("/api/causes", app.CreateCause)
	r.Post("/api/causes/donate", app.Donate)
	r.Post("/api/causes/find-drafts", app.FindDrafts)
	r.Get("/api/causes/drafts/{id}/status", app.DraftStatus)
	r.Post("/api/causes/validate/{field}", app.ValidateField)
	r.Get("/api/causes/{id}", app.GetCause)
	r.Get("/api/causes/{id}/quote", app.CauseQuote)
	r.Get("/api/wallet/{address}/user", app.WalletUser)
	r.Post("/api/upload-image", app.UploadImage)
	return r
}
