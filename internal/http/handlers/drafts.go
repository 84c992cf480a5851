package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"causeway/internal/domain"
)

const draftStatusConcurrency = 4

type findDraftsRequest struct {
	Email string `json:"email"`
}

type draftStatusResponse struct {
	domain.DraftStatus
	Display domain.StatusDisplay `json:"display"`
}

func newDraftStatusResponse(s domain.DraftStatus) draftStatusResponse {
	return draftStatusResponse{DraftStatus: s, Display: domain.DraftStatusDisplay(s.Status)}
}

// FindDrafts lists the drafts created with an email. With ?with_status=true
// each draft's onboarding status is fetched as well, keyed by draft id.
func (a *App) FindDrafts(w http.ResponseWriter, r *http.Request) {
	var req findDraftsRequest
	if err := a.decode(r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	drafts, err := a.Backend.FindDrafts(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusNotFound, map[string]string{"error": "No drafts found for this email"})
			return
		}
		if a.forwardBackendError(w, err) {
			return
		}
		a.Logger.Error().Err(err).Msg("drafts: lookup failed")
		a.json(w, http.StatusInternalServerError, map[string]string{"error": "Failed to find drafts"})
		return
	}

	raw := make([]json.RawMessage, len(drafts))
	for i, d := range drafts {
		raw[i] = d.Raw
	}
	body := map[string]any{"drafts": raw}

	if withStatus, _ := strconv.ParseBool(r.URL.Query().Get("with_status")); withStatus {
		body["statuses"] = a.draftStatuses(r, drafts)
	}
	a.json(w, http.StatusOK, body)
}

// draftStatuses fetches statuses with bounded concurrency. Drafts whose
// status cannot be read are left out.
func (a *App) draftStatuses(r *http.Request, drafts []domain.DraftSummary) map[string]draftStatusResponse {
	results := make([]*domain.DraftStatus, len(drafts))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(draftStatusConcurrency)
	for i, d := range drafts {
		if d.ID == "" {
			continue
		}
		g.Go(func() error {
			status, err := a.Backend.DraftStatus(ctx, d.ID)
			if err != nil {
				a.Logger.Warn().Err(err).Str("draft_id", d.ID).Msg("drafts: status lookup failed")
				return nil
			}
			results[i] = status
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]draftStatusResponse, len(drafts))
	for i, s := range results {
		if s != nil {
			out[drafts[i].ID] = newDraftStatusResponse(*s)
		}
	}
	return out
}

// DraftStatus reports a draft's onboarding status with its display metadata.
func (a *App) DraftStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "Draft ID is required"})
		return
	}
	status, err := a.Backend.DraftStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusNotFound, map[string]string{"error": "Draft not found"})
			return
		}
		if a.forwardBackendError(w, err) {
			return
		}
		a.Logger.Error().Err(err).Str("draft_id", id).Msg("drafts: status check failed")
		a.json(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check draft status"})
		return
	}
	a.json(w, http.StatusOK, newDraftStatusResponse(*status))
}
