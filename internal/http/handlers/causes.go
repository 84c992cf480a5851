package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"causeway/internal/domain"
)

// ListCauses relays the backend cause list. With ?audience=public or
// ?audience=creator, items are filtered through the cause status table.
func (a *App) ListCauses(w http.ResponseWriter, r *http.Request) {
	raw, err := a.Backend.ListCauses(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("causes: list failed")
		a.error(w, http.StatusInternalServerError, "internal_server_error", "Failed to fetch causes")
		return
	}

	audience := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("audience")))
	if audience != "public" && audience != "creator" {
		a.json(w, http.StatusOK, raw)
		return
	}
	a.json(w, http.StatusOK, filterCauses(raw, audience == "creator"))
}

// filterCauses keeps the causes visible to the viewer. It accepts either a bare
// array or an object with a "causes" array, and preserves that shape.
func filterCauses(raw json.RawMessage, isCreator bool) json.RawMessage {
	doc := gjson.ParseBytes(raw)
	list := doc
	if doc.IsObject() {
		list = doc.Get("causes")
	}
	if !list.IsArray() {
		return raw
	}
	kept := []json.RawMessage{}
	list.ForEach(func(_, item gjson.Result) bool {
		if domain.ShouldShowCause(item.Get("status").String(), isCreator) {
			kept = append(kept, json.RawMessage(item.Raw))
		}
		return true
	})
	if !doc.IsObject() {
		out, _ := json.Marshal(kept)
		return out
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	obj["causes"], _ = json.Marshal(kept)
	out, _ := json.Marshal(obj)
	return out
}

// GetCause relays one cause looked up by token symbol.
func (a *App) GetCause(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "ID parameter is required")
		return
	}
	_, raw, err := a.Backend.GetCause(r.Context(), id)
	if err != nil {
		a.Logger.Error().Err(err).Str("cause", id).Msg("causes: fetch failed")
		a.error(w, http.StatusInternalServerError, "internal_server_error", "Failed to fetch cause details")
		return
	}
	a.json(w, http.StatusOK, raw)
}

// CreateCause validates a new cause and forwards it to the backend.
func (a *App) CreateCause(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCauseRequest
	if err := a.decode(r, &req); err != nil {
		a.json(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid payload"})
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		a.json(w, http.StatusBadRequest, map[string]any{"success": false, "message": strings.Join(problems, ", ")})
		return
	}

	result, err := a.Backend.CreateCause(r.Context(), req)
	if err != nil {
		if a.forwardBackendError(w, err) {
			return
		}
		a.Logger.Error().Err(err).Str("token_symbol", req.TokenSymbol).Msg("causes: create failed")
		a.error(w, http.StatusInternalServerError, "internal_server_error", "Failed to create cause")
		return
	}

	if result.Kind == domain.CreateDirect {
		a.json(w, result.Status, result.Raw)
		return
	}
	body := map[string]any{
		"onboarding_url": result.OnboardingURL,
		"draft_id":       result.DraftID,
		"stripe_url":     result.OnboardingURL,
		"stripeUrl":      result.OnboardingURL,
		"draftId":        result.DraftID,
		"message":        result.Message,
	}
	if result.CauseID != "" {
		body["cause_id"] = result.CauseID
	}
	a.json(w, http.StatusOK, body)
}

// WalletUser relays the account linked to a wallet address.
func (a *App) WalletUser(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(chi.URLParam(r, "address"))
	if address == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Wallet address is required")
		return
	}
	raw, err := a.Backend.WalletUser(r.Context(), address)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("wallet: lookup failed")
		a.error(w, http.StatusInternalServerError, "internal_server_error", "Failed to validate wallet address")
		return
	}
	a.json(w, http.StatusOK, raw)
}
