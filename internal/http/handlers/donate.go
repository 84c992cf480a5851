package handlers

import (
	"errors"
	"net/http"

	"causeway/internal/domain"
)

// Donate validates a donation and asks the backend for a checkout session.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	var req domain.DonateRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "Missing required fields", "cause_id, amount_cents, and user_wallet_address are required")
		return
	}
	if err := req.Validate(a.Bounds); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			a.error(w, http.StatusBadRequest, verr.Code, verr.Message)
			return
		}
		a.error(w, http.StatusBadRequest, "Invalid amount", err.Error())
		return
	}

	session, err := a.Backend.Donate(r.Context(), req)
	if err != nil {
		if a.forwardBackendError(w, err) {
			return
		}
		if errors.Is(err, domain.ErrInvalidResponse) {
			a.error(w, http.StatusInternalServerError, "Invalid response", "Backend returned invalid checkout session data")
			return
		}
		a.Logger.Error().Err(err).Str("cause_id", req.CauseID).Msg("donate: checkout session failed")
		a.error(w, http.StatusInternalServerError, "Internal server error", "Failed to create donation session. Please try again.")
		return
	}
	a.json(w, http.StatusOK, session)
}
