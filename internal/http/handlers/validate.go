package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"causeway/internal/domain"
	"causeway/internal/providers/backend"
)

type validateRequest struct {
	Value string `json:"value"`
}

// ValidateField checks a cause name, token name or token symbol for
// uniqueness. Backend rejections and unreadable answers fail open.
func (a *App) ValidateField(w http.ResponseWriter, r *http.Request) {
	field, ok := domain.ParseValidatedField(chi.URLParam(r, "field"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown field")
		return
	}
	var req validateRequest
	if err := a.decode(r, &req); err != nil || req.Value == "" {
		a.json(w, http.StatusBadRequest, map[string]any{"valid": false, "message": field.Label() + " is required"})
		return
	}

	verdict, err := a.Backend.ValidateField(r.Context(), field, req.Value)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) || errors.Is(err, domain.ErrInvalidResponse) {
			a.Logger.Warn().Err(err).Str("field", string(field)).Msg("validate: backend answer ignored")
			a.json(w, http.StatusOK, domain.FieldValidation{Valid: true})
			return
		}
		a.Logger.Error().Err(err).Str("field", string(field)).Msg("validate: backend unreachable")
		a.json(w, http.StatusInternalServerError, map[string]any{
			"valid":   false,
			"message": "Failed to validate " + strings.ToLower(field.Label()),
		})
		return
	}
	a.json(w, http.StatusOK, verdict)
}
