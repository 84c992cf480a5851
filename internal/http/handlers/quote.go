package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"causeway/internal/domain"
	"causeway/internal/middleware"
	"causeway/internal/pricing"
)

type quoteRequest struct {
	AmountCents  int64   `json:"amount_cents"`
	CurrentPrice float64 `json:"current_price"`
	TokenSymbol  string  `json:"token_symbol"`
}

type quoteResponse struct {
	TokenSymbol string           `json:"token_symbol,omitempty"`
	CanSubmit   bool             `json:"can_submit"`
	Error       string           `json:"error,omitempty"`
	Message     string           `json:"message,omitempty"`
	Locale      string           `json:"locale"`
	Curve       *pricing.Curve   `json:"curve,omitempty"`
	Quote       *pricing.Quote   `json:"quote,omitempty"`
	Display     *pricing.Display `json:"display,omitempty"`
}

// Quote prices a donation against a caller-supplied receipt price.
func (a *App) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.respondQuote(w, r, strings.TrimSpace(req.TokenSymbol), req.AmountCents, req.CurrentPrice)
}

// CauseQuote prices a donation against a cause's current receipt price.
func (a *App) CauseQuote(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	amountCents, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("amount_cents")), 10, 64)
	if err != nil {
		a.json(w, http.StatusBadRequest, quoteResponse{
			TokenSymbol: id,
			Error:       "Invalid amount",
			Message:     "amount_cents must be a whole number of cents",
			Locale:      middleware.LocaleFromContext(r.Context()).String(),
		})
		return
	}

	cause, _, err := a.Backend.GetCause(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Cause not found")
			return
		}
		a.Logger.Error().Err(err).Str("cause", id).Msg("quote: fetch cause failed")
		a.error(w, http.StatusInternalServerError, "internal_server_error", "Failed to fetch cause details")
		return
	}
	if !cause.DonationsEnabled() {
		a.json(w, http.StatusOK, quoteResponse{
			TokenSymbol: cause.TokenSymbol,
			Message:     "This cause is not accepting donations yet",
			Locale:      middleware.LocaleFromContext(r.Context()).String(),
		})
		return
	}
	symbol := cause.TokenSymbol
	if symbol == "" {
		symbol = id
	}
	a.respondQuote(w, r, symbol, amountCents, cause.CurrentPrice)
}

// respondQuote runs the engine and writes the advisory breakdown. A bad price
// is an upstream data problem: it is logged and the form is told not to submit.
func (a *App) respondQuote(w http.ResponseWriter, r *http.Request, symbol string, amountCents int64, price float64) {
	locale := middleware.LocaleFromContext(r.Context())
	curve := a.Curves.For(symbol)
	resp := quoteResponse{TokenSymbol: symbol, Locale: locale.String(), Curve: &curve}

	q, err := curve.Quote(amountCents, price)
	switch {
	case errors.Is(err, pricing.ErrInvalidPrice):
		a.Logger.Error().Err(err).Str("token_symbol", symbol).Float64("current_price", price).Msg("quote: invalid receipt price")
		resp.Curve = nil
		a.json(w, http.StatusOK, resp)
		return
	case err != nil:
		resp.Error = "Invalid amount"
		resp.Message = "Donation amount cannot be negative"
		a.json(w, http.StatusBadRequest, resp)
		return
	}

	resp.Quote = &q
	if q.Skipped {
		a.json(w, http.StatusOK, resp)
		return
	}
	display := pricing.Format(q, locale)
	resp.Display = &display

	if err := a.Bounds.Validate(amountCents); err != nil {
		var amountErr *pricing.AmountError
		if errors.As(err, &amountErr) {
			resp.Error = "Invalid amount"
			resp.Message = amountErr.Message
		}
		a.json(w, http.StatusBadRequest, resp)
		return
	}
	resp.CanSubmit = true
	a.json(w, http.StatusOK, resp)
}
