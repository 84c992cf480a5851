package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"causeway/internal/domain"
)

// The backend has shipped several naming conventions over time. Each list
// below is probed in order and the first non-empty value wins.
var (
	onboardingURLKeys = []string{"onboarding_url", "stripeUrl", "stripe_url"}
	draftIDKeys       = []string{"draft_id", "draftId"}
	causeIDKeys       = []string{"cause_id", "causeId"}
	causeSymbolKeys   = []string{"cause_symbol", "causeSymbol"}
	documentIDKeys    = []string{"_id.$oid", "id", "_id"}
)

func firstString(res gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := res.Get(p)
		if v.Type == gjson.String || v.Type == gjson.Number {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func parseCause(raw []byte) (domain.Cause, error) {
	if !gjson.ValidBytes(raw) {
		return domain.Cause{}, domain.ErrInvalidResponse
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return domain.Cause{}, domain.ErrInvalidResponse
	}
	return domain.Cause{
		ID:              firstString(doc, documentIDKeys...),
		Name:            doc.Get("name").String(),
		Organization:    doc.Get("organization").String(),
		Description:     doc.Get("description").String(),
		LongDescription: doc.Get("long_description").String(),
		TokenName:       doc.Get("token_name").String(),
		TokenSymbol:     doc.Get("token_symbol").String(),
		CreatorEmail:    doc.Get("creator_email").String(),
		PaymentLink:     doc.Get("payment_link").String(),
		Status:          doc.Get("status").String(),
		ErrorMessage:    doc.Get("error_message").String(),
		IsActive:        doc.Get("is_active").Bool(),
		CauseImageURL:   doc.Get("cause_image_url").String(),
		TokenImageURL:   doc.Get("token_image_url").String(),
		TotalRaised:     doc.Get("total_raised").Float(),
		AmountDonated:   doc.Get("amount_donated").Float(),
		TokensPurchased: doc.Get("tokens_purchased").Float(),
		CurrentPrice:    doc.Get("current_price").Float(),
		CreatedAt:       parseTime(doc.Get("created_at")),
	}, nil
}

// parseTime accepts RFC 3339 strings, epoch milliseconds and the extended
// JSON wrappers {"$date": ...} / {"$date": {"$numberLong": ...}}.
func parseTime(v gjson.Result) time.Time {
	if v.IsObject() {
		v = v.Get("$date")
		if v.IsObject() {
			v = v.Get("$numberLong")
		}
	}
	switch v.Type {
	case gjson.Number:
		return time.UnixMilli(v.Int()).UTC()
	case gjson.String:
		if t, err := time.Parse(time.RFC3339Nano, v.String()); err == nil {
			return t.UTC()
		}
		if ms := v.Int(); ms > 0 {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}

func parseCreateResult(status int, raw []byte) domain.CreateCauseResult {
	doc := gjson.ParseBytes(raw)
	result := domain.CreateCauseResult{
		Kind:    domain.CreateDirect,
		CauseID: firstString(doc, causeIDKeys...),
		Message: doc.Get("message").String(),
		Status:  status,
		Raw:     json.RawMessage(raw),
	}
	onboardingURL := firstString(doc, onboardingURLKeys...)
	draftID := firstString(doc, draftIDKeys...)
	if onboardingURL != "" && draftID != "" {
		result.Kind = domain.CreateOnboarding
		result.OnboardingURL = onboardingURL
		result.DraftID = draftID
		if result.Message == "" {
			result.Message = "Redirecting to Stripe for payment setup"
		}
	}
	return result
}

func parseDraftStatus(raw []byte) (domain.DraftStatus, error) {
	if !gjson.ValidBytes(raw) {
		return domain.DraftStatus{}, domain.ErrInvalidResponse
	}
	doc := gjson.ParseBytes(raw)
	out := domain.DraftStatus{
		Status:        doc.Get("status").String(),
		OnboardingURL: firstString(doc, onboardingURLKeys...),
		CauseID:       firstString(doc, causeIDKeys...),
		CauseSymbol:   firstString(doc, causeSymbolKeys...),
		Message:       doc.Get("message").String(),
	}
	if d := doc.Get("draft"); d.Exists() && d.Type != gjson.Null {
		out.Draft = json.RawMessage(d.Raw)
	}
	if out.Status == "" {
		return domain.DraftStatus{}, domain.ErrInvalidResponse
	}
	return out, nil
}

func parseCheckout(raw []byte) (domain.CheckoutSession, error) {
	doc := gjson.ParseBytes(raw)
	session := domain.CheckoutSession{
		CheckoutURL: firstString(doc, "checkout_url", "checkoutUrl"),
		SessionID:   firstString(doc, "session_id", "sessionId"),
	}
	if session.CheckoutURL == "" || session.SessionID == "" {
		return domain.CheckoutSession{}, domain.ErrInvalidResponse
	}
	return session, nil
}

func parseDrafts(raw []byte) ([]domain.DraftSummary, error) {
	if !gjson.ValidBytes(raw) {
		return nil, domain.ErrInvalidResponse
	}
	drafts := []domain.DraftSummary{}
	gjson.GetBytes(raw, "drafts").ForEach(func(_, item gjson.Result) bool {
		drafts = append(drafts, domain.DraftSummary{
			ID:  firstString(item, append([]string{"draft_id"}, documentIDKeys...)...),
			Raw: json.RawMessage(item.Raw),
		})
		return true
	})
	return drafts, nil
}

func parseFieldValidation(raw []byte) (domain.FieldValidation, error) {
	if !gjson.ValidBytes(raw) {
		return domain.FieldValidation{}, domain.ErrInvalidResponse
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return domain.FieldValidation{}, domain.ErrInvalidResponse
	}
	out := domain.FieldValidation{Valid: doc.Get("valid").Type != gjson.False}
	if m := doc.Get("message"); m.Type == gjson.String && m.String() != "" {
		msg := m.String()
		out.Message = &msg
	}
	return out, nil
}
