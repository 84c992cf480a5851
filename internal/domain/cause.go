package domain

import (
	"encoding/json"
	"time"
)

// Cause is a fundraising campaign with its own receipt token, as served by the
// backend. Only the fields this service reads are modeled.
type Cause struct {
	ID              string
	Name            string
	Organization    string
	Description     string
	LongDescription string
	TokenName       string
	TokenSymbol     string
	CreatorEmail    string
	PaymentLink     string
	Status          string
	ErrorMessage    string
	IsActive        bool
	CauseImageURL   string
	TokenImageURL   string
	TotalRaised     float64
	AmountDonated   float64
	TokensPurchased float64
	// CurrentPrice is the dollar price of one receipt before the next donation.
	CurrentPrice float64
	CreatedAt    time.Time
}

// DonationsEnabled reports whether the cause accepts checkouts right now.
func (c Cause) DonationsEnabled() bool {
	return DonationEnabled(c.Status, c.IsActive)
}

// CreateKind tags the two shapes the backend returns on cause creation.
type CreateKind string

const (
	// CreateOnboarding means a draft was stored and the creator must finish
	// payment-provider onboarding at OnboardingURL.
	CreateOnboarding CreateKind = "onboarding"
	// CreateDirect means the cause was created without onboarding; the raw
	// backend body is passed through.
	CreateDirect CreateKind = "direct"
)

// CreateCauseResult is the normalized backend answer to a create request.
type CreateCauseResult struct {
	Kind          CreateKind
	DraftID       string
	OnboardingURL string
	CauseID       string
	Message       string
	Status        int
	Raw           json.RawMessage
}

// DraftStatus mirrors the onboarding state the backend reports for a draft.
type DraftStatus struct {
	Status        string          `json:"status"`
	Draft         json.RawMessage `json:"draft,omitempty"`
	OnboardingURL string          `json:"onboarding_url,omitempty"`
	CauseID       string          `json:"cause_id,omitempty"`
	CauseSymbol   string          `json:"cause_symbol,omitempty"`
	Message       string          `json:"message,omitempty"`
}

// Pending reports whether the backend is still working on the draft.
func (d DraftStatus) Pending() bool {
	return d.Status == DraftPending
}

// DraftSummary is one entry of a find-drafts lookup.
type DraftSummary struct {
	ID  string
	Raw json.RawMessage
}

// CheckoutSession is the payment checkout the donor is redirected to.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// FieldValidation is the backend verdict on a uniqueness check.
type FieldValidation struct {
	Valid   bool    `json:"valid"`
	Message *string `json:"message"`
}
