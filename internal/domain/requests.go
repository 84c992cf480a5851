package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"causeway/internal/pricing"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minTokenSymbolLen = 2
	maxTokenSymbolLen = 5
	minWalletLen      = 10
)

// CreateCauseRequest is the payload for registering a new cause.
type CreateCauseRequest struct {
	Name            string `json:"name"`
	Organization    string `json:"organization"`
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
	CreatorEmail    string `json:"creator_email"`
	TokenSymbol     string `json:"token_symbol"`
	TokenName       string `json:"token_name"`
	CauseImageURL   string `json:"cause_image_url,omitempty"`
	TokenImageURL   string `json:"token_image_url,omitempty"`
}

// Validate returns every problem with the request, in field order. An empty
// result means the request can be forwarded.
func (r CreateCauseRequest) Validate() []string {
	var problems []string
	required := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"organization", r.Organization},
		{"description", r.Description},
		{"long_description", r.LongDescription},
		{"creator_email", r.CreatorEmail},
		{"token_symbol", r.TokenSymbol},
		{"token_name", r.TokenName},
	}
	for _, f := range required {
		if f.value == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if r.CreatorEmail != "" && !emailPattern.MatchString(r.CreatorEmail) {
		problems = append(problems, "Invalid email format")
	}
	if n := len(r.TokenSymbol); r.TokenSymbol != "" && (n < minTokenSymbolLen || n > maxTokenSymbolLen) {
		problems = append(problems, fmt.Sprintf("Token abbreviation must be between %d and %d characters", minTokenSymbolLen, maxTokenSymbolLen))
	}
	return problems
}

// DonateRequest asks the backend for a checkout session.
type DonateRequest struct {
	CauseID           string `json:"cause_id"`
	AmountCents       int64  `json:"amount_cents"`
	UserWalletAddress string `json:"user_wallet_address"`
}

// ValidationError is a client-facing rejection. Code is a short machine tag.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks required fields, the amount bounds and the wallet shape.
func (r DonateRequest) Validate(bounds pricing.Bounds) error {
	if r.CauseID == "" || r.AmountCents == 0 || r.UserWalletAddress == "" {
		return &ValidationError{
			Code:    "Missing required fields",
			Message: "cause_id, amount_cents, and user_wallet_address are required",
		}
	}
	if err := bounds.Validate(r.AmountCents); err != nil {
		var amountErr *pricing.AmountError
		if errors.As(err, &amountErr) {
			return &ValidationError{Code: "Invalid amount", Message: amountErr.Message}
		}
		return err
	}
	if len(strings.TrimSpace(r.UserWalletAddress)) < minWalletLen {
		return &ValidationError{Code: "Invalid wallet address", Message: "Please provide a valid wallet address"}
	}
	return nil
}

// MaskedWallet shortens a wallet address for logs.
func (r DonateRequest) MaskedWallet() string {
	if len(r.UserWalletAddress) <= minWalletLen {
		return r.UserWalletAddress
	}
	return r.UserWalletAddress[:minWalletLen] + "..."
}

// ValidatedField names a cause field the backend can check for uniqueness.
type ValidatedField string

const (
	FieldName        ValidatedField = "name"
	FieldTokenName   ValidatedField = "token-name"
	FieldTokenSymbol ValidatedField = "token-symbol"
)

// ParseValidatedField maps a route segment to a ValidatedField.
func ParseValidatedField(s string) (ValidatedField, bool) {
	switch f := ValidatedField(s); f {
	case FieldName, FieldTokenName, FieldTokenSymbol:
		return f, true
	}
	return "", false
}

// Label is the human name used in messages, e.g. "Token name".
func (f ValidatedField) Label() string {
	switch f {
	case FieldTokenName:
		return "Token name"
	case FieldTokenSymbol:
		return "Token symbol"
	default:
		return "Name"
	}
}
