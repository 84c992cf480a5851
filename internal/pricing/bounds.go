package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const (
	DefaultMinCents int64 = 100
	DefaultMaxCents int64 = 20000
	// LegacyMaxCents is the ceiling accepted by earlier revisions of the donation form.
	LegacyMaxCents int64 = 999999
)

// Bounds is the inclusive donation range accepted before a quote or checkout.
type Bounds struct {
	MinCents int64
	MaxCents int64
}

// DefaultBounds returns the $1.00 to $200.00 range.
func DefaultBounds() Bounds {
	return Bounds{MinCents: DefaultMinCents, MaxCents: DefaultMaxCents}
}

// Validate returns an *AmountError when amountCents falls outside the bounds.
func (b Bounds) Validate(amountCents int64) error {
	if amountCents < b.MinCents {
		return &AmountError{Message: fmt.Sprintf("Minimum donation amount is $%s", Dollars(b.MinCents))}
	}
	if amountCents > b.MaxCents {
		return &AmountError{Message: fmt.Sprintf("Maximum donation amount is $%s", Dollars(b.MaxCents))}
	}
	return nil
}

// AmountError carries the donor-facing reason an amount was rejected.
// It matches ErrInvalidAmount with errors.Is.
type AmountError struct {
	Message string
}

func (e *AmountError) Error() string { return e.Message }

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// Dollars renders a cent amount as an English dollar string with thousands
// separators, e.g. "9,999.99".
func Dollars(cents int64) string {
	return fixed(language.English, decimal.New(cents, -2), 2)
}
