// Package pricing estimates how many receipts a donation mints on a cause's
// linear bonding curve and how the result is split between donor and platform.
//
// Every figure produced here is advisory. The external backend settles the
// purchase when the checkout session completes and its receipt counts win.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount reports a negative amount or one outside the configured bounds.
	ErrInvalidAmount = errors.New("invalid donation amount")
	// ErrInvalidPrice reports a missing, non-positive or non-finite receipt price, or one
	// so small that the receipt estimate overflows.
	ErrInvalidPrice = errors.New("invalid receipt price")
	// ErrInvalidCurve reports curve parameters that cannot describe a valid split.
	ErrInvalidCurve = errors.New("invalid curve parameters")
)

const (
	DefaultCashFeeRate          = 0.05
	DefaultSlope                = 0.0000001
	DefaultPlatformReceiptShare = 0.0526
)

// Curve holds the immutable parameters of a linear bonding curve.
type Curve struct {
	// CashFeeRate is the share of the gross donation kept as a cash fee.
	CashFeeRate float64 `mapstructure:"cash_fee_rate" json:"cash_fee_rate"`
	// Slope is the price increase per receipt minted.
	Slope float64 `mapstructure:"slope" json:"slope"`
	// PlatformReceiptShare is the share of minted receipts retained by the platform.
	PlatformReceiptShare float64 `mapstructure:"platform_receipt_share" json:"platform_receipt_share"`
}

// DefaultCurve returns the platform-wide curve parameters.
func DefaultCurve() Curve {
	return Curve{
		CashFeeRate:          DefaultCashFeeRate,
		Slope:                DefaultSlope,
		PlatformReceiptShare: DefaultPlatformReceiptShare,
	}
}

// DonorReceiptShare is the complement of PlatformReceiptShare.
func (c Curve) DonorReceiptShare() float64 {
	return 1 - c.PlatformReceiptShare
}

// Validate checks that rates sit in [0, 1) and the slope is finite and non-negative.
func (c Curve) Validate() error {
	if !isRate(c.CashFeeRate) {
		return fmt.Errorf("%w: cash_fee_rate %v", ErrInvalidCurve, c.CashFeeRate)
	}
	if !isRate(c.PlatformReceiptShare) {
		return fmt.Errorf("%w: platform_receipt_share %v", ErrInvalidCurve, c.PlatformReceiptShare)
	}
	if math.IsNaN(c.Slope) || math.IsInf(c.Slope, 0) || c.Slope < 0 {
		return fmt.Errorf("%w: slope %v", ErrInvalidCurve, c.Slope)
	}
	return nil
}

func isRate(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < 1
}

// Quote is the fee breakdown and receipt allocation for one donation.
type Quote struct {
	AmountCents  int64   `json:"amount_cents"`
	CurrentPrice float64 `json:"current_price"`

	PlatformCashFee   float64 `json:"platform_cash_fee"`
	AmountForReceipts float64 `json:"amount_for_receipts"`
	EstimatedReceipts float64 `json:"estimated_receipts"`
	EndPrice          float64 `json:"end_price"`
	AveragePrice      float64 `json:"average_price"`
	TotalReceipts     float64 `json:"total_receipts"`
	UserReceipts      float64 `json:"user_receipts"`
	PlatformReceipts  float64 `json:"platform_receipts"`

	// Skipped is set for a zero amount: every derived value is zero.
	Skipped bool `json:"skipped"`
}

// Quote prices a donation of amountCents against currentPrice dollars per receipt.
//
// The end price comes from a first-pass receipt estimate at the current price and
// the mint count is then refined once against the mean of start and end price.
// It is a single iteration, not a fixed point or the exact area under the curve.
func (c Curve) Quote(amountCents int64, currentPrice float64) (Quote, error) {
	if math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) || currentPrice <= 0 {
		return Quote{}, fmt.Errorf("%w: %v", ErrInvalidPrice, currentPrice)
	}
	if amountCents < 0 {
		return Quote{}, fmt.Errorf("%w: %d cents", ErrInvalidAmount, amountCents)
	}

	q := Quote{AmountCents: amountCents, CurrentPrice: currentPrice}
	if amountCents == 0 {
		q.Skipped = true
		return q, nil
	}

	amount := float64(amountCents)
	q.AmountForReceipts = amount * (1 - c.CashFeeRate) / 100
	q.EstimatedReceipts = q.AmountForReceipts / currentPrice
	q.EndPrice = currentPrice + c.Slope*q.EstimatedReceipts
	q.AveragePrice = (currentPrice + q.EndPrice) / 2
	q.TotalReceipts = q.AmountForReceipts / q.AveragePrice
	q.UserReceipts = q.TotalReceipts * (1 - c.PlatformReceiptShare)
	q.PlatformReceipts = q.TotalReceipts * c.PlatformReceiptShare
	q.PlatformCashFee = amount * c.CashFeeRate / 100
	if !finite(q.EstimatedReceipts, q.EndPrice, q.AveragePrice, q.TotalReceipts) || q.TotalReceipts <= 0 {
		return Quote{}, fmt.Errorf("%w: %v overflows the curve for %d cents", ErrInvalidPrice, currentPrice, amountCents)
	}
	return q, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
