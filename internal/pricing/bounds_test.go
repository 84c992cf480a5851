package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestBoundsValidate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		amount  int64
		wantErr string
	}{
		{name: "below min", bounds: DefaultBounds(), amount: 99, wantErr: "Minimum donation amount is $1.00"},
		{name: "at min", bounds: DefaultBounds(), amount: 100},
		{name: "at max", bounds: DefaultBounds(), amount: 20000},
		{name: "above max", bounds: DefaultBounds(), amount: 20001, wantErr: "Maximum donation amount is $200.00"},
		{name: "zero", bounds: DefaultBounds(), amount: 0, wantErr: "Minimum donation amount is $1.00"},
		{name: "legacy max accepted", bounds: Bounds{MinCents: 100, MaxCents: LegacyMaxCents}, amount: 999999},
		{name: "legacy max exceeded", bounds: Bounds{MinCents: 100, MaxCents: LegacyMaxCents}, amount: 1000000, wantErr: "Maximum donation amount is $9,999.99"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bounds.Validate(tc.amount)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidAmount))
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestDollarsHasNoCurrencySign(t *testing.T) {
	assert.Equal(t, "1.00", Dollars(100))
	assert.Equal(t, "200.00", Dollars(20000))
	assert.Equal(t, "9,999.99", Dollars(LegacyMaxCents))
}

func TestFormatLabelsEstimates(t *testing.T) {
	q, err := DefaultCurve().Quote(10000, 0.01)
	assert.NoError(t, err)

	d := Format(q, language.English)
	assert.True(t, d.Estimate)
	assert.Equal(t, "$5.00", d.PlatformCashFee)
	assert.Equal(t, "$95.00", d.AmountForReceipts)
	assert.Equal(t, "$0.010475", d.AveragePrice)
	assert.Equal(t, "~9,069.21", d.TotalReceipts)
	assert.Equal(t, "~8,592.17", d.UserReceipts)
	assert.Equal(t, "~477.04", d.PlatformReceipts)
}

func TestFormatSkippedQuote(t *testing.T) {
	q, err := DefaultCurve().Quote(0, 0.01)
	assert.NoError(t, err)

	d := Format(q, language.English)
	assert.Equal(t, "$0.00", d.PlatformCashFee)
	assert.Equal(t, "~0.00", d.UserReceipts)
}
