package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display is the donor-facing rendering of a Quote. Receipt counts carry a "~"
// prefix because the backend decides the final numbers at settlement.
type Display struct {
	Estimate          bool   `json:"estimate"`
	PlatformCashFee   string `json:"platform_cash_fee"`
	AmountForReceipts string `json:"amount_for_receipts"`
	AveragePrice      string `json:"average_price"`
	TotalReceipts     string `json:"total_receipts"`
	UserReceipts      string `json:"user_receipts"`
	PlatformReceipts  string `json:"platform_receipts"`
}

// Format renders q using the number conventions of tag.
func Format(q Quote, tag language.Tag) Display {
	return Display{
		Estimate:          true,
		PlatformCashFee:   money(tag, decimal.NewFromFloat(q.PlatformCashFee)),
		AmountForReceipts: money(tag, decimal.NewFromFloat(q.AmountForReceipts)),
		AveragePrice:      "$" + fixed(tag, decimal.NewFromFloat(q.AveragePrice), 6),
		TotalReceipts:     "~" + fixed(tag, decimal.NewFromFloat(q.TotalReceipts), 2),
		UserReceipts:      "~" + fixed(tag, decimal.NewFromFloat(q.UserReceipts), 2),
		PlatformReceipts:  "~" + fixed(tag, decimal.NewFromFloat(q.PlatformReceipts), 2),
	}
}

func money(tag language.Tag, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + fixed(tag, d.Neg(), 2)
	}
	return "$" + fixed(tag, d, 2)
}

// fixed rounds half away from zero in decimal space first so values such as
// 0.125 are not pulled down by their binary representation.
func fixed(tag language.Tag, d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(rounded.InexactFloat64(), number.Scale(int(places))))
}
