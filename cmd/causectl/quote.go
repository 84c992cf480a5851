package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"causeway/internal/pricing"
)

type quoteOptions struct {
	amountCents int64
	price       float64
	symbol      string
	asJSON      bool
	maxCents    int64
}

func newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a donation on the bonding curve",
		Example: `  causectl quote --amount-cents 10000 --price 0.01
  causectl quote --amount-cents 2500 --price 0.4 --symbol SAVE --curves curves.yaml --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, opts)
		},
	}
	cmd.Flags().Int64Var(&opts.amountCents, "amount-cents", 0, "Donation amount in cents")
	cmd.Flags().Float64Var(&opts.price, "price", 0, "Current receipt price in dollars")
	cmd.Flags().StringVar(&opts.symbol, "symbol", "", "Cause token symbol, selects a curve override")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the raw quote as JSON")
	cmd.Flags().Int64Var(&opts.maxCents, "max-cents", pricing.DefaultMaxCents, "Largest accepted donation in cents")
	_ = cmd.MarkFlagRequired("amount-cents")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func runQuote(cmd *cobra.Command, opts *quoteOptions) error {
	curves, err := pricing.LoadCurveSet(curvesFile)
	if err != nil {
		return err
	}
	tag, err := language.Parse(localeFlag)
	if err != nil {
		return fmt.Errorf("invalid --locale %q: %w", localeFlag, err)
	}

	curve := curves.For(opts.symbol)
	q, err := curve.Quote(opts.amountCents, opts.price)
	if err != nil {
		return err
	}

	bounds := pricing.Bounds{MinCents: pricing.DefaultMinCents, MaxCents: opts.maxCents}
	boundsErr := bounds.Validate(opts.amountCents)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"curve":      curve,
			"quote":      q,
			"display":    pricing.Format(q, tag),
			"can_submit": boundsErr == nil && !q.Skipped,
		})
	}

	if q.Skipped {
		fmt.Fprintln(out, "Nothing to quote for a zero amount.")
		return nil
	}
	d := pricing.Format(q, tag)
	fmt.Fprintf(out, "Donation:             $%s\n", pricing.Dollars(opts.amountCents))
	fmt.Fprintf(out, "Platform fee:         %s\n", d.PlatformCashFee)
	fmt.Fprintf(out, "Toward receipts:      %s\n", d.AmountForReceipts)
	fmt.Fprintf(out, "Average price:        %s\n", d.AveragePrice)
	fmt.Fprintf(out, "Total receipts:       %s\n", d.TotalReceipts)
	fmt.Fprintf(out, "You receive:          %s\n", d.UserReceipts)
	fmt.Fprintf(out, "Platform receipts:    %s\n", d.PlatformReceipts)

	var amountErr *pricing.AmountError
	if errors.As(boundsErr, &amountErr) {
		fmt.Fprintf(out, "Warning: %s\n", amountErr.Message)
	}
	return nil
}
