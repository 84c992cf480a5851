package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	curvesFile string
	localeFlag string
	backendURL string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "causectl",
		Short: "Operator tools for the causeway donation API",
		Long: `causectl runs the donation pricing engine offline and follows cause
drafts through payment onboarding.

Available commands:
  quote - price a donation against a receipt price
  draft - inspect cause drafts on the backend`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&curvesFile, "curves", os.Getenv("CURVES_FILE"), "Curve overrides file (YAML, JSON or TOML)")
	root.PersistentFlags().StringVar(&localeFlag, "locale", "en", "Locale used to format amounts")
	root.PersistentFlags().StringVar(&backendURL, "backend", defaultBackendURL(), "Cause backend base URL")

	root.AddCommand(newQuoteCmd())
	root.AddCommand(newDraftCmd())
	return root
}

func defaultBackendURL() string {
	if v := os.Getenv("BACKEND_API_URL"); v != "" {
		return v
	}
	if v := os.Getenv("NEXT_PUBLIC_API_URL"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
