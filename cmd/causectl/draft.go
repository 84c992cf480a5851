package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"causeway/internal/domain"
	"causeway/internal/infra"
	"causeway/internal/onboarding"
	"causeway/internal/providers/backend"
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect cause drafts",
	}
	cmd.AddCommand(newDraftWatchCmd())
	return cmd
}

func newDraftWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		maxPolls int
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "watch <draft-id>",
		Short: "Poll a draft until onboarding finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := infra.Logger(zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger())

			client, err := backend.NewClient(backend.Options{BaseURL: backendURL, Logger: &logger})
			if err != nil {
				return err
			}
			watcher := onboarding.NewWatcher(client, onboarding.Options{
				Interval: interval,
				MaxPolls: maxPolls,
				Logger:   &logger,
			})
			return watchDraft(ctx, cmd, watcher, args[0])
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", onboarding.DefaultInterval, "Delay between status checks")
	cmd.Flags().IntVar(&maxPolls, "max-polls", onboarding.DefaultMaxPolls, "Give up after this many checks")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log backend requests")
	return cmd
}

func watchDraft(ctx context.Context, cmd *cobra.Command, watcher *onboarding.Watcher, draftID string) error {
	out := cmd.OutOrStdout()
	final, err := watcher.Watch(ctx, draftID, func(s domain.DraftStatus) {
		d := domain.DraftStatusDisplay(s.Status)
		line := fmt.Sprintf("%s  %-14s %s", time.Now().Format(time.TimeOnly), d.Label, d.Description)
		if s.Message != "" {
			line += " (" + s.Message + ")"
		}
		fmt.Fprintln(out, line)
	})
	switch {
	case errors.Is(err, onboarding.ErrStillPending):
		fmt.Fprintln(out, "Draft is still processing; try again later.")
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		return err
	}

	switch final.Status {
	case domain.DraftComplete:
		fmt.Fprintf(out, "Cause %s is live.\n", final.CauseSymbol)
	case domain.DraftIncomplete:
		if final.OnboardingURL != "" {
			fmt.Fprintf(out, "Continue onboarding at %s\n", final.OnboardingURL)
		}
	case domain.DraftNotFound:
		return fmt.Errorf("draft %s: %w", draftID, domain.ErrNotFound)
	}
	return nil
}
