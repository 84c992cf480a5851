// Package onboarding follows a cause draft while the backend finishes
// payment-provider onboarding for it.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"causeway/internal/domain"
	"causeway/internal/infra"
)

const (
	DefaultInterval = 3 * time.Second
	DefaultMaxPolls = 40
)

// ErrStillPending is returned when the draft is still pending after the last poll.
var ErrStillPending = errors.New("onboarding: draft still pending")

// StatusSource reports the current status of a draft.
type StatusSource interface {
	DraftStatus(ctx context.Context, draftID string) (*domain.DraftStatus, error)
}

// Options configures a Watcher. Zero values take the defaults.
type Options struct {
	Interval time.Duration
	MaxPolls int
	Logger   *infra.Logger
}

// Watcher polls a draft until it leaves the pending state.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	maxPolls int
	logger   *infra.Logger
}

// NewWatcher builds a Watcher backed by source.
func NewWatcher(source StatusSource, opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxPolls := opts.MaxPolls
	if maxPolls <= 0 {
		maxPolls = DefaultMaxPolls
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Watcher{source: source, interval: interval, maxPolls: maxPolls, logger: logger}
}

// Watch polls draftID and calls onUpdate with every status it receives. It
// returns the first non-pending status. A missing draft is reported as a
// not_found status. Fetch errors other than 404 are logged and count as a poll.
func (w *Watcher) Watch(ctx context.Context, draftID string, onUpdate func(domain.DraftStatus)) (domain.DraftStatus, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return domain.DraftStatus{}, fmt.Errorf("%w: draft id is required", domain.ErrValidation)
	}
	if onUpdate == nil {
		onUpdate = func(domain.DraftStatus) {}
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	var last domain.DraftStatus
	for poll := 1; poll <= w.maxPolls; poll++ {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-timer.C:
		}

		status, err := w.source.DraftStatus(ctx, draftID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			last = domain.DraftStatus{Status: domain.DraftNotFound, Message: "Draft not found"}
			onUpdate(last)
			return last, nil
		case err != nil:
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			w.logger.Warn().Err(err).Str("draft_id", draftID).Int("poll", poll).Msg("onboarding: status check failed")
		default:
			last = *status
			onUpdate(last)
			if !last.Pending() {
				return last, nil
			}
		}

		timer.Reset(w.interval)
	}

	w.logger.Info().Str("draft_id", draftID).Int("polls", w.maxPolls).Msg("onboarding: gave up waiting")
	return last, ErrStillPending
}
