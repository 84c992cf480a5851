package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"causeway/internal/domain"
	"causeway/internal/infra"
)

const defaultBaseURL = "http://127.0.0.1:8080"

// Options configures the cause backend client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	// MaxTries bounds attempts for idempotent GETs. POSTs are sent once.
	MaxTries uint
	// RetryInterval is the first backoff delay between GET attempts.
	RetryInterval time.Duration
}

// Client performs HTTP calls against the external cause backend.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	logger        *infra.Logger
	maxTries      uint
	retryInterval time.Duration
}

// APIError is a non-2xx answer from the backend. Body is kept verbatim so
// callers can forward it to their own clients.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	msg := gjson.GetBytes(e.Body, "message").String()
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, msg)
}

// Is lets errors.Is match domain.ErrNotFound on 404 and domain.ErrBackend always.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrBackend:
		return true
	}
	return false
}

// NewClient constructs a client with defaults for unset options.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid base url %q: %w", baseURL, err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxTries := opts.MaxTries
	if maxTries == 0 {
		maxTries = 3
	}
	retryInterval := opts.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 250 * time.Millisecond
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    httpClient,
		logger:        logger,
		maxTries:      maxTries,
		retryInterval: retryInterval,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListCauses returns the backend's cause list verbatim.
func (c *Client) ListCauses(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.getJSON(ctx, "/causes")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// GetCause looks a cause up by token symbol and returns both the parsed record
// and the original document.
func (c *Client) GetCause(ctx context.Context, symbol string) (*domain.Cause, json.RawMessage, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, nil, errors.New("backend: cause symbol is required")
	}
	raw, err := c.getJSON(ctx, "/causes/by-symbol/"+url.PathEscape(symbol))
	if err != nil {
		return nil, nil, err
	}
	cause, err := parseCause(raw)
	if err != nil {
		return nil, nil, err
	}
	return &cause, json.RawMessage(raw), nil
}

// CreateCause registers a cause. Onboarding and direct creation answers are
// folded into one CreateCauseResult.
func (c *Client) CreateCause(ctx context.Context, req domain.CreateCauseRequest) (*domain.CreateCauseResult, error) {
	status, raw, err := c.postJSON(ctx, "/causes", req)
	if err != nil {
		return nil, err
	}
	result := parseCreateResult(status, raw)
	c.logger.Debug().
		Str("kind", string(result.Kind)).
		Str("draft_id", result.DraftID).
		Int("status", status).
		Msg("backend: cause created")
	return &result, nil
}

// Donate asks the backend for a checkout session. It is never retried.
func (c *Client) Donate(ctx context.Context, req domain.DonateRequest) (*domain.CheckoutSession, error) {
	c.logger.Info().
		Str("cause_id", req.CauseID).
		Int64("amount_cents", req.AmountCents).
		Str("wallet", req.MaskedWallet()).
		Msg("backend: creating donation checkout session")
	_, raw, err := c.postJSON(ctx, "/causes/donate", req)
	if err != nil {
		return nil, err
	}
	session, err := parseCheckout(raw)
	if err != nil {
		c.logger.Error().RawJSON("body", safeJSON(raw)).Msg("backend: checkout session missing fields")
		return nil, err
	}
	return &session, nil
}

// FindDrafts lists drafts created with email, most recent first.
func (c *Client) FindDrafts(ctx context.Context, email string) ([]domain.DraftSummary, error) {
	_, raw, err := c.postJSON(ctx, "/causes/find-drafts", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return parseDrafts(raw)
}

// DraftStatus returns the onboarding status of a draft.
func (c *Client) DraftStatus(ctx context.Context, draftID string) (*domain.DraftStatus, error) {
	raw, err := c.getJSON(ctx, "/causes/drafts/"+url.PathEscape(draftID)+"/status")
	if err != nil {
		return nil, err
	}
	status, err := parseDraftStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ValidateField asks the backend whether value is available for field.
func (c *Client) ValidateField(ctx context.Context, field domain.ValidatedField, value string) (*domain.FieldValidation, error) {
	_, raw, err := c.postJSON(ctx, "/causes/validate/"+string(field), map[string]string{"value": value})
	if err != nil {
		return nil, err
	}
	verdict, err := parseFieldValidation(raw)
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

// WalletUser resolves the account behind a wallet address.
func (c *Client) WalletUser(ctx context.Context, address string) (json.RawMessage, error) {
	raw, err := c.getJSON(ctx, "/wallet/"+url.PathEscape(address)+"/user")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxInterval = c.retryInterval * 8

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("path", path).Dur("backoff", wait).Msg("backend: retrying request")
	}

	op := func() ([]byte, error) {
		status, raw, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if status >= 300 {
			apiErr := &APIError{Status: status, Body: raw}
			if status >= 500 {
				return nil, apiErr
			}
			return nil, backoff.Permanent(apiErr)
		}
		if !gjson.ValidBytes(raw) {
			return nil, backoff.Permanent(fmt.Errorf("backend: GET %s: %w", path, domain.ErrInvalidResponse))
		}
		return raw, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: encode request: %w", err)
	}
	status, raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return 0, nil, err
	}
	if status >= 300 {
		return status, nil, &APIError{Status: status, Body: raw}
	}
	if !gjson.ValidBytes(raw) {
		return status, nil, fmt.Errorf("backend: POST %s: %w", path, domain.ErrInvalidResponse)
	}
	return status, raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("backend: read response: %w", err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend: request finished")
	return resp.StatusCode, raw, nil
}

func safeJSON(raw []byte) []byte {
	if gjson.ValidBytes(raw) {
		return raw
	}
	b, _ := json.Marshal(string(raw))
	return b
}
