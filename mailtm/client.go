// Package mailtm is the single point of contact with the upstream mail
// provider. It owns the timeout, retry and pacing policy so callers never see
// raw transport failures.
package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/suaib92/tempmailr/metrics"
)

// DefaultBaseURL is the production endpoint of the upstream provider.
const DefaultBaseURL = "https://api.mail.tm"

const defaultTimeout = 10 * time.Second
const defaultUserAgent = "temp-mailr/1.0 (+https://www.temp-mailr.com)"

// maxErrorBody bounds how much of an upstream error body we keep around.
const maxErrorBody = 512

// Client talks to the upstream mail API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	retry      RetryConfig
	clock      clockwork.Clock
	pace       *pacer

	minInterval time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry sets the retry policy applied to every call.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithMinInterval spaces all outbound requests at least d apart. The gate is
// shared across every call made through this client.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithClock replaces the clock used for backoff and pacing waits.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the provider at baseURL. An empty baseURL selects
// the production endpoint.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		retry:     DefaultRetryConfig(),
		clock:     clockwork.NewRealClock(),
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}

	c.pace = newPacer(c.clock, c.minInterval)

	return c
}

// FetchDomains returns the hostnames currently accepting new mailboxes.
func (c *Client) FetchDomains(ctx context.Context) ([]string, error) {
	var domains []string

	err := c.withRetry(ctx, "domains", func(ctx context.Context) error {
		status, body, err := c.roundTrip(ctx, "domains", http.MethodGet, "/domains", "", nil)
		if err != nil {
			return err
		}
		if status < 200 || status >= 300 {
			return &UpstreamError{StatusCode: status, Body: truncate(body)}
		}

		domains, err = parseDomains(body)
		return err
	})

	return domains, err
}

// CreateAccount registers address with the provider. A 422 (account already
// exists) is treated as success so that re-running provisioning for an
// address that happens to exist is not fatal.
func (c *Client) CreateAccount(ctx context.Context, address, password string) error {
	payload, err := json.Marshal(credentials{Address: address, Password: password})
	if err != nil {
		return errors.Wrap(err, "CreateAccount: failed to marshal payload")
	}

	return c.withRetry(ctx, "accounts", func(ctx context.Context) error {
		status, body, err := c.roundTrip(ctx, "accounts", http.MethodPost, "/accounts", "", payload)
		if err != nil {
			return err
		}
		if (status >= 200 && status < 300) || status == http.StatusUnprocessableEntity {
			return nil
		}
		return &UpstreamError{StatusCode: status, Body: truncate(body)}
	})
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, address, password string) (string, error) {
	payload, err := json.Marshal(credentials{Address: address, Password: password})
	if err != nil {
		return "", errors.Wrap(err, "Login: failed to marshal payload")
	}

	var token string
	err = c.withRetry(ctx, "token", func(ctx context.Context) error {
		status, body, err := c.roundTrip(ctx, "token", http.MethodPost, "/token", "", payload)
		if err != nil {
			return err
		}
		if status == 429 || status >= 500 {
			return &UpstreamError{StatusCode: status, Body: truncate(body)}
		}
		if status < 200 || status >= 300 {
			return &AuthError{StatusCode: status, Body: truncate(body)}
		}

		token, err = parseToken(body)
		return err
	})

	return token, err
}

// ListMessages returns the inbox listing for the session identified by token.
// An empty inbox returns an empty slice, not an error.
func (c *Client) ListMessages(ctx context.Context, token string) ([]MessageSummary, error) {
	var summaries []MessageSummary

	err := c.withRetry(ctx, "messages", func(ctx context.Context) error {
		status, body, err := c.roundTrip(ctx, "messages", http.MethodGet, "/messages", token, nil)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &AuthError{StatusCode: status, Body: truncate(body)}
		}
		if status < 200 || status >= 300 {
			return &UpstreamError{StatusCode: status, Body: truncate(body)}
		}

		summaries, err = parseMessageList(body)
		return err
	})

	return summaries, err
}

// GetMessage fetches one full message by id.
func (c *Client) GetMessage(ctx context.Context, token, id string) (MessageDetail, error) {
	var detail MessageDetail

	err := c.withRetry(ctx, "message", func(ctx context.Context) error {
		status, body, err := c.roundTrip(ctx, "message", http.MethodGet, "/messages/"+id, token, nil)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusNotFound:
			return &NotFoundError{ID: id}
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return &AuthError{StatusCode: status, Body: truncate(body)}
		case status < 200 || status >= 300:
			return &UpstreamError{StatusCode: status, Body: truncate(body)}
		}

		detail, err = parseMessageDetail(body)
		return err
	})

	return detail, err
}

type credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (c *Client) withRetry(ctx context.Context, endpoint string, op func(context.Context) error) error {
	attempt := 0
	return withRetry(ctx, c.clock, c.retry, func(ctx context.Context) error {
		if attempt > 0 {
			metrics.UpstreamRetries.WithLabelValues(endpoint).Inc()
		}
		attempt++
		return op(ctx)
	})
}

// roundTrip performs a single paced, timeout-bounded exchange and returns the
// raw status and body. Classification of non-2xx statuses is left to the
// caller since it differs per endpoint.
func (c *Client) roundTrip(ctx context.Context, endpoint, method, path, token string, payload []byte) (int, []byte, error) {
	if err := c.pace.wait(ctx); err != nil {
		return 0, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "roundTrip: failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, &TimeoutError{Endpoint: endpoint, Timeout: c.timeout}
		}
		// No response at all. StatusCode 0 marks it transient for the
		// retry loop.
		return 0, nil, &UpstreamError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, &TimeoutError{Endpoint: endpoint, Timeout: c.timeout}
		}
		return 0, nil, &UpstreamError{StatusCode: 0, Body: err.Error()}
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()

	return resp.StatusCode, body, nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
