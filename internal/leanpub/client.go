package leanpub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Previewer triggers preview builds. It is implemented by *Client and can be
// substituted in tests.
type Previewer interface {
	Preview(ctx context.Context, slug string) Outcome
}

// Ensure Client implements Previewer at compile time.
var _ Previewer = (*Client)(nil)

// Client talks to the Leanpub HTTP API on behalf of a single API key.
type Client struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	userAgent string
	logger    zerolog.Logger
}

const (
	// BaseURL is the Leanpub API endpoint every request is sent to.
	BaseURL          = "https://leanpub.com/"
	defaultUserAgent = "leanpub-multi-action/0.1"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a Client bound to apiKey. The key is kept verbatim.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Field: "api key", Err: ErrMissingAPIKey}
	}
	c := &Client{
		baseURL:   BaseURL,
		apiKey:    apiKey,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Preview asks Leanpub to build a preview of the book identified by slug.
// It performs exactly one request and never retries. The returned Outcome
// only says whether the build was triggered, not whether it finished.
func (c *Client) Preview(ctx context.Context, slug string) Outcome {
	if c == nil {
		return failed(fmt.Errorf("client is nil"))
	}
	if strings.TrimSpace(slug) == "" {
		return failed(&ConfigurationError{Field: "book slug", Err: ErrMissingBookSlug})
	}

	path := url.PathEscape(slug) + "/preview.json"
	log := c.logger.With().Str("book_slug", slug).Logger()
	log.Debug().Str("path", path).Msg("requesting preview")

	resp, err := c.postJSON(ctx, path, previewRequest{APIKey: c.apiKey})
	if err != nil {
		log.Debug().Err(err).Msg("preview request failed")
		return failed(err)
	}
	if resp.StatusCode >= 400 {
		log.Debug().Int("status", resp.StatusCode).Msg("preview rejected")
		return failed(&RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       resp.Body,
		})
	}
	log.Debug().Int("status", resp.StatusCode).Msg("preview triggered")
	return succeeded(resp)
}

// postJSON sends body as JSON to baseURL+path and returns whatever the server
// answered. Only failures to complete the exchange are returned as errors.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*Response, error) {
	reqURL := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("read response: %w", err)}
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(data),
	}, nil
}
