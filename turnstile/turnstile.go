// Package turnstile verifies Cloudflare Turnstile challenge tokens.
// Every failure mode (missing secret, transport error, non-2xx status,
// malformed body) fails closed.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrMissingSecret means the server-held secret was never configured.
// A configuration error, not a bad token.
var ErrMissingSecret = errors.New("turnstile secret is not configured")

// Verifier decides whether a challenge token proves human interaction.
type Verifier interface {
	Verify(ctx context.Context, token string) (Result, error)
}

// Result is the verdict for one token. ErrorCodes carries the upstream
// "error-codes" for server-side logging only.
type Result struct {
	Verified   bool
	ErrorCodes []string
}

// Client calls the siteverify endpoint with a single timeout-bounded
// attempt per token. No retries.
type Client struct {
	secret     string
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

// WithEndpoint overrides the verification URL (tests).
func WithEndpoint(u string) Option {
	return func(c *Client) { c.endpoint = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(secret string, opts ...Option) *Client {
	c := &Client{
		secret:     secret,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts {secret, response} form-encoded and decodes the verdict.
// A non-nil error always comes with Result{Verified: false}.
func (c *Client) Verify(ctx context.Context, token string) (Result, error) {
	if strings.TrimSpace(c.secret) == "" {
		return Result{}, ErrMissingSecret
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("turnstile: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("turnstile: verification request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Result{}, fmt.Errorf("turnstile: verification returned status %d", res.StatusCode)
	}

	var body siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("turnstile: decode response: %w", err)
	}

	return Result{Verified: body.Success, ErrorCodes: body.ErrorCodes}, nil
}
