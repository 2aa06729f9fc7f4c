package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultResendEndpoint = "https://api.resend.com/emails"

// ErrMissingAPIKey means RESEND_API_KEY was never configured; dispatch
// fails closed instead of the process refusing to start.
var ErrMissingAPIKey = errors.New("resend api key is not configured")

// ResendSender delivers enquiries through the Resend transactional API.
type ResendSender struct {
	apiKey     string
	from       string
	to         string
	endpoint   string
	httpClient *http.Client
}

type ResendOption func(*ResendSender)

// WithResendEndpoint overrides the API URL (tests).
func WithResendEndpoint(u string) ResendOption {
	return func(s *ResendSender) { s.endpoint = u }
}

func WithResendHTTPClient(hc *http.Client) ResendOption {
	return func(s *ResendSender) { s.httpClient = hc }
}

func NewResendSender(apiKey, from, to string, opts ...ResendOption) *ResendSender {
	s := &ResendSender{
		apiKey:     apiKey,
		from:       from,
		to:         to,
		endpoint:   defaultResendEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send posts the rendered email to the API. Reply-to is the submitter,
// so a plain reply in the inbox reaches them directly.
func (s *ResendSender) Send(ctx context.Context, enq Enquiry) error {
	if strings.TrimSpace(s.apiKey) == "" {
		return ErrMissingAPIKey
	}

	payload := resendPayload{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: enq.Email,
		Subject: Subject(enq),
		HTML:    BuildHTML(enq),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("resend: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		var apiErr resendError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("resend: status %d: %s", res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend: status %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	return nil
}
