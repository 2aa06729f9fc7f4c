// Package client is a programmatic counterpart of the site's contact
// form: it holds field state, validates with the same rules the server
// enforces, and drives a submission through an explicit state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"mascoprint-backend/models"
	"mascoprint-backend/utils"
)

// State of the form controller.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrSubmitting is returned when Submit is called while a submission is
// already in flight.
var ErrSubmitting = errors.New("a submission is already in flight")

const msgVerificationRequired = "Please complete the verification check."

// TokenSource obtains a fresh challenge token, standing in for the
// browser widget.
type TokenSource func(ctx context.Context) (string, error)

// FormController tracks field values, per-field validation errors, the
// challenge token, and the submission state. Safe for concurrent use.
type FormController struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource

	mu          sync.Mutex
	fields      models.ContactRequest
	fieldErrors map[string]string
	token       string
	state       State
	lastError   string
}

type Option func(*FormController)

func WithHTTPClient(hc *http.Client) Option {
	return func(f *FormController) { f.httpClient = hc }
}

// WithTokenSource lets Submit fetch a token on demand when none was
// pushed via SetChallengeToken.
func WithTokenSource(ts TokenSource) Option {
	return func(f *FormController) { f.tokens = ts }
}

// New builds a controller posting to baseURL + "/api/contact".
func New(baseURL string, opts ...Option) *FormController {
	f := &FormController{
		endpoint:    baseURL + "/api/contact",
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		fieldErrors: map[string]string{},
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FormController) SetName(v string) {
	f.setField(func(r *models.ContactRequest) { r.Name = v })
}

func (f *FormController) SetEmail(v string) {
	f.setField(func(r *models.ContactRequest) { r.Email = v })
}

func (f *FormController) SetPhone(v string) {
	f.setField(func(r *models.ContactRequest) { r.Phone = v })
}

func (f *FormController) SetMessage(v string) {
	f.setField(func(r *models.ContactRequest) { r.Message = v })
}

func (f *FormController) setField(apply func(*models.ContactRequest)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.fields)
}

// SetChallengeToken stores a token issued by the challenge widget.
func (f *FormController) SetChallengeToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// ValidateField re-checks a single field (blur behavior) and returns its
// message, or "" when the field passes.
func (f *FormController) ValidateField(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revalidateLocked()
	return f.fieldErrors[field]
}

// FieldError returns the stored message for a field, if any.
func (f *FormController) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors[field]
}

func (f *FormController) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the message behind a StateFailed, "" otherwise.
func (f *FormController) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

func (f *FormController) revalidateLocked() {
	probe := f.fields
	utils.NormalizeDTO(&probe)
	errs := models.ValidateContact(&probe)
	if errs == nil {
		errs = map[string]string{}
	}
	f.fieldErrors = errs
}

// Submit runs client-side validation, requires a challenge token, posts
// the payload, and lands in Succeeded or Failed. Success clears the
// fields; either terminal outcome discards the token so a fresh one is
// needed before retrying.
func (f *FormController) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitting
	}
	f.state = StateIdle
	f.lastError = ""

	f.revalidateLocked()
	if len(f.fieldErrors) > 0 {
		msg := models.FirstContactError(f.fieldErrors)
		f.mu.Unlock()
		return errors.New(msg)
	}

	token := f.token
	f.mu.Unlock()

	if token == "" && f.tokens != nil {
		fetched, err := f.tokens(ctx)
		if err == nil {
			token = fetched
		}
	}
	if token == "" {
		f.mu.Lock()
		f.state = StateFailed
		f.lastError = msgVerificationRequired
		f.mu.Unlock()
		return errors.New(msgVerificationRequired)
	}

	f.mu.Lock()
	payload := f.fields
	payload.TurnstileToken = token
	f.state = StateSubmitting
	f.mu.Unlock()

	err := f.post(ctx, &payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	if err != nil {
		f.state = StateFailed
		f.lastError = err.Error()
		return err
	}

	f.state = StateSucceeded
	f.fields = models.ContactRequest{}
	f.fieldErrors = map[string]string{}
	return nil
}

func (f *FormController) post(ctx context.Context, payload *models.ContactRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.httpClient.Do(req)
	if err != nil {
		return errors.New("Failed to send message. Please try again.")
	}
	defer res.Body.Close()

	var outcome models.SubmissionOutcome
	if decodeErr := json.NewDecoder(res.Body).Decode(&outcome); decodeErr != nil {
		outcome = models.SubmissionOutcome{}
	}

	if res.StatusCode >= 400 || !outcome.Success {
		if outcome.Error != "" {
			return errors.New(outcome.Error)
		}
		return errors.New("Failed to send message. Please try again.")
	}
	return nil
}
