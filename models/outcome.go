package models

// SubmissionOutcome is the wire shape of every contact response:
// {"success":true} on the happy (and honeypot) path, {"error":"..."}
// otherwise. Exactly one of the two fields is set.
type SubmissionOutcome struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
