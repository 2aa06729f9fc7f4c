// Package mailer turns an accepted enquiry into a notification email
// and hands it to the configured outbound provider.
package mailer

import "context"

// Enquiry carries the user-supplied contact fields. All values are raw
// text; escaping happens when the HTML body is built.
type Enquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Sender delivers one enquiry notification. Implementations must wrap
// provider failures in the returned error rather than panicking; the
// caller logs the detail and shows the user a generic message.
type Sender interface {
	Send(ctx context.Context, enq Enquiry) error
}
