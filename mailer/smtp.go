package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
)

// ErrMissingSMTPHost means no SMTP host was configured.
var ErrMissingSMTPHost = errors.New("smtp host is not configured")

// SMTPSender delivers enquiries over plain SMTP for deployments that
// would rather not depend on a hosted email API.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
	ssl  bool
	from string
	to   string
}

func NewSMTPSender(host string, port int, user, pass string, ssl bool, from, to string) *SMTPSender {
	return &SMTPSender{
		host: host,
		port: port,
		user: user,
		pass: pass,
		ssl:  ssl,
		from: from,
		to:   to,
	}
}

func (s *SMTPSender) Send(ctx context.Context, enq Enquiry) error {
	if s.host == "" {
		return ErrMissingSMTPHost
	}

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{s.to}
	e.ReplyTo = []string{enq.Email}
	e.Subject = Subject(enq)
	e.HTML = []byte(BuildHTML(enq))

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	var err error
	if s.ssl {
		err = e.SendWithTLS(addr, auth, nil)
	} else {
		err = e.Send(addr, auth)
	}
	if err != nil {
		return fmt.Errorf("smtp: send via %s: %w", addr, err)
	}
	return nil
}
