package mailer

import (
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Subject returns the deterministic subject line for an enquiry.
func Subject(enq Enquiry) string {
	return fmt.Sprintf("New enquiry from %s", enq.Name)
}

// BuildHTML renders the fixed enquiry template. User-supplied text is
// escaped; the message keeps its line breaks via white-space:pre-wrap.
func BuildHTML(enq Enquiry) string {
	var phoneRow string
	if enq.Phone != "" {
		phoneRow = fmt.Sprintf(`
                <tr>
                  <td style="padding:12px 0; border-bottom:1px solid #e5e7eb;">
                    <strong style="color:#374151; font-size:14px;">Phone</strong>
                    <p style="margin:4px 0 0; color:#111827; font-size:16px;">
                      <a href="tel:%s" style="color:#0284c7;">%s</a>
                    </p>
                  </td>
                </tr>`, escapeHTML(enq.Phone), escapeHTML(enq.Phone))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0; padding:0; background-color:#f3f4f6; font-family:-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:32px 16px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff; border-radius:12px; overflow:hidden; box-shadow:0 1px 3px rgba(0,0,0,0.1);">
          <tr>
            <td style="background:#0f172a; padding:32px; text-align:center;">
              <h1 style="color:#ffffff; margin:0; font-size:24px; font-weight:700;">
                New Contact Form Submission
              </h1>
              <p style="color:#94a3b8; margin:8px 0 0; font-size:14px;">
                mascoprint.co.uk
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;">
              <table width="100%%" cellpadding="0" cellspacing="0">
                <tr>
                  <td style="padding:12px 0; border-bottom:1px solid #e5e7eb;">
                    <strong style="color:#374151; font-size:14px;">Name</strong>
                    <p style="margin:4px 0 0; color:#111827; font-size:16px;">%s</p>
                  </td>
                </tr>
                <tr>
                  <td style="padding:12px 0; border-bottom:1px solid #e5e7eb;">
                    <strong style="color:#374151; font-size:14px;">Email</strong>
                    <p style="margin:4px 0 0; color:#111827; font-size:16px;">
                      <a href="mailto:%s" style="color:#0284c7;">%s</a>
                    </p>
                  </td>
                </tr>%s
                <tr>
                  <td style="padding:12px 0;">
                    <strong style="color:#374151; font-size:14px;">Message</strong>
                    <p style="margin:4px 0 0; color:#111827; font-size:16px; white-space:pre-wrap;">%s</p>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="background:#f9fafb; padding:16px 32px; text-align:center; border-top:1px solid #e5e7eb;">
              <p style="color:#9ca3af; font-size:12px; margin:0;">
                Sent from the contact form at mascoprint.co.uk
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		escapeHTML(enq.Name),
		escapeHTML(enq.Email), escapeHTML(enq.Email),
		phoneRow,
		escapeHTML(enq.Message),
	)
}
