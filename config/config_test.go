package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimitBytes)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, time.Hour, cfg.ContactRateWindow)
	assert.Equal(t, "resend", cfg.MailProvider)
	assert.Equal(t, "office@mascoprint.co.uk", cfg.EmailTo)
	assert.Equal(t, "Mascoprint Website <no-reply@mascoprint.co.uk>", cfg.EmailFrom)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BODY_LIMIT_BYTES", "1024")
	t.Setenv("CONTACT_RATE_LIMIT", "2")
	t.Setenv("CONTACT_RATE_WINDOW_MINUTES", "5")
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("SMTP_SSL", "true")
	t.Setenv("CONTACT_EMAIL_TO", "sales@example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 1024, cfg.BodyLimitBytes)
	assert.Equal(t, 2, cfg.ContactRateLimit)
	assert.Equal(t, 5*time.Minute, cfg.ContactRateWindow)
	assert.Equal(t, "smtp", cfg.MailProvider)
	assert.True(t, cfg.SMTP.SSL)
	assert.Equal(t, "sales@example.com", cfg.EmailTo)
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")
	cfg := Load()
	assert.Equal(t, 60, cfg.RateLimitMax)
}
