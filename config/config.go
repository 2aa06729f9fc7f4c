package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
// Missing secrets are not fatal at load time: the affected step fails
// closed at request time instead of crashing the process.
type Config struct {
	Port           string
	AllowedOrigins string
	BodyLimitBytes int

	// Coarse global limiter (all routes).
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Contact-endpoint sliding window.
	ContactRateLimit  int
	ContactRateWindow time.Duration

	TurnstileSecret string

	MailProvider string // "resend" or "smtp"
	ResendAPIKey string
	EmailTo      string
	EmailFrom    string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	SSL  bool
}

const (
	defaultEmailTo   = "office@mascoprint.co.uk"
	defaultEmailFrom = "Mascoprint Website <no-reply@mascoprint.co.uk>"
)

// Load reads .env (if present) and builds the config with defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}

	// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
	// We allow overriding with BODY_LIMIT_BYTES or BODY_LIMIT_MB.
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	cfg := &Config{
		Port:           env("PORT", "8080"),
		AllowedOrigins: env("ALLOWED_ORIGINS", "*"),
		BodyLimitBytes: bodyLimitBytes,

		RateLimitMax:    envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow: time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		ContactRateLimit:  envInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: time.Duration(envInt("CONTACT_RATE_WINDOW_MINUTES", 60)) * time.Minute,

		TurnstileSecret: os.Getenv("TURNSTILE_SECRET_KEY"),

		MailProvider: strings.ToLower(env("MAIL_PROVIDER", "resend")),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailTo:      env("CONTACT_EMAIL_TO", defaultEmailTo),
		EmailFrom:    env("CONTACT_EMAIL_FROM", defaultEmailFrom),

		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: envInt("SMTP_PORT", 587),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			SSL:  envBool("SMTP_SSL", false),
		},
	}

	if cfg.TurnstileSecret == "" {
		log.Printf("config: TURNSTILE_SECRET_KEY is not set; verification will fail closed")
	}

	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "t", "true", "y", "yes":
		return true
	case "0", "f", "false", "n", "no":
		return false
	default:
		return def
	}
}
