package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mascoprint-backend/config"
	"mascoprint-backend/controllers"
	"mascoprint-backend/mailer"
	"mascoprint-backend/middlewares"
	"mascoprint-backend/ratelimit"
	"mascoprint-backend/routes"
	"mascoprint-backend/turnstile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	// ---- Contact pipeline services
	contactLimiter := ratelimit.New(cfg.ContactRateLimit, cfg.ContactRateWindow, 10*time.Minute)
	defer contactLimiter.Stop()

	verifier := turnstile.New(cfg.TurnstileSecret)
	sender := newSender(cfg)
	contact := controllers.NewContactController(contactLimiter, verifier, sender)

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})

	// Panics anywhere below become a 500 through the error handler.
	app.Use(recover.New())

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	// ---- Coarse global rate limiter; the contact endpoint layers its
	// own sliding window on top of this.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}))

	// ---- Routes
	routes.Register(app, contact)

	// ---- Start, stop on SIGINT/SIGTERM
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()
	log.Printf("API server started on port %s (mail provider: %s)", cfg.Port, cfg.MailProvider)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newSender picks the outbound email provider. Misconfiguration is not
// fatal here: the provider fails closed per request instead.
func newSender(cfg *config.Config) mailer.Sender {
	if cfg.MailProvider == "smtp" {
		return mailer.NewSMTPSender(
			cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.SSL,
			cfg.EmailFrom, cfg.EmailTo,
		)
	}
	return mailer.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo)
}
