package controllers

import (
	"fmt"
	"log"
	"strings"

	"mascoprint-backend/mailer"
	"mascoprint-backend/models"
	"mascoprint-backend/ratelimit"
	"mascoprint-backend/turnstile"
	"mascoprint-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ContactController runs the submission pipeline: rate limit, parse,
// honeypot, validation, challenge verification, dispatch. Dependencies
// are injected so tests can swap in spies.
type ContactController struct {
	Limiter  *ratelimit.Limiter
	Verifier turnstile.Verifier
	Sender   mailer.Sender
}

func NewContactController(limiter *ratelimit.Limiter, verifier turnstile.Verifier, sender mailer.Sender) *ContactController {
	return &ContactController{Limiter: limiter, Verifier: verifier, Sender: sender}
}

const (
	msgThrottled        = "Too many requests. Please try again later."
	msgCaptchaRequired  = "Please complete the CAPTCHA verification."
	msgCaptchaFailed    = "CAPTCHA verification failed. Please try again."
	msgDispatchFailed   = "Failed to send message. Please try again or contact us directly."
	msgInternal         = "An unexpected error occurred. Please try again."
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRetryAfter    = "Retry-After"
)

// Submit handles POST /api/contact.
func (ct *ContactController) Submit(c *fiber.Ctx) error {
	// 1. Rate limiting
	key := clientKey(c)
	rl := ct.Limiter.Check(key)
	if !rl.Allowed {
		c.Set(headerRetryAfter, fmt.Sprintf("%d", int(rl.RetryAfter.Seconds())+1))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": msgThrottled,
		})
	}

	// 2. Parse body. An undecodable body gets the generic message, not a
	// hint about what we failed to decode.
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("contact: malformed body from %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgInternal,
		})
	}
	utils.NormalizeDTO(&req)

	// 3. Honeypot: answer success so automated submitters learn nothing.
	if req.Website != "" {
		log.Printf("contact: honeypot tripped for %s", key)
		return c.JSON(fiber.Map{"success": true})
	}

	// 4. Server-side validation, first failure wins.
	if fieldErrors := models.ValidateContact(&req); len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": models.FirstContactError(fieldErrors),
		})
	}

	// 5. Challenge verification, fail closed on any error.
	if req.TurnstileToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgCaptchaRequired,
		})
	}
	verdict, err := ct.Verifier.Verify(c.Context(), req.TurnstileToken)
	if err != nil {
		log.Printf("contact: turnstile verification error for %s: %v", key, err)
	}
	if !verdict.Verified {
		if len(verdict.ErrorCodes) > 0 {
			log.Printf("contact: turnstile rejected token for %s: %s", key, strings.Join(verdict.ErrorCodes, ","))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgCaptchaFailed,
		})
	}

	// 6. Dispatch. Provider detail stays in the logs.
	ref := uuid.NewString()
	enq := mailer.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := ct.Sender.Send(c.Context(), enq); err != nil {
		log.Printf("contact: dispatch %s failed: %v", ref, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msgDispatchFailed,
		})
	}

	log.Printf("contact: dispatch %s sent (key=%s remaining=%d)", ref, key, rl.Remaining)
	c.Set(headerRateRemaining, fmt.Sprintf("%d", rl.Remaining))
	return c.JSON(fiber.Map{"success": true})
}

// clientKey picks the first forwarded-for hop, then the transport remote
// address. "unknown" only covers clients with no derivable address at
// all (those share one bucket).
func clientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
