package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ContactRequest is the payload posted by the site's contact form.
// Website is a honeypot: hidden from real users, only bots fill it.
type ContactRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,loose_email"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message" validate:"required,min=10"`
	TurnstileToken string `json:"turnstileToken"`
	Website        string `json:"website,omitempty"`
}

// Deliberately permissive: a UX sanity check, not a deliverability check.
var looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var contactValidate = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailRegex.MatchString(fl.Field().String())
	})
	return v
}

// Field-specific messages, safe to show directly to the user.
var contactFieldMessages = map[string]string{
	"Name":    "Name is required and must be at least 2 characters.",
	"Email":   "A valid email address is required.",
	"Message": "Message is required and must be at least 10 characters.",
}

// Checks run in struct field order, so the first reported failure is
// name, then email, then message.
var contactFieldOrder = []string{"Name", "Email", "Message"}

// ValidateContact checks name/email/message and returns per-field messages.
// Pure: same input always yields the same result.
func ValidateContact(req *ContactRequest) map[string]string {
	err := contactValidate.Struct(req)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"Name": contactFieldMessages["Name"]}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if msg, known := contactFieldMessages[fe.Field()]; known {
			out[fe.Field()] = msg
		}
	}
	return out
}

// FirstContactError returns the highest-priority field message, or "".
func FirstContactError(fieldErrors map[string]string) string {
	for _, f := range contactFieldOrder {
		if msg, ok := fieldErrors[f]; ok {
			return msg
		}
	}
	return ""
}
