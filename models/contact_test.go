package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validContact() ContactRequest {
	return ContactRequest{
		Name:    "Jo Bloggs",
		Email:   "jo@example.com",
		Message: "Need a quote please",
	}
}

func TestValidateContactAccepts(t *testing.T) {
	req := validContact()
	assert.Empty(t, ValidateContact(&req))

	// Phone is optional and unconstrained.
	req.Phone = "not a phone at all"
	assert.Empty(t, ValidateContact(&req))
}

func TestValidateContactName(t *testing.T) {
	for _, name := range []string{"", "J"} {
		req := validContact()
		req.Name = name
		errs := ValidateContact(&req)
		assert.Equal(t, "Name is required and must be at least 2 characters.", errs["Name"], "name=%q", name)
	}
}

func TestValidateContactEmail(t *testing.T) {
	bad := []string{"", "plain", "no@dot", "two@@x.com", "spa ce@x.com", "a@b c.com", "trailing@x."}
	for _, email := range bad {
		req := validContact()
		req.Email = email
		errs := ValidateContact(&req)
		assert.Equal(t, "A valid email address is required.", errs["Email"], "email=%q", email)
	}

	good := []string{"jo@x.com", "a+b@sub.domain.org", "weird!#$@x.co"}
	for _, email := range good {
		req := validContact()
		req.Email = email
		assert.Empty(t, ValidateContact(&req), "email=%q", email)
	}
}

func TestValidateContactMessage(t *testing.T) {
	req := validContact()
	req.Message = "too short" // 9 characters
	errs := ValidateContact(&req)
	assert.Equal(t, "Message is required and must be at least 10 characters.", errs["Message"])

	req.Message = "0123456789"
	assert.Empty(t, ValidateContact(&req))
}

func TestValidateContactIsPure(t *testing.T) {
	req := validContact()
	req.Name = "J"
	first := ValidateContact(&req)
	second := ValidateContact(&req)
	assert.Equal(t, first, second)
}

func TestFirstContactErrorOrder(t *testing.T) {
	req := ContactRequest{Name: "J", Email: "nope", Message: "hi"}
	errs := ValidateContact(&req)
	assert.Len(t, errs, 3)
	assert.Equal(t, "Name is required and must be at least 2 characters.", FirstContactError(errs))

	delete(errs, "Name")
	assert.Equal(t, "A valid email address is required.", FirstContactError(errs))

	delete(errs, "Email")
	assert.Equal(t, "Message is required and must be at least 10 characters.", FirstContactError(errs))

	assert.Equal(t, "", FirstContactError(nil))
}
