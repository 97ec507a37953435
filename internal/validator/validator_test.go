package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,is-signup-role"`
}

type statusInput struct {
	Status string `json:"status" validate:"omitempty,is-application-status"`
}

func TestValidator_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(signupInput{Email: "a@test.com", Role: "jobseeker"}))
	assert.NoError(t, v.Validate(signupInput{Email: "a@test.com", Role: "company"}))

	err := v.Validate(signupInput{Email: "a@test.com", Role: "admin"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid role", verr.Errors["role"])

	assert.NoError(t, v.Validate(statusInput{}))
	assert.NoError(t, v.Validate(statusInput{Status: "interview"}))

	err = v.Validate(statusInput{Status: "archived"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "status")
}

func TestValidator_JSONFieldNames(t *testing.T) {
	err := New().Validate(signupInput{Role: "jobseeker"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required", verr.Errors["email"])
}
