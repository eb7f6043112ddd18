package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/validator"
)

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type SignupForm struct {
		Email    string `form:"email" validate:"required,email"`
		Password string `form:"password" validate:"required,min=8"`
		Plan     string `form:"plan" validate:"omitempty,oneof=free pro"`
	}

	t.Run("valid struct returns nil", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{
			Email:    "user@example.com",
			Password: "supersecret",
			Plan:     "pro",
		})
		assert.NoError(t, err)
	})

	t.Run("reports fields by form tag name", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{})
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 2)
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
	})

	t.Run("maps required tag to translation key", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{Password: "supersecret"})
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		emailErrs := ve.GetErrors("email")
		require.Len(t, emailErrs, 1)
		assert.Equal(t, "validation.required", emailErrs[0].TranslationKey)
		assert.Equal(t, "email", emailErrs[0].TranslationValues["field"])
	})

	t.Run("min on string maps to min_length with numeric value", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{
			Email:    "user@example.com",
			Password: "short",
		})
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		pwdErrs := ve.GetErrors("password")
		require.Len(t, pwdErrs, 1)
		assert.Equal(t, "validation.min_length", pwdErrs[0].TranslationKey)
		assert.Equal(t, 8, pwdErrs[0].TranslationValues["min"])
	})

	t.Run("oneof maps to one_of", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{
			Email:    "user@example.com",
			Password: "supersecret",
			Plan:     "enterprise",
		})
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		planErrs := ve.GetErrors("plan")
		require.Len(t, planErrs, 1)
		assert.Equal(t, "validation.one_of", planErrs[0].TranslationKey)
		assert.Equal(t, "free pro", planErrs[0].TranslationValues["values"])
	})

	t.Run("invalid email maps to email key", func(t *testing.T) {
		t.Parallel()
		err := validator.ValidateStruct(SignupForm{
			Email:    "not-an-email",
			Password: "supersecret",
		})
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		emailErrs := ve.GetErrors("email")
		require.Len(t, emailErrs, 1)
		assert.Equal(t, "validation.email", emailErrs[0].TranslationKey)
	})
}

func TestValidationErrorsError(t *testing.T) {
	t.Parallel()

	t.Run("joins field messages", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{Field: "email", Message: "field is required"},
			{Field: "password", Message: "must be at least 8 characters long"},
		}
		assert.Equal(t, "validation failed: email: field is required; password: must be at least 8 characters long", errs.Error())
	})

	t.Run("empty errors", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})
}
