package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed check on a single field.
// TranslationKey and TranslationValues carry enough information to rebuild
// the message in another language without re-running validation.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is the error type returned by Apply and ValidateStruct.
// A field may appear more than once when several rules fail for it.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Field+": "+err.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the messages recorded for a field, in order.
func (e ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, err := range e {
		if err.Field == field {
			msgs = append(msgs, err.Message)
		}
	}
	return msgs
}

// GetErrors returns the full error records for a field.
func (e ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range e {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// Has reports whether any error was recorded for the field.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Translate rewrites each Message in place using fn, called with the error's
// TranslationKey and TranslationValues. Errors without a TranslationKey keep
// their original Message. A nil fn is a no-op.
func (e ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// IsValidationError reports whether err is (or wraps) ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps err into ValidationErrors, or returns nil
// when err is not a validation error.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
