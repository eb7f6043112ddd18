// Package validator provides two complementary validation styles sharing one
// error type: explicit rules composed with Apply, and struct-tag validation
// via ValidateStruct. Both return ValidationErrors whose messages can be
// localized later with Translate.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *playground.Validate
)

func instance() *playground.Validate {
	validateOnce.Do(func() {
		validate = playground.New(playground.WithRequiredStructEnabled())
		// Report fields by their form/json name so errors match what the
		// client actually submitted.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "query", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateStruct validates v against its `validate` struct tags and returns
// ValidationErrors on failure, nil on success.
//
//	type SignupForm struct {
//	    Email    string `form:"email" validate:"required,email"`
//	    Password string `form:"password" validate:"required,min=8"`
//	}
func ValidateStruct(v any) error {
	if err := instance().Struct(v); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) {
			out := make(ValidationErrors, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				out = append(out, convertFieldError(fe))
			}
			return out
		}
		return err
	}
	return nil
}

func convertFieldError(fe playground.FieldError) ValidationError {
	field := fe.Field()
	values := map[string]any{"field": field}

	var key, message string
	switch fe.Tag() {
	case "required":
		key = "validation.required"
		message = "field is required"
	case "email":
		key = "validation.email"
		message = "must be a valid email address"
	case "url":
		key = "validation.url"
		message = "must be a valid URL"
	case "uuid", "uuid4":
		key = "validation.uuid"
		message = "must be a valid UUID"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			key = "validation.min_length"
			values["min"] = paramValue(fe.Param())
			message = fmt.Sprintf("must be at least %s characters long", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			key = "validation.min_items"
			values["min"] = paramValue(fe.Param())
			message = fmt.Sprintf("must contain at least %s items", fe.Param())
		default:
			key = "validation.min"
			values["min"] = paramValue(fe.Param())
			message = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			key = "validation.max_length"
			values["max"] = paramValue(fe.Param())
			message = fmt.Sprintf("must not exceed %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			key = "validation.max_items"
			values["max"] = paramValue(fe.Param())
			message = fmt.Sprintf("must not contain more than %s items", fe.Param())
		default:
			key = "validation.max"
			values["max"] = paramValue(fe.Param())
			message = fmt.Sprintf("must not exceed %s", fe.Param())
		}
	case "len":
		key = "validation.exact_length"
		values["length"] = paramValue(fe.Param())
		message = fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "oneof":
		key = "validation.one_of"
		values["values"] = fe.Param()
		message = fmt.Sprintf("must be one of: %s", fe.Param())
	case "eqfield":
		key = "validation.eq_field"
		values["other"] = fe.Param()
		message = fmt.Sprintf("must match %s", fe.Param())
	default:
		key = "validation." + fe.Tag()
		if fe.Param() != "" {
			values["param"] = fe.Param()
			message = fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		} else {
			message = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}

	return ValidationError{
		Field:             field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// paramValue keeps numeric tag parameters numeric in TranslationValues so
// translations can format them consistently with the rule-based API.
func paramValue(p string) any {
	if n, err := strconv.Atoi(p); err == nil {
		return n
	}
	return p
}
