package validator

import (
	"fmt"
	"strings"
)

// Rule is a single pre-evaluated check. Constructors evaluate the condition
// immediately; Apply collects the Error of every failed rule.
type Rule struct {
	Error ValidationError
	Valid bool
}

// Apply runs the given rules and returns ValidationErrors containing one
// entry per failed rule, or nil when all rules pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Valid {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Number covers the numeric kinds accepted by the numeric rules.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredString fails when value is empty or whitespace-only.
func RequiredString(field, value string) Rule {
	return Rule{
		Valid: strings.TrimSpace(value) != "",
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString fails when value is shorter than min characters.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Valid: len([]rune(value)) >= min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenString fails when value is longer than max characters.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Valid: len([]rune(value)) <= max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must not exceed %d characters", max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// LenString fails when value is not exactly length characters.
func LenString(field, value string, length int) Rule {
	return Rule{
		Valid: len([]rune(value)) == length,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be exactly %d characters long", length),
			TranslationKey:    "validation.exact_length",
			TranslationValues: map[string]any{"field": field, "length": length},
		},
	}
}

// RequiredNum fails when value is zero.
func RequiredNum[T Number](field string, value T) Rule {
	return Rule{
		Valid: value != 0,
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinNum fails when value is below min.
func MinNum[T Number](field string, value, min T) Rule {
	return Rule{
		Valid: value >= min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %v", min),
			TranslationKey:    "validation.min",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxNum fails when value is above max.
func MaxNum[T Number](field string, value, max T) Rule {
	return Rule{
		Valid: value <= max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must not exceed %v", max),
			TranslationKey:    "validation.max",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// RequiredSlice fails when the slice is empty.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Valid: len(value) > 0,
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenSlice fails when the slice has fewer than min items.
func MinLenSlice[T any](field string, value []T, min int) Rule {
	return Rule{
		Valid: len(value) >= min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must contain at least %d items", min),
			TranslationKey:    "validation.min_items",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenSlice fails when the slice has more than max items.
func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return Rule{
		Valid: len(value) <= max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must not contain more than %d items", max),
			TranslationKey:    "validation.max_items",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// LenSlice fails when the slice does not contain exactly count items.
func LenSlice[T any](field string, value []T, count int) Rule {
	return Rule{
		Valid: len(value) == count,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must contain exactly %d items", count),
			TranslationKey:    "validation.exact_items",
			TranslationValues: map[string]any{"field": field, "count": count},
		},
	}
}

// RequiredMap fails when the map is empty.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return Rule{
		Valid: len(value) > 0,
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
