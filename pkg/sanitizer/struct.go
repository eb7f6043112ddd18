package sanitizer

import (
	"fmt"
	"reflect"
)

// SanitizeStruct sanitizes every settable string field of a struct in place.
// v must be a non-nil pointer to a struct. Fields are stripped of all HTML by
// default; the `sanitize` struct tag adjusts this per field:
//
//	Title string `sanitize:"-"`    // leave untouched
//	Body  string `sanitize:"html"` // keep safe formatting tags
//
// Nested structs, pointers to structs, and string slices are walked
// recursively. Non-string fields are ignored.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("sanitizer: expected non-nil struct pointer, got %T", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("sanitizer: expected struct pointer, got %T", v)
	}
	sanitizeValue(rv, "")
	return nil
}

func sanitizeValue(rv reflect.Value, mode string) {
	switch rv.Kind() {
	case reflect.String:
		if !rv.CanSet() {
			return
		}
		if mode == "html" {
			rv.SetString(SanitizeHTML(rv.String()))
			return
		}
		rv.SetString(StripHTML(rv.String()))
	case reflect.Struct:
		t := rv.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag := f.Tag.Get("sanitize")
			if tag == "-" {
				continue
			}
			sanitizeValue(rv.Field(i), tag)
		}
	case reflect.Pointer:
		if !rv.IsNil() {
			sanitizeValue(rv.Elem(), mode)
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeValue(rv.Index(i), mode)
		}
	}
}
