// Package binder populates structs from HTTP request data.
//
// Each constructor returns a binding function so call sites can pick the
// source without branching:
//
//	bind := binder.Form()
//	var form LoginForm
//	if err := bind(r, &form); err != nil { ... }
//
// Form and Query map url.Values onto struct fields via the `form` and
// `query` tags; JSON decodes the request body. Untagged fields fall back to
// the snake_case of the field name.
package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

var (
	// ErrInvalidTarget is returned when the bind target is not a non-nil
	// struct pointer.
	ErrInvalidTarget = errors.New("binder: target must be a non-nil struct pointer")

	// ErrUnsupportedContentType is returned by JSON when the request body is
	// not JSON.
	ErrUnsupportedContentType = errors.New("binder: unsupported content type")

	// ErrEmptyBody is returned by JSON when the request has no body.
	ErrEmptyBody = errors.New("binder: empty request body")
)

// maxFormMemory caps in-memory parsing of multipart bodies; larger parts
// spill to temp files.
const maxFormMemory = 10 << 20 // 10 MB

// Form binds POST form data (urlencoded or multipart) using `form` tags.
func Form() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxFormMemory); err != nil {
				return fmt.Errorf("binder: parse multipart form: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return fmt.Errorf("binder: parse form: %w", err)
		}
		return bindValues(r.PostForm, v, "form")
	}
}

// Query binds URL query parameters using `query` tags.
func Query() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		return bindValues(r.URL.Query(), v, "query")
	}
}

// JSON decodes the request body into v. Unknown fields are ignored; a
// non-JSON content type or empty body is an error.
func JSON() func(*http.Request, any) error {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct != "" && ct != "application/json" && !strings.HasSuffix(ct, "+json") {
			return fmt.Errorf("%w: %s", ErrUnsupportedContentType, ct)
		}
		if r.Body == nil || r.ContentLength == 0 {
			return ErrEmptyBody
		}
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return fmt.Errorf("binder: decode json: %w", err)
		}
		return nil
	}
}
