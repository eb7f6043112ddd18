package cache

import "errors"

var (
	// ErrNotFound signals a miss: the key is absent or its record expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed signals a write against a closed cache.
	ErrClosed = errors.New("cache: closed")
)
