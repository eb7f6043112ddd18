package internal

import "strconv"

// Scalar lists the types route and query parameters convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or T's zero value when
// the key is absent or holds a different type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param returns the named route parameter converted to T; a missing or
// unparseable value yields the zero value.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query returns the named query parameter converted to T.
func Query[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault returns the named query parameter converted to T, or fallback
// when the parameter is absent or unparseable.
func QueryDefault[T Scalar](c Context, name string, fallback T) T {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return fallback
}

func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	case *bool:
		*p, err = strconv.ParseBool(raw)
	default:
		// Named scalar types fall through; callers get the zero value.
		return out, false
	}
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
