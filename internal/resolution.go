package internal

import (
	"net/http"
	"slices"
)

// noValue marks a parameter that resolution deliberately left unfilled.
type noValue struct{}

// NoValue is the sentinel injected under PolicyPermissive for parameters no
// provider could serve. Invoke treats it as "leave the field at its default".
var NoValue = noValue{}

// ResolutionContext carries everything the provider chain may draw from for
// one request: the request handle, URL parameters, the bound form instance,
// the accumulated context data, and the request-scoped dependency cache.
// It is created per request and never shared.
type ResolutionContext struct {
	ctx    Context
	form   any
	params map[string]string
	data   map[string]any
	scope  *scope
}

// NewResolutionContext builds a fresh per-request resolution context.
// params holds the route's URL parameters; form is the page's bound form
// instance, or nil when the page declares none.
func NewResolutionContext(c Context, params map[string]string, form any) *ResolutionContext {
	return &ResolutionContext{
		ctx:    c,
		form:   form,
		params: params,
		data:   make(map[string]any),
		scope:  newScope(),
	}
}

// Ctx returns the request handle, which may be nil in detached resolution
// (e.g. during startup checks).
func (rc *ResolutionContext) Ctx() Context { return rc.ctx }

// Request returns the underlying *http.Request, or nil when detached.
func (rc *ResolutionContext) Request() *http.Request {
	if rc.ctx == nil {
		return nil
	}
	return rc.ctx.Request()
}

// Param looks up a URL parameter by name.
func (rc *ResolutionContext) Param(name string) (string, bool) {
	v, ok := rc.params[name]
	return v, ok
}

// Form returns the bound form instance, or nil.
func (rc *ResolutionContext) Form() any { return rc.form }

// Data returns the accumulated context map. Callers must treat it as
// read-only; mutation goes through Set/SetIfAbsent.
func (rc *ResolutionContext) Data() map[string]any { return rc.data }

// Has reports whether a context key is present.
func (rc *ResolutionContext) Has(key string) bool {
	_, ok := rc.data[key]
	return ok
}

// Set writes a context value, overwriting any previous one.
func (rc *ResolutionContext) Set(key string, value any) {
	rc.data[key] = value
}

// SetIfAbsent writes a context value only when the key is not yet present.
func (rc *ResolutionContext) SetIfAbsent(key string, value any) {
	if _, ok := rc.data[key]; !ok {
		rc.data[key] = value
	}
}

// scope is the per-request dependency state: memoized values plus the active
// resolution chain used for cycle detection.
type scope struct {
	cache map[string]any
	chain []string
}

func newScope() *scope {
	return &scope{cache: make(map[string]any)}
}

func (s *scope) cached(name string) (any, bool) {
	v, ok := s.cache[name]
	return v, ok
}

func (s *scope) store(name string, v any) {
	s.cache[name] = v
}

// enter pushes name onto the resolution chain. If the name is already on the
// chain the push is rejected with a DependencyCycleError carrying the full
// ordered path, e.g. ["a", "b", "a"].
func (s *scope) enter(name string) error {
	if slices.Contains(s.chain, name) {
		return &DependencyCycleError{Chain: append(slices.Clone(s.chain), name)}
	}
	s.chain = append(s.chain, name)
	return nil
}

func (s *scope) exit() {
	s.chain = s.chain[:len(s.chain)-1]
}
