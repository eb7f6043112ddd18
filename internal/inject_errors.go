package internal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors for the injection pipeline.
var (
	// ErrDuplicateDependency is returned when a dependency name is registered twice.
	ErrDuplicateDependency = errors.New("loom: duplicate dependency name")

	// ErrIncompatibleValue is returned when a resolved value cannot be assigned
	// to the deps struct field it was resolved for.
	ErrIncompatibleValue = errors.New("loom: resolved value incompatible with field type")
)

// SignatureError reports a callable that cannot be used for injection:
// wrong shape, variadic, unexported deps fields, or an unparseable
// default literal. It is raised at registration time, never per request.
type SignatureError struct {
	Func   string
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("loom: cannot inject into %s: %s", e.Func, e.Reason)
}

// CoercionError reports a URL parameter whose raw string value could not be
// converted to the declared field type. Page handlers surface it as 404,
// since the request addresses a resource that cannot exist.
type CoercionError struct {
	Err    error
	Target reflect.Type
	Param  string
	Value  string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("loom: cannot coerce url param %q=%q to %s", e.Param, e.Value, e.Target)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// UnresolvedParameterError reports a required parameter no provider could
// serve. Only raised under PolicyStrict; PolicyPermissive injects the zero
// value instead.
type UnresolvedParameterError struct {
	Func  string
	Param string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("loom: no provider resolved parameter %q of %s", e.Param, e.Func)
}

// DependencyCycleError reports a circular named-dependency chain. Chain holds
// the resolution path in order, ending with the repeated name, e.g.
// ["a", "b", "a"].
type DependencyCycleError struct {
	Chain []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("loom: dependency cycle: %s", strings.Join(e.Chain, " -> "))
}

// DependencyError wraps an application-level error returned by a named
// dependency callable. Unlike the structural errors above, it is degradable:
// the composer logs it and continues with the remaining contributions.
type DependencyError struct {
	Err  error
	Name string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("loom: dependency %q failed: %v", e.Name, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
