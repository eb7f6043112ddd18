package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Provider serves parameter values from one source. Providers are consulted
// in a fixed order; the first whose CanHandle returns true resolves the
// parameter, and no later provider is asked.
//
// CanHandle must be cheap and side-effect free. Resolve may fail, which
// aborts resolution of the current callable.
type Provider interface {
	CanHandle(p ParamSpec, rc *ResolutionContext) bool
	Resolve(p ParamSpec, rc *ResolutionContext) (any, error)
}

var (
	httpRequestType  = reflect.TypeOf((*http.Request)(nil))
	contextIfaceType = reflect.TypeOf((*Context)(nil)).Elem()
	anyType          = reflect.TypeOf((*any)(nil)).Elem()
)

// requestProvider serves the request handle itself, matched by type:
// *http.Request fields get the raw request, Context fields get the handle.
type requestProvider struct{}

func (requestProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	if rc.Ctx() == nil {
		return false
	}
	return p.Type == httpRequestType || p.Type == contextIfaceType
}

func (requestProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	if p.Type == httpRequestType {
		return rc.Request(), nil
	}
	return rc.Ctx(), nil
}

// urlParamProvider serves URL parameters by name, coercing the raw string to
// the declared field type. A failed coercion is a CoercionError: the request
// addresses a resource that cannot exist.
type urlParamProvider struct{}

func (urlParamProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	_, ok := rc.Param(p.Name)
	return ok
}

func (urlParamProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	raw, _ := rc.Param(p.Name)
	return coerceParam(p, raw)
}

func coerceParam(p ParamSpec, raw string) (any, error) {
	out := reflect.New(p.Type).Elem()
	switch p.Type.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, p.Type.Bits())
		if err != nil {
			return nil, &CoercionError{Param: p.Name, Value: raw, Target: p.Type, Err: err}
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, p.Type.Bits())
		if err != nil {
			return nil, &CoercionError{Param: p.Name, Value: raw, Target: p.Type, Err: err}
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, p.Type.Bits())
		if err != nil {
			return nil, &CoercionError{Param: p.Name, Value: raw, Target: p.Type, Err: err}
		}
		out.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &CoercionError{Param: p.Name, Value: raw, Target: p.Type, Err: err}
		}
		out.SetBool(b)
	case reflect.Interface:
		if p.Type != anyType {
			return nil, &CoercionError{
				Param: p.Name, Value: raw, Target: p.Type,
				Err: fmt.Errorf("unsupported url param type %s", p.Type),
			}
		}
		return raw, nil
	default:
		return nil, &CoercionError{
			Param: p.Name, Value: raw, Target: p.Type,
			Err: fmt.Errorf("unsupported url param type %s", p.Type),
		}
	}
	return out.Interface(), nil
}

// formProvider serves the page's bound form instance to fields named "form"
// or fields whose type the instance is assignable to. Untagged `any` fields
// not named "form" never match, so scratch parameters don't capture forms
// by accident.
type formProvider struct{}

func (formProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	f := rc.Form()
	if f == nil {
		return false
	}
	if p.Name == "form" {
		return true
	}
	if p.Type == anyType {
		return false
	}
	return reflect.TypeOf(f).AssignableTo(p.Type)
}

func (formProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	f := rc.Form()
	if p.Type != anyType && !reflect.TypeOf(f).AssignableTo(p.Type) {
		return nil, fmt.Errorf("%w: form is %T, field %q wants %s",
			ErrIncompatibleValue, f, p.Name, p.Type)
	}
	return f, nil
}

// contextKeyProvider serves context data addressed by an explicit inject tag.
type contextKeyProvider struct{}

func (contextKeyProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	return p.Explicit && rc.Has(p.Name)
}

func (contextKeyProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	return rc.Data()[p.Name], nil
}

// contextNameProvider serves context data matched implicitly by the
// field-derived name.
type contextNameProvider struct{}

func (contextNameProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	return !p.Explicit && rc.Has(p.Name)
}

func (contextNameProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	return rc.Data()[p.Name], nil
}

// dependencyProvider is the chain's last stop: it resolves registered named
// dependencies through the resolver, with per-request memoization and cycle
// detection.
type dependencyProvider struct {
	r *Resolver
}

func (d dependencyProvider) CanHandle(p ParamSpec, rc *ResolutionContext) bool {
	return d.r.registry.HasDependency(p.Name)
}

func (d dependencyProvider) Resolve(p ParamSpec, rc *ResolutionContext) (any, error) {
	return d.r.resolveDependency(p.Name, rc)
}
