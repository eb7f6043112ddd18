package internal

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/dmitrymomot/loom/pkg/cache"
)

// Policy controls what happens when no provider can serve a required
// parameter.
type Policy int

const (
	// PolicyStrict fails resolution with an UnresolvedParameterError.
	PolicyStrict Policy = iota

	// PolicyPermissive injects the zero value and continues.
	PolicyPermissive
)

// Resolver walks the provider chain for each parameter of a callable. The
// chain order is fixed: request handle, URL parameters, form instance, any
// user-registered providers, explicit context keys, implicit context names,
// and finally named dependencies. The first provider that claims a
// parameter resolves it.
type Resolver struct {
	registry  *Registry
	callables *cache.Memory[*Callable]
	providers []Provider
	policy    Policy
}

// NewResolver builds a resolver over the given registry. The registry must
// be fully populated: the provider chain is assembled here and never
// changes afterwards.
func NewResolver(reg *Registry, policy Policy) *Resolver {
	r := &Resolver{
		registry: reg,
		policy:   policy,
		callables: cache.NewMemory[*Callable](
			cache.WithMaxEntries(4096),
		),
	}

	chain := make([]Provider, 0, len(reg.providers)+6)
	chain = append(chain, requestProvider{}, urlParamProvider{}, formProvider{})
	chain = append(chain, reg.providers...)
	chain = append(chain, contextKeyProvider{}, contextNameProvider{}, dependencyProvider{r: r})
	r.providers = chain

	return r
}

// Callable returns the inspected form of fn, memoized process-wide so each
// function is reflected over at most once. Distinct closures of one function
// literal share a code pointer, so the cached entry may carry another
// closure's function value; the descriptors are type-derived and safe to
// share, but the function is always rebound to the caller's value.
func (r *Resolver) Callable(fn any) (*Callable, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return NewCallable(fn)
	}
	key := fmt.Sprintf("%x:%s", v.Pointer(), v.Type())
	c, err := cache.GetOrSet(context.Background(), r.callables, key,
		func(context.Context) (*Callable, time.Duration, error) {
			c, err := NewCallable(fn)
			return c, -1, err
		})
	if err != nil {
		return nil, err
	}
	return c.bind(v), nil
}

// ResolveAll resolves every parameter of call. Overrides win outright: an
// overridden parameter consults no provider. Parameters with declared
// defaults that no provider claims are left for Invoke to fill.
func (r *Resolver) ResolveAll(call *Callable, rc *ResolutionContext, overrides map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(call.params))

	for _, p := range call.params {
		if overrides != nil {
			if v, ok := overrides[p.Name]; ok {
				resolved[p.Name] = v
				continue
			}
		}

		handled := false
		for _, prov := range r.providers {
			if !prov.CanHandle(p, rc) {
				continue
			}
			v, err := prov.Resolve(p, rc)
			if err != nil {
				return nil, err
			}
			resolved[p.Name] = v
			handled = true
			break
		}
		if handled {
			continue
		}

		if p.HasDefault {
			continue
		}
		if r.policy == PolicyPermissive {
			resolved[p.Name] = NoValue
			continue
		}
		return nil, &UnresolvedParameterError{Func: call.name, Param: p.Name}
	}

	return resolved, nil
}

// Invoke resolves call's parameters and invokes it.
func (r *Resolver) Invoke(call *Callable, rc *ResolutionContext, overrides map[string]any) (any, error) {
	resolved, err := r.ResolveAll(call, rc, overrides)
	if err != nil {
		return nil, err
	}
	return call.Invoke(resolved)
}

// resolveDependency serves a named dependency with per-request memoization:
// each name is invoked at most once per request, then answered from the
// scope cache. The resolution chain guards against cycles.
func (r *Resolver) resolveDependency(name string, rc *ResolutionContext) (any, error) {
	if v, ok := rc.scope.cached(name); ok {
		return v, nil
	}

	if err := rc.scope.enter(name); err != nil {
		return nil, err
	}
	defer rc.scope.exit()

	call := r.registry.dependency(name)
	resolved, err := r.ResolveAll(call, rc, nil)
	if err != nil {
		return nil, err
	}

	v, err := call.Invoke(resolved)
	if err != nil {
		return nil, &DependencyError{Name: name, Err: err}
	}

	rc.scope.store(name, v)
	return v, nil
}

// Close releases the descriptor cache.
func (r *Resolver) Close() error {
	return r.callables.Close()
}
