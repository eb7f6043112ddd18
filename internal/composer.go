package internal

import (
	"errors"
	"fmt"
	"log/slog"
)

// Composition stage names, in execution order. Used in log output only.
const (
	stageInherited  = "inherited"
	stageLocal      = "local"
	stageProcessors = "processors"
)

// Composer assembles the context map for one page render. Stages run in a
// fixed order so later stages see and may override earlier contributions:
//
//  1. page defaults
//  2. layout context functions, outermost layout first (inherited functions
//     cascade to all descendants, others apply to direct children only)
//  3. the page's own context functions, in declaration order
//  4. app-wide processors (merge-if-absent: never override the above)
//  5. caller-supplied explicit vars (always win)
//
// Application errors and panics inside a context function degrade that one
// contribution and are logged; resolution errors abort the composition.
// An *HTTPError returned by a context function (or by a dependency it
// pulls in) is a deliberate response signal, not a degradation: it aborts
// the composition and surfaces to the error handler.
type Composer struct {
	resolver *Resolver
	registry *Registry
	log      *slog.Logger
}

func NewComposer(resolver *Resolver, registry *Registry, log *slog.Logger) *Composer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Composer{resolver: resolver, registry: registry, log: log}
}

// Compose runs the full pipeline and returns the composed context map.
// vars are the caller's explicit values; they bypass resolution entirely.
func (cp *Composer) Compose(rc *ResolutionContext, page *Page, vars map[string]any) (map[string]any, error) {
	for k, v := range page.defaults {
		rc.Set(k, v)
	}

	for _, l := range cp.registry.layoutChain(page.pattern) {
		direct := l.directParent(page.pattern)
		for _, f := range l.funcs {
			if !f.inherit && !direct {
				continue
			}
			if err := cp.apply(rc, page, f, stageInherited, true); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range page.funcs {
		if err := cp.apply(rc, page, f, stageLocal, true); err != nil {
			return nil, err
		}
	}

	for _, f := range cp.registry.processors {
		if err := cp.apply(rc, page, f, stageProcessors, false); err != nil {
			return nil, err
		}
	}

	for k, v := range vars {
		rc.Set(k, v)
	}

	return rc.Data(), nil
}

// apply runs one context function and merges its contribution. overwrite
// false gives merge-if-absent semantics (processor stage).
func (cp *Composer) apply(rc *ResolutionContext, page *Page, f *contextFunc, stage string, overwrite bool) error {
	resolved, err := cp.resolver.ResolveAll(f.call, rc, nil)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		var depErr *DependencyError
		if errors.As(err, &depErr) {
			cp.logDegraded(rc, page, f, stage, err)
			return nil
		}
		return err
	}

	out, err := cp.invoke(f.call, resolved)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		cp.logDegraded(rc, page, f, stage, err)
		return nil
	}

	if f.key != "" {
		if overwrite || !rc.Has(f.key) {
			rc.Set(f.key, out)
		}
		return nil
	}

	m, _ := out.(map[string]any)
	for k, v := range m {
		if overwrite || !rc.Has(k) {
			rc.Set(k, v)
		}
	}
	return nil
}

// invoke calls the context function, converting panics into errors so a
// misbehaving contributor cannot take the whole page down.
func (cp *Composer) invoke(call *Callable, resolved map[string]any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return call.Invoke(resolved)
}

func (cp *Composer) logDegraded(rc *ResolutionContext, page *Page, f *contextFunc, stage string, err error) {
	attrs := []any{
		slog.String("page", page.pattern),
		slog.String("stage", stage),
		slog.String("func", f.call.Name()),
		slog.Any("error", err),
	}
	if f.key != "" {
		attrs = append(attrs, slog.String("key", f.key))
	}
	if req := rc.Request(); req != nil {
		cp.log.ErrorContext(req.Context(), "context function degraded", attrs...)
		return
	}
	cp.log.Error("context function degraded", attrs...)
}
