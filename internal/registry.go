package internal

import (
	"fmt"
	"reflect"
	"sort"
)

var (
	contextMapType = reflect.TypeOf(map[string]any(nil))
	componentType  = reflect.TypeOf((*Component)(nil)).Elem()
)

// contextFunc is a compiled context contributor. Keyed funcs write their
// result under Key; unkeyed funcs must return map[string]any which is merged
// into the context.
type contextFunc struct {
	call    *Callable
	key     string
	inherit bool
}

// Registry holds everything the injection pipeline can draw from: named
// dependencies, extra providers, app-wide context processors, and the
// page/layout table. It is assembled once during App construction and is
// immutable afterwards.
type Registry struct {
	deps       map[string]*Callable
	depOrder   []string
	providers  []Provider
	processors []*contextFunc
	pages      []*Page
	layouts    []*Layout
}

func NewRegistry() *Registry {
	return &Registry{deps: make(map[string]*Callable)}
}

// RegisterDependency adds a named dependency callable. Names must be unique;
// a duplicate is rejected so that one registration cannot silently shadow
// another.
func (r *Registry) RegisterDependency(name string, fn any) error {
	if name == "" {
		return fmt.Errorf("loom: dependency name must not be empty")
	}
	if _, exists := r.deps[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDependency, name)
	}
	call, err := NewCallable(fn)
	if err != nil {
		return err
	}
	r.deps[name] = call
	r.depOrder = append(r.depOrder, name)
	return nil
}

// RegisterProvider appends a custom provider. Custom providers run after the
// built-in request/url/form providers and before context and dependency
// lookup.
func (r *Registry) RegisterProvider(p Provider) {
	r.providers = append(r.providers, p)
}

// RegisterProcessor adds an app-wide context processor. Processors are
// unkeyed: they must return map[string]any, and their contributions never
// override page- or layout-provided keys.
func (r *Registry) RegisterProcessor(fn any) error {
	cf, err := compileContextFunc("", fn, false)
	if err != nil {
		return err
	}
	r.processors = append(r.processors, cf)
	return nil
}

// AddPage compiles and registers a page definition.
func (r *Registry) AddPage(p *Page) error {
	if err := p.compile(); err != nil {
		return fmt.Errorf("page %s: %w", p.pattern, err)
	}
	r.pages = append(r.pages, p)
	return nil
}

// AddLayout compiles and registers a layout definition.
func (r *Registry) AddLayout(l *Layout) error {
	if err := l.compile(); err != nil {
		return fmt.Errorf("layout %s: %w", l.prefix, err)
	}
	r.layouts = append(r.layouts, l)
	return nil
}

// HasDependency reports whether name is registered.
func (r *Registry) HasDependency(name string) bool {
	_, ok := r.deps[name]
	return ok
}

func (r *Registry) dependency(name string) *Callable {
	return r.deps[name]
}

// Pages returns the registered pages in registration order.
func (r *Registry) Pages() []*Page { return r.pages }

// layoutChain returns the layouts enclosing pattern, outermost first, so
// that inner layouts override outer ones during composition.
func (r *Registry) layoutChain(pattern string) []*Layout {
	var chain []*Layout
	for _, l := range r.layouts {
		if l.encloses(pattern) {
			chain = append(chain, l)
		}
	}
	sort.SliceStable(chain, func(i, j int) bool {
		return len(chain[i].prefix) < len(chain[j].prefix)
	})
	return chain
}

func compileContextFunc(key string, fn any, inherit bool) (*contextFunc, error) {
	call, err := NewCallable(fn)
	if err != nil {
		return nil, err
	}
	if key == "" && call.ReturnType() != contextMapType {
		return nil, &SignatureError{
			Func:   call.Name(),
			Reason: "unkeyed context function must return map[string]any",
		}
	}
	return &contextFunc{call: call, key: key, inherit: inherit}, nil
}
