package internal

import (
	"strings"
)

// FormFactory produces a page's form instance from the request, typically by
// binding and validating the request body. The product is opaque to the
// pipeline: the form provider hands it to whichever parameter claims it.
type FormFactory func(c Context) (any, error)

// rawContextFunc is a context contributor as declared by the user, before
// signature inspection.
type rawContextFunc struct {
	fn      any
	key     string
	inherit bool
}

// Page maps a chi route pattern to a composed view: defaults, context
// functions, an optional view function rendered with the composed context,
// and an optional form factory.
type Page struct {
	formFactory FormFactory
	viewFn      any
	view        *Callable
	defaults    map[string]any
	pattern     string
	methods     []string
	rawFns      []rawContextFunc
	funcs       []*contextFunc
}

// PageOption configures a Page.
type PageOption func(*Page)

// NewPage declares a page at the given chi route pattern, e.g.
// "/blog/{slug}". Pages respond to GET unless WithPageMethods says otherwise.
func NewPage(pattern string, opts ...PageOption) *Page {
	p := &Page{
		pattern: pattern,
		methods: []string{"GET"},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pattern returns the page's route pattern.
func (p *Page) Pattern() string { return p.pattern }

// Methods returns the HTTP methods the page responds to.
func (p *Page) Methods() []string { return p.methods }

// WithPageContext adds an unkeyed context function. It must return
// map[string]any; the result is merged into the context, later writers
// winning.
func WithPageContext(fn any) PageOption {
	return func(p *Page) {
		p.rawFns = append(p.rawFns, rawContextFunc{fn: fn})
	}
}

// WithPageContextKey adds a keyed context function: its result is stored
// under key.
func WithPageContextKey(key string, fn any) PageOption {
	return func(p *Page) {
		p.rawFns = append(p.rawFns, rawContextFunc{key: key, fn: fn})
	}
}

// WithPageDefaults sets static default context values. Defaults have the
// lowest priority: anything else that writes the same key wins.
func WithPageDefaults(defaults map[string]any) PageOption {
	return func(p *Page) {
		p.defaults = defaults
	}
}

// WithPageView sets the page's view function. Its parameters are resolved
// like any other injectable callable, and it must return a Component.
func WithPageView(fn any) PageOption {
	return func(p *Page) {
		p.viewFn = fn
	}
}

// WithPageForm sets the page's form factory. The factory runs before
// composition; its error short-circuits the request with 400.
func WithPageForm(factory FormFactory) PageOption {
	return func(p *Page) {
		p.formFactory = factory
	}
}

// WithPageMethods overrides the HTTP methods the page responds to.
func WithPageMethods(methods ...string) PageOption {
	return func(p *Page) {
		p.methods = methods
	}
}

func (p *Page) compile() error {
	for _, raw := range p.rawFns {
		cf, err := compileContextFunc(raw.key, raw.fn, false)
		if err != nil {
			return err
		}
		p.funcs = append(p.funcs, cf)
	}
	if p.viewFn != nil {
		call, err := NewCallable(p.viewFn)
		if err != nil {
			return err
		}
		rt := call.ReturnType()
		if rt != componentType && !rt.Implements(componentType) {
			return &SignatureError{
				Func:   call.Name(),
				Reason: "view function must return a Component",
			}
		}
		p.view = call
	}
	return nil
}

// Layout attaches context functions to a route prefix. A layout's functions
// apply to pages mounted directly under the prefix; functions declared
// inherited cascade to every descendant page instead.
type Layout struct {
	prefix string
	rawFns []rawContextFunc
	funcs  []*contextFunc
}

// LayoutOption configures a Layout.
type LayoutOption func(*Layout)

// NewLayout declares a layout at the given route prefix. The root layout
// "/" encloses every page.
func NewLayout(prefix string, opts ...LayoutOption) *Layout {
	l := &Layout{prefix: normalizePrefix(prefix)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prefix returns the layout's route prefix.
func (l *Layout) Prefix() string { return l.prefix }

// WithLayoutContext adds an unkeyed context function applied to direct
// children only.
func WithLayoutContext(fn any) LayoutOption {
	return func(l *Layout) {
		l.rawFns = append(l.rawFns, rawContextFunc{fn: fn})
	}
}

// WithLayoutContextKey adds a keyed context function applied to direct
// children only.
func WithLayoutContextKey(key string, fn any) LayoutOption {
	return func(l *Layout) {
		l.rawFns = append(l.rawFns, rawContextFunc{key: key, fn: fn})
	}
}

// WithInheritedContext adds an unkeyed context function that cascades to
// every descendant page.
func WithInheritedContext(fn any) LayoutOption {
	return func(l *Layout) {
		l.rawFns = append(l.rawFns, rawContextFunc{fn: fn, inherit: true})
	}
}

// WithInheritedContextKey adds a keyed context function that cascades to
// every descendant page.
func WithInheritedContextKey(key string, fn any) LayoutOption {
	return func(l *Layout) {
		l.rawFns = append(l.rawFns, rawContextFunc{key: key, fn: fn, inherit: true})
	}
}

func (l *Layout) compile() error {
	for _, raw := range l.rawFns {
		cf, err := compileContextFunc(raw.key, raw.fn, raw.inherit)
		if err != nil {
			return err
		}
		l.funcs = append(l.funcs, cf)
	}
	return nil
}

// encloses reports whether pattern sits at or under the layout's prefix.
func (l *Layout) encloses(pattern string) bool {
	if l.prefix == "/" {
		return true
	}
	return pattern == l.prefix || strings.HasPrefix(pattern, l.prefix+"/")
}

// directParent reports whether pattern is mounted directly under the layout:
// at most one path segment below the prefix.
func (l *Layout) directParent(pattern string) bool {
	if !l.encloses(pattern) {
		return false
	}
	rest := strings.TrimPrefix(pattern, l.prefix)
	rest = strings.Trim(rest, "/")
	return !strings.Contains(rest, "/")
}

func normalizePrefix(prefix string) string {
	if prefix == "" || prefix == "/" {
		return "/"
	}
	return strings.TrimSuffix(prefix, "/")
}
