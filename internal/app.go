package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/loom/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle: HTTP routing, middleware,
// page composition, dependency resolution, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	registry                *Registry
	resolver                *Resolver
	composer                *Composer
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	logger                  *slog.Logger
	pagesByPattern          map[string]*Page
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
	depDefs                 []depDef
	processorDefs           []any
	pageDefs                []*Page
	layoutDefs              []*Layout
	policy                  Policy
}

// depDef is a named dependency registration captured by options.
type depDef struct {
	fn   any
	name string
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options and panics on any
// configuration problem: invalid callable signatures, duplicate dependency
// names, or dependency cycles. Configuration bugs should stop the process
// before it serves a single request.
//
// Example:
//
//	app := loom.New(
//	    loom.WithDependency("posts", newPostRepo),
//	    loom.WithLayouts(rootLayout),
//	    loom.WithPages(homePage, blogPage),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:         chi.NewRouter(),
		registry:       NewRegistry(),
		logger:         logger.NewNope(), // Default: noop logger (before options)
		pagesByPattern: make(map[string]*Page),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.buildRegistry()
	a.resolver = NewResolver(a.registry, a.policy)
	a.composer = NewComposer(a.resolver, a.registry, a.logger)

	a.runChecks()
	a.setupRoutes()
	return a
}

// buildRegistry compiles everything the options collected. Registration
// errors are programmer mistakes, so they panic.
func (a *App) buildRegistry() {
	for _, d := range a.depDefs {
		if err := a.registry.RegisterDependency(d.name, d.fn); err != nil {
			panic(fmt.Sprintf("loom: %v", err))
		}
	}
	for _, fn := range a.processorDefs {
		if err := a.registry.RegisterProcessor(fn); err != nil {
			panic(fmt.Sprintf("loom: %v", err))
		}
	}
	for _, l := range a.layoutDefs {
		if err := a.registry.AddLayout(l); err != nil {
			panic(fmt.Sprintf("loom: %v", err))
		}
	}
	for _, p := range a.pageDefs {
		if err := a.registry.AddPage(p); err != nil {
			panic(fmt.Sprintf("loom: %v", err))
		}
		a.pagesByPattern[p.pattern] = p
	}
}

// runChecks runs the static configuration checks. Error-severity issues
// panic; warnings go to the logger.
func (a *App) runChecks() {
	for _, issue := range RunChecks(a.registry) {
		if issue.Severity == SeverityError {
			panic("loom: " + issue.String())
		}
		a.logger.Warn("configuration check",
			slog.String("code", issue.Code),
			slog.String("issue", issue.Message),
		)
	}
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", loom.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	shutdownHooks := append(cfg.shutdownHooks, func(context.Context) error {
		return a.resolver.Close()
	})

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware, pages, and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, p := range a.registry.Pages() {
		h := a.pageHandler(p)
		for _, method := range p.methods {
			switch method {
			case http.MethodGet:
				r.GET(p.pattern, h)
			case http.MethodPost:
				r.POST(p.pattern, h)
			case http.MethodPut:
				r.PUT(p.pattern, h)
			case http.MethodPatch:
				r.PATCH(p.pattern, h)
			case http.MethodDelete:
				r.DELETE(p.pattern, h)
			default:
				panic(fmt.Sprintf("loom: page %s: unsupported method %q", p.pattern, method))
			}
		}
	}

	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// pageHandler builds the HandlerFunc serving one page: bind the form (when
// declared), compose the context, then render the view. Pages without a
// view respond with the composed context as JSON, which keeps data-only
// pages and tests useful.
func (a *App) pageHandler(p *Page) HandlerFunc {
	return func(c Context) error {
		var form any
		if p.formFactory != nil {
			f, err := p.formFactory(c)
			if err != nil {
				return ErrBadRequest("invalid form submission", WithError(err))
			}
			form = f
		}

		rc := NewResolutionContext(c, c.Params(), form)

		data, err := a.composer.Compose(rc, p, nil)
		if err != nil {
			return asPageError(err)
		}

		if p.view == nil {
			return c.JSON(http.StatusOK, data)
		}

		out, err := a.resolver.Invoke(p.view, rc, nil)
		if err != nil {
			return asPageError(err)
		}
		component, ok := out.(Component)
		if !ok || component == nil {
			return ErrInternal("view produced no component")
		}
		return c.Render(http.StatusOK, component)
	}
}

// asPageError maps resolution errors to HTTP errors. A coercion failure
// means the URL addresses a resource that cannot exist, so it becomes 404.
// Everything else is a server-side configuration or runtime problem.
func asPageError(err error) error {
	var coercion *CoercionError
	if errors.As(err, &coercion) {
		return ErrNotFound("page not found", WithError(err))
	}
	return err
}

// PageContext composes the context map for the page registered at pattern,
// applying vars as explicit values with the highest priority. Useful for
// rendering a page's data outside its own route (partials, feeds, tests).
func (a *App) PageContext(c Context, pattern string, vars map[string]any) (map[string]any, error) {
	p, ok := a.pagesByPattern[pattern]
	if !ok {
		return nil, fmt.Errorf("loom: no page registered at %s", pattern)
	}
	rc := NewResolutionContext(c, c.Params(), nil)
	return a.composer.Compose(rc, p, vars)
}

// Invoke resolves fn's parameters against the current request and calls it.
// Overrides win over every provider and consult none of them.
func (a *App) Invoke(c Context, fn any, overrides map[string]any) (any, error) {
	call, err := a.resolver.Callable(fn)
	if err != nil {
		return nil, err
	}
	rc := NewResolutionContext(c, c.Params(), nil)
	return a.resolver.Invoke(call, rc, overrides)
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}
	if httpErr := AsHTTPError(err); httpErr != nil {
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}
	http.Error(c.Response(), "Internal Server Error", http.StatusInternalServerError)
}
