package loom

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/loom/internal"
)

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare plain routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithPages registers server-rendered pages.
func WithPages(pages ...*Page) Option {
	return internal.WithPages(pages...)
}

// WithLayouts registers layouts that contribute context values to pages
// under their path prefix.
func WithLayouts(layouts ...*Layout) Option {
	return internal.WithLayouts(layouts...)
}

// WithDependency registers a named dependency constructor. The constructor
// is an injectable callable; its result is cached per request.
//
// Example:
//
//	loom.WithDependency("current_user", func(deps struct {
//	    SessionID string `inject:"session_id"`
//	}) (*User, error) {
//	    return users.BySession(deps.SessionID)
//	})
func WithDependency(name string, fn any) Option {
	return internal.WithDependency(name, fn)
}

// WithProvider registers a custom parameter provider, consulted after the
// built-in request, URL-parameter, and form providers.
func WithProvider(p Provider) Option {
	return internal.WithProvider(p)
}

// WithContextProcessor registers a function whose results are merged into
// every page's context map. Processor values never override values already
// present.
func WithContextProcessor(fn any) Option {
	return internal.WithContextProcessor(fn)
}

// WithPermissiveResolution makes unresolved parameters resolve to NoValue
// instead of failing the request. Deps-struct fields then keep their zero
// value or declared default.
func WithPermissiveResolution() Option {
	return internal.WithPermissiveResolution()
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	loom.New(
//	    loom.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	loom.New(
//	    loom.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Page options

// WithPageContext adds an unkeyed context function to a page. The function
// must return a map[string]any (plus optional error); its entries are merged
// into the page context.
func WithPageContext(fn any) PageOption {
	return internal.WithPageContext(fn)
}

// WithPageContextKey adds a keyed context function to a page. The returned
// value is stored under the given key.
func WithPageContextKey(key string, fn any) PageOption {
	return internal.WithPageContextKey(key, fn)
}

// WithPageDefaults sets static default values, applied before any context
// function runs.
func WithPageDefaults(defaults map[string]any) PageOption {
	return internal.WithPageDefaults(defaults)
}

// WithPageView sets the view function. It is an injectable callable that
// must return a Component.
func WithPageView(fn any) PageOption {
	return internal.WithPageView(fn)
}

// WithPageForm sets the form factory, whose result becomes available to
// injection under the name "form".
func WithPageForm(factory FormFactory) PageOption {
	return internal.WithPageForm(factory)
}

// WithPageMethods sets the HTTP methods the page responds to.
// Defaults to GET.
func WithPageMethods(methods ...string) PageOption {
	return internal.WithPageMethods(methods...)
}

// Layout options

// WithLayoutContext adds an unkeyed context function visible to direct
// children of the layout's prefix.
func WithLayoutContext(fn any) LayoutOption {
	return internal.WithLayoutContext(fn)
}

// WithLayoutContextKey adds a keyed context function visible to direct
// children of the layout's prefix.
func WithLayoutContextKey(key string, fn any) LayoutOption {
	return internal.WithLayoutContextKey(key, fn)
}

// WithInheritedContext adds an unkeyed context function that cascades to
// every descendant page of the layout's prefix.
func WithInheritedContext(fn any) LayoutOption {
	return internal.WithInheritedContext(fn)
}

// WithInheritedContextKey adds a keyed context function that cascades to
// every descendant page of the layout's prefix.
func WithInheritedContextKey(key string, fn any) LayoutOption {
	return internal.WithInheritedContextKey(key, fn)
}

// HTTPError options

// WithTitle sets a short human-readable title on an HTTPError.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithDetail sets a detailed description on an HTTPError.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithErrorCode sets a machine-readable code on an HTTPError.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithError attaches an underlying error to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithRequestID tags an HTTPError with the request identifier for
// correlation with logs.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// Run options

// Logger sets the runtime logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run during server startup.
// Hooks are called in the order they were registered, before the port is
// bound. If any hook fails, the server stops and returns the error.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
