package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/loom/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithPages registers page definitions. Pages are compiled and validated
// during New; an invalid page panics.
func WithPages(pages ...*Page) Option {
	return func(a *App) {
		a.pageDefs = append(a.pageDefs, pages...)
	}
}

// WithLayouts registers layout definitions.
func WithLayouts(layouts ...*Layout) Option {
	return func(a *App) {
		a.layoutDefs = append(a.layoutDefs, layouts...)
	}
}

// WithDependency registers a named dependency callable. Its result is
// resolvable by name from any injectable callable, computed at most once
// per request.
//
// Example:
//
//	loom.WithDependency("current_user", func(d struct {
//	    Req *http.Request
//	}) (*User, error) { ... })
func WithDependency(name string, fn any) Option {
	return func(a *App) {
		a.depDefs = append(a.depDefs, depDef{name: name, fn: fn})
	}
}

// WithProvider appends a custom parameter provider. Custom providers run
// after the built-in request, URL-parameter, and form providers, and before
// context and dependency lookup.
func WithProvider(p Provider) Option {
	return func(a *App) {
		a.registry.RegisterProvider(p)
	}
}

// WithContextProcessor registers an app-wide context processor. Processors
// contribute to every page's context but never override page- or
// layout-provided keys. The function must return map[string]any.
func WithContextProcessor(fn any) Option {
	return func(a *App) {
		a.processorDefs = append(a.processorDefs, fn)
	}
}

// WithPermissiveResolution makes unresolvable required parameters inject
// their zero value instead of failing the request. The default is strict:
// an unresolved parameter is an UnresolvedParameterError.
func WithPermissiveResolution() Option {
	return func(a *App) {
		a.policy = PolicyPermissive
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
//
// Example:
//
//	loom.WithErrorHandler(func(c loom.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
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
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	loom.New(
//	    loom.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
