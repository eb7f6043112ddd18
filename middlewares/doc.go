// Package middlewares provides HTTP middleware for loom applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates new ones using ULID.
//
//	app := loom.New(
//	    loom.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := loom.New(
//	    loom.WithLogger("web", middlewares.RequestIDExtractor()),
//	    loom.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics and converts them to typed errors. The PanicError
// can be inspected by the global ErrorHandler:
//
//	app := loom.New(
//	    loom.WithMiddleware(
//	        middlewares.Recover(),
//	    ),
//	    loom.WithErrorHandler(func(c loom.Context, err error) error {
//	        if pe, ok := middlewares.AsPanicError(err); ok {
//	            c.LogError("panic", "value", pe.Value, "stack", string(pe.Stack))
//	            return c.Error(500, "Internal Server Error")
//	        }
//	        return err
//	    }),
//	)
//
// # I18n
//
// I18n resolves the visitor's language (cookie first, then Accept-Language),
// builds a Translator, and stores both in the request context so views and
// injected page-context functions can call c.T and c.Tn:
//
//	app := loom.New(
//	    loom.WithMiddleware(
//	        middlewares.I18n(i18nService, middlewares.WithI18nNamespace("web")),
//	    ),
//	)
//
// Middleware runs before page-context composition, so values it stores are
// visible to context-name and context-key resolution.
package middlewares
