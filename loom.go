package loom

import (
	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle: routing, dependency
	// resolution, page-context composition, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// Page declares a server-rendered route with injectable context funcs.
	Page = internal.Page

	// PageOption configures a Page.
	PageOption = internal.PageOption

	// Layout contributes context values to every page under a path prefix.
	Layout = internal.Layout

	// LayoutOption configures a Layout.
	LayoutOption = internal.LayoutOption

	// FormFactory builds the form value bound for a page request.
	FormFactory = internal.FormFactory

	// Provider resolves parameters from custom sources during injection.
	Provider = internal.Provider

	// ParamSpec describes a single parameter of an injectable callable.
	ParamSpec = internal.ParamSpec

	// ResolutionContext carries per-request state through parameter resolution.
	ResolutionContext = internal.ResolutionContext

	// CheckIssue is a startup diagnostic produced by the static checks.
	CheckIssue = internal.CheckIssue

	// HTTPError is a structured error with an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ValidationErrors is a collection of validation errors.
	ValidationErrors = internal.ValidationErrors

	// ResponseWriter wraps http.ResponseWriter with write tracking.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// SignatureError reports a callable unusable for injection.
	SignatureError = internal.SignatureError

	// CoercionError reports a URL parameter that failed type conversion.
	CoercionError = internal.CoercionError

	// UnresolvedParameterError reports a parameter no provider could satisfy.
	UnresolvedParameterError = internal.UnresolvedParameterError

	// DependencyCycleError reports a cycle detected during resolution.
	DependencyCycleError = internal.DependencyCycleError

	// DependencyError wraps an application error from a dependency
	// constructor so composition can degrade instead of failing the page.
	DependencyError = internal.DependencyError
)

// NoValue is the sentinel assigned to unresolved parameters under
// permissive resolution. Deps-struct fields holding NoValue keep their
// zero value (or declared default).
var NoValue = internal.NoValue

// Sentinel errors.
var (
	// ErrDuplicateDependency is returned when a dependency name is registered twice.
	ErrDuplicateDependency = internal.ErrDuplicateDependency

	// ErrIncompatibleValue is returned when a resolved value cannot be
	// assigned to the deps struct field it was resolved for.
	ErrIncompatibleValue = internal.ErrIncompatibleValue
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation: dependencies, pages, layouts, and
// processors must all be registered here. New panics on configuration
// errors (duplicate dependency names, invalid callables, declared
// dependency cycles) so misconfiguration is caught at startup.
//
// Example:
//
//	app := loom.New(
//	    loom.WithDependency("current_user", LoadCurrentUser),
//	    loom.WithLayouts(siteLayout),
//	    loom.WithPages(homePage, postPage),
//	)
//
//	err := app.Run(":8080", loom.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewPage declares a server-rendered page route.
//
// Example:
//
//	loom.NewPage("/blog/{slug}",
//	    loom.WithPageContext(LoadPost),
//	    loom.WithPageView(PostView),
//	)
func NewPage(pattern string, opts ...PageOption) *Page {
	return internal.NewPage(pattern, opts...)
}

// NewLayout declares a layout that contributes context values to every
// page whose route falls under the given path prefix.
//
// Example:
//
//	loom.NewLayout("/",
//	    loom.WithInheritedContextKey("site_name", func() string { return "Acme" }),
//	)
func NewLayout(prefix string, opts ...LayoutOption) *Layout {
	return internal.NewLayout(prefix, opts...)
}

// HTTP error helpers

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrBadRequest returns a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized returns a 401 error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden returns a 403 error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound returns a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrConflict returns a 409 error.
func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

// ErrUnprocessable returns a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal returns a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable returns a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// IsHTTPError reports whether err is (or wraps) an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError unwraps err into an HTTPError, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := loom.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param retrieves a typed URL parameter.
// Returns the zero value of T if the parameter is missing or unparseable.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
// Returns the zero value of T if the parameter is missing or unparseable.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a fallback.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}
