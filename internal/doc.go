// Package internal provides the core types and implementation for the loom framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/loom" instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, HTTP routing, page
//     composition, and graceful shutdown
//   - Context: Provides request/response access and helper methods
//   - Page, Layout: Declarative route-to-view mappings with context functions
//   - Provider: One source of injectable parameter values
//   - Resolver: Walks the provider chain for each parameter of a callable
//   - Composer: Assembles the per-request context map in staged order
//   - Router, Handler, HandlerFunc, Middleware, ErrorHandler: plain HTTP plumbing
//
// # Injectable Callables
//
// Context functions, named dependencies, and views declare their inputs as
// fields of a single deps struct. Field names (snake_cased) or inject tags
// name the parameter; the provider chain supplies the values:
//
//	func(d struct {
//	    Req      *http.Request
//	    Slug     string
//	    SiteName string `inject:"site_name"`
//	    Posts    *PostRepo `inject:"posts"`
//	    Limit    int       `inject:",default=20"`
//	}) (map[string]any, error)
//
// The provider order is fixed: request handle (by type), URL parameters
// (with string-to-type coercion), the page's form instance, user-registered
// providers, explicit context keys, implicit context names, and finally
// named dependencies. The first provider that claims a parameter wins.
//
// Named dependencies are computed at most once per request and cached in the
// request scope; circular chains fail with a DependencyCycleError naming the
// full path.
//
// # Context Composition
//
// Each page render composes its context in stages: page defaults, enclosing
// layouts (outermost first; inherited functions cascade to all descendants),
// the page's own functions, app-wide processors (which never override), and
// finally caller-supplied explicit values. An error or panic inside a
// context function is logged and degrades that single contribution;
// resolution errors abort the request.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any
// function that expects a standard library context. The Deadline, Done,
// Err, and Value methods delegate to the underlying request context.
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler. Configuration
// mistakes (bad signatures, duplicate dependency names, static cycles) panic
// during New, before the server accepts its first request.
//
// See the loom package documentation for the public API and usage examples.
package internal
