// Package loom provides a request-scoped dependency injection and
// view-context composition framework for server-rendered Go web apps.
//
// Loom is designed around the principle of "declare, don't fetch": pages
// and layouts declare the values their views need, and the framework
// resolves them per request - from URL parameters, form fields, registered
// dependencies, and context processors - caching each dependency at most
// once per request.
//
// # Quick Start
//
// Create an application with loom.New(), declare pages and layouts, and
// call Run() to start the HTTP server:
//
//	app := loom.New(
//	    loom.WithDependency("current_user", LoadCurrentUser),
//	    loom.WithLayouts(
//	        loom.NewLayout("/",
//	            loom.WithInheritedContextKey("site_name", func() string { return "Acme" }),
//	        ),
//	    ),
//	    loom.WithPages(
//	        loom.NewPage("/", loom.WithPageView(HomeView)),
//	        loom.NewPage("/blog/{slug}",
//	            loom.WithPageContext(LoadPost),
//	            loom.WithPageView(PostView),
//	        ),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Injection
//
// Context functions, views, and dependency constructors are injectable
// callables. They take either no arguments or a single "deps struct" whose
// fields name what they need:
//
//	func LoadPost(deps struct {
//	    Slug  string   `inject:"slug"`         // URL parameter
//	    Posts *PostSvc                         // named dependency "posts"
//	    Draft bool     `inject:"draft,optional"`
//	}) (map[string]any, error) {
//	    post, err := deps.Posts.BySlug(deps.Slug)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return map[string]any{"post": post}, nil
//	}
//
// Untagged fields resolve by the snake_case form of the field name.
// Resolution consults providers in a fixed order: the request itself, URL
// parameters, form fields, custom providers, context values, and finally
// registered dependencies. Dependency results are memoized per request,
// and cycles are reported with the full chain.
//
// # Handlers
//
// Plain routes live alongside pages. Handlers implement the [Handler]
// interface to declare them:
//
//	func (h *API) Routes(r loom.Router) {
//	    r.GET("/api/posts", h.listPosts)
//	    r.POST("/api/posts", h.createPost)
//	}
//
//	func (h *API) listPosts(c loom.Context) error {
//	    return c.JSON(200, h.posts.All())
//	}
//
// # Startup Checks
//
// New() validates the dependency graph at startup: declared dependency
// cycles panic, and page parameters that no provider can ever satisfy are
// logged as warnings. Misconfiguration surfaces at boot, not in
// production traffic.
//
// # Shutdown
//
// Run() handles SIGINT/SIGTERM for graceful shutdown. Register cleanup
// with ShutdownHook:
//
//	app.Run(":8080",
//	    loom.Logger(logger),
//	    loom.ShutdownHook(func(ctx context.Context) error {
//	        return pool.Close()
//	    }),
//	)
//
// # Escape Hatch
//
// For advanced routing needs, Router() exposes the underlying chi router:
//
//	app.Router().Mount("/legacy", legacyHandler)
package loom
