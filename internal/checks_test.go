package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckStaticCycles(t *testing.T) {
	t.Parallel()

	t.Run("clean graph yields no issues", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterDependency("session", func() string { return "s" }))
		require.NoError(t, reg.RegisterDependency("user", func(deps struct {
			Session string
		}) string {
			return deps.Session
		}))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("direct cycle is an error", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterDependency("a", func(deps struct {
			B string `inject:"b"`
		}) string {
			return deps.B
		}))
		require.NoError(t, reg.RegisterDependency("b", func(deps struct {
			A string `inject:"a"`
		}) string {
			return deps.A
		}))

		issues := RunChecks(reg)
		require.Len(t, issues, 1)
		require.Equal(t, SeverityError, issues[0].Severity)
		require.Equal(t, "loom.E001", issues[0].Code)
		require.Contains(t, issues[0].Message, "a -> b -> a")
	})

	t.Run("self cycle is an error", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterDependency("a", func(deps struct {
			A string `inject:"a"`
		}) string {
			return deps.A
		}))

		issues := RunChecks(reg)
		require.Len(t, issues, 1)
		require.Equal(t, "loom.E001", issues[0].Code)
		require.Contains(t, issues[0].Message, "a -> a")
	})

	t.Run("edge to non-dependency name is ignored", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterDependency("a", func(deps struct {
			Slug string
		}) string {
			return deps.Slug
		}))

		require.Empty(t, RunChecks(reg))
	})
}

func TestCheckUnresolvableParams(t *testing.T) {
	t.Parallel()

	addPage := func(t *testing.T, reg *Registry, p *Page) {
		t.Helper()
		require.NoError(t, reg.AddPage(p))
	}

	t.Run("unknown parameter warns", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		addPage(t, reg, NewPage("/", WithPageContextKey("x", func(deps struct {
			Mystery string
		}) string {
			return deps.Mystery
		})))

		issues := RunChecks(reg)
		require.Len(t, issues, 1)
		require.Equal(t, SeverityWarning, issues[0].Severity)
		require.Equal(t, "loom.W001", issues[0].Code)
		require.Contains(t, issues[0].Message, `"mystery"`)
	})

	t.Run("route parameters are known", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		addPage(t, reg, NewPage("/blog/{slug}", WithPageContextKey("post", func(deps struct {
			Slug string
		}) string {
			return deps.Slug
		})))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("regex-constrained route parameters are known", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		addPage(t, reg, NewPage("/post/{id:[0-9]+}", WithPageContextKey("post", func(deps struct {
			ID int
		}) string {
			return ""
		})))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("dependencies and defaults are known", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterDependency("repo", func() string { return "" }))
		addPage(t, reg, NewPage("/",
			WithPageDefaults(map[string]any{"title": "t"}),
			WithPageContextKey("x", func(deps struct {
				Repo  string
				Title string `inject:"title"`
			}) string {
				return deps.Repo + deps.Title
			}),
		))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("in-scope layout keys are known", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.AddLayout(NewLayout("/",
			WithInheritedContextKey("site_name", func() string { return "Acme" }),
		)))
		addPage(t, reg, NewPage("/deep/nested/page", WithPageContextKey("x", func(deps struct {
			SiteName string
		}) string {
			return deps.SiteName
		})))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("out-of-scope layout keys warn", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		require.NoError(t, reg.AddLayout(NewLayout("/admin",
			WithLayoutContextKey("section", func() string { return "admin" }),
		)))
		addPage(t, reg, NewPage("/admin/users/{id}/edit", WithPageContextKey("x", func(deps struct {
			Section string
		}) string {
			return deps.Section
		})))

		issues := RunChecks(reg)
		require.Len(t, issues, 1)
		require.Equal(t, "loom.W001", issues[0].Code)
	})

	t.Run("request-typed and optional parameters never warn", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		addPage(t, reg, NewPage("/", WithPageContextKey("x", func(deps struct {
			Ctx   Context
			Limit int `inject:"limit,optional"`
		}) string {
			return ""
		})))

		require.Empty(t, RunChecks(reg))
	})

	t.Run("form is known when the page declares a factory", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		addPage(t, reg, NewPage("/login",
			WithPageForm(func(c Context) (any, error) { return nil, nil }),
			WithPageContextKey("x", func(deps struct {
				Form any `inject:"form"`
			}) string {
				return ""
			}),
		))

		require.Empty(t, RunChecks(reg))
	})
}

func TestRouteParamNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		want    []string
	}{
		{"/", nil},
		{"/blog/{slug}", []string{"slug"}},
		{"/post/{id:[0-9]+}", []string{"id"}},
		{"/a/{x}/b/{y}", []string{"x", "y"}},
		{"/files/*", nil},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, routeParamNames(tc.pattern), "pattern %q", tc.pattern)
	}
}
