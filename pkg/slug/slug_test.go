package slug_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		opts  []slug.Option
		want  string
	}{
		{"words join with hyphens", "Hello World", nil, "hello-world"},
		{"punctuation collapses", "Go 1.25 -- what's new?", nil, "go-1-25-what-s-new"},
		{"surrounding junk is trimmed", "  ...Final thoughts!  ", nil, "final-thoughts"},
		{"accents are flattened", "Crème brûlée at the café", nil, "creme-brulee-at-the-cafe"},
		{"special latin letters", "Łódź straße", nil, "lodz-strase"},
		{"non-latin scripts drop out", "日本語 post", nil, "post"},
		{"empty input", "", nil, ""},
		{"custom separator", "Hello World", []slug.Option{slug.Separator("_")}, "hello_world"},
		{"case preserved on demand", "Hello World", []slug.Option{slug.Lowercase(false)}, "Hello-World"},
		{"strip chars", "c++ rules", []slug.Option{slug.StripChars("+")}, "c-rules"},
		{
			"custom replacements run first",
			"tips & tricks",
			[]slug.Option{slug.CustomReplace(map[string]string{"&": "and"})},
			"tips-and-tricks",
		},
		{
			"max length cuts at a clean boundary",
			"a very long blog post title",
			[]slug.Option{slug.MaxLength(7)},
			"a-very",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, slug.Make(tc.input, tc.opts...))
		})
	}
}

func TestMake_Suffix(t *testing.T) {
	t.Parallel()

	suffixed := regexp.MustCompile(`^my-post-[a-z0-9]{8}$`)

	t.Run("random suffix of the requested length", func(t *testing.T) {
		t.Parallel()
		require.Regexp(t, suffixed, slug.Make("My Post", slug.WithSuffix(8)))
	})

	t.Run("suffixes make repeated titles distinct", func(t *testing.T) {
		t.Parallel()

		a := slug.Make("My Post", slug.WithSuffix(8))
		b := slug.Make("My Post", slug.WithSuffix(8))
		require.NotEqual(t, a, b)
	})

	t.Run("explicit suffix survives max length", func(t *testing.T) {
		t.Parallel()

		got := slug.Make("a very long blog post title", slug.WithSuffix(6), slug.MaxLength(16))
		require.LessOrEqual(t, len(got), 16)
		require.Regexp(t, regexp.MustCompile(`-[a-z0-9]{6}$`), got)
	})

	t.Run("mixed case suffix when lowercasing is off", func(t *testing.T) {
		t.Parallel()

		got := slug.Make("Post", slug.WithSuffix(20), slug.Lowercase(false))
		suffix := strings.TrimPrefix(got, "Post-")
		require.Len(t, suffix, 20)
		require.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]+$`), suffix)
	})
}

func TestMake_Guards(t *testing.T) {
	t.Parallel()

	t.Run("reserved slugs get a disambiguating suffix", func(t *testing.T) {
		t.Parallel()

		got := slug.Make("Admin", slug.ReservedSlugs("admin", "api"))
		require.NotEqual(t, "admin", got)
		require.Regexp(t, regexp.MustCompile(`^admin-[a-z0-9]{6}$`), got)
	})

	t.Run("non-reserved input is untouched", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "about-us", slug.Make("About Us", slug.ReservedSlugs("admin")))
	})

	t.Run("short slugs are padded to the minimum", func(t *testing.T) {
		t.Parallel()

		got := slug.Make("hey", slug.MinLength(10))
		require.GreaterOrEqual(t, len(got), 10)
		require.True(t, strings.HasPrefix(got, "hey-"))
	})

	t.Run("padding still honors the maximum", func(t *testing.T) {
		t.Parallel()

		got := slug.Make("hi", slug.MinLength(10), slug.MaxLength(8))
		require.LessOrEqual(t, len(got), 8)
	})
}
