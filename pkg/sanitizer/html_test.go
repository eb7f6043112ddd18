package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text passes through", "just a title", "just a title"},
		{"markup reduces to text", "<p>Hello <strong>world</strong></p>", "Hello world"},
		{"script bodies are dropped", `Hi<script>alert("x")</script>`, "Hi"},
		{"event handlers vanish with their tag", `<img src=x onerror=alert(1)>photo`, "photo"},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, sanitizer.StripHTML(tc.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("formatting tags survive", func(t *testing.T) {
		t.Parallel()

		in := "<p>Intro with <strong>bold</strong> and <em>emphasis</em></p><ul><li>one</li></ul>"
		require.Equal(t, in, sanitizer.SanitizeHTML(in))
	})

	t.Run("scripts and handlers are removed", func(t *testing.T) {
		t.Parallel()

		got := sanitizer.SanitizeHTML(`<p onclick="steal()">text</p><script>steal()</script>`)
		require.Equal(t, "<p>text</p>", got)
	})

	t.Run("javascript urls are rejected", func(t *testing.T) {
		t.Parallel()

		got := sanitizer.SanitizeHTML(`<a href="javascript:alert(1)">click</a>`)
		require.NotContains(t, got, "javascript:")
	})

	t.Run("links keep href and gain rel=nofollow", func(t *testing.T) {
		t.Parallel()

		got := sanitizer.SanitizeHTML(`<a href="https://example.com" target="_blank">site</a>`)
		require.Contains(t, got, `href="https://example.com"`)
		require.Contains(t, got, "nofollow")
		require.NotContains(t, got, "target")
	})
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("applies the given policy", func(t *testing.T) {
		t.Parallel()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("b")
		got := sanitizer.SanitizeHTMLCustom("<b>keep</b><i>drop</i>", policy)
		require.Equal(t, "<b>keep</b>drop", got)
	})

	t.Run("nil policy is a no-op", func(t *testing.T) {
		t.Parallel()

		in := "<script>untouched</script>"
		require.Equal(t, in, sanitizer.SanitizeHTMLCustom(in, nil))
	})
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type comment struct {
		Author string
		Body   string `sanitize:"html"`
		Raw    string `sanitize:"-"`
	}

	t.Run("tags pick the policy per field", func(t *testing.T) {
		t.Parallel()

		c := comment{
			Author: `Eve <script>x()</script>`,
			Body:   `<p>fine</p><script>x()</script>`,
			Raw:    `<script>kept as is</script>`,
		}
		require.NoError(t, sanitizer.SanitizeStruct(&c))
		require.Equal(t, "Eve ", c.Author)
		require.Equal(t, "<p>fine</p>", c.Body)
		require.Equal(t, `<script>kept as is</script>`, c.Raw)
	})

	t.Run("nested structs, pointers and slices are walked", func(t *testing.T) {
		t.Parallel()

		type post struct {
			Title    string
			Tags     []string
			Featured *comment
		}
		p := post{
			Title:    "<b>title</b>",
			Tags:     []string{"<i>go</i>", "web"},
			Featured: &comment{Author: "<u>eve</u>"},
		}
		require.NoError(t, sanitizer.SanitizeStruct(&p))
		require.Equal(t, "title", p.Title)
		require.Equal(t, []string{"go", "web"}, p.Tags)
		require.Equal(t, "eve", p.Featured.Author)
	})

	t.Run("non-struct targets error", func(t *testing.T) {
		t.Parallel()

		require.Error(t, sanitizer.SanitizeStruct(nil))
		require.Error(t, sanitizer.SanitizeStruct("not a pointer"))
		s := "nope"
		require.Error(t, sanitizer.SanitizeStruct(&s))

		var c *comment
		require.Error(t, sanitizer.SanitizeStruct(c))
	})
}
