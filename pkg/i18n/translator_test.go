package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	t.Parallel()

	b := newBundle(t,
		i18n.WithDefaultLanguage("en"),
		i18n.WithTranslations("en", "app", map[string]any{
			"title": "Dashboard",
			"inbox": map[string]string{
				"one":   "1 message",
				"other": "{{count}} messages",
			},
		}),
		i18n.WithTranslations("de", "app", map[string]any{
			"title": "Übersicht",
		}),
	)

	t.Run("pins language and namespace", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(b, "de", "app")
		require.Equal(t, "Übersicht", tr.T("title"))
		require.Equal(t, "de", tr.Language())
		require.Equal(t, "app", tr.Namespace())
	})

	t.Run("empty language uses the bundle default", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(b, "", "app")
		require.Equal(t, "Dashboard", tr.T("title"))
		require.Equal(t, "en", tr.Language())
	})

	t.Run("plural lookups", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(b, "en", "app")
		require.Equal(t, "1 message", tr.Tn("inbox", 1))
		require.Equal(t, "4 messages", tr.Tn("inbox", 4))
	})

	t.Run("TranslateMessage fits the validator hook", func(t *testing.T) {
		t.Parallel()

		b := newBundle(t, i18n.WithTranslations("en", "app", map[string]any{
			"validation": map[string]any{
				"min_length": "must be at least {{min}} characters",
			},
		}))
		tr := i18n.NewTranslator(b, "en", "app")
		require.Equal(t, "must be at least 8 characters",
			tr.TranslateMessage("validation.min_length", map[string]any{"min": 8}))
	})

	t.Run("nil bundle panics", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { i18n.NewTranslator(nil, "en", "app") })
	})
}
