// Package i18n holds translation catalogs and answers lookups by language,
// namespace, and key.
//
// A Bundle is built once from options and never mutated afterwards, so it can
// be shared across requests without locking. Lookups fall back from the
// requested language tag to its base language ("en-US" to "en"), then to the
// bundle's default language, and finally to the key itself:
//
//	b, err := i18n.New(
//	    i18n.WithDefaultLanguage("en"),
//	    i18n.WithTranslations("en", "shop", map[string]any{
//	        "cart": map[string]any{
//	            "title": "Your cart",
//	            "items": map[string]string{
//	                "zero":  "Cart is empty",
//	                "one":   "1 item",
//	                "other": "{{count}} items",
//	            },
//	        },
//	    }),
//	)
//
//	b.T("en", "shop", "cart.title")        // "Your cart"
//	b.Tn("en", "shop", "cart.items", 3)    // "3 items"
//
// Nested maps flatten to dot-separated keys. Placeholders use {{name}} and
// are filled from i18n.M maps. Catalogs can also be loaded from JSON or YAML
// files on any fs.FS via WithJSONDir and WithYAMLDir.
//
// Translator pins a language and namespace for the duration of a request;
// ParseAcceptLanguage picks the best supported language for an incoming
// Accept-Language header.
package i18n
