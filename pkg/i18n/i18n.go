package i18n

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// M carries placeholder values for T and Tn. Placeholders in catalog text
// use {{name}} syntax.
type M map[string]any

// Bundle is an immutable set of translation catalogs. Build it once with New
// and share it freely; every method is safe for concurrent use.
type Bundle struct {
	// table maps language → "namespace\x00key" → text.
	table       map[string]map[string]string
	rules       map[string]PluralRule
	onMissing   func(lang, namespace, key string)
	defaultLang string
	languages   []string
}

// Option configures a Bundle during construction.
type Option func(*Bundle) error

// New builds a Bundle from the given options. The default language is "en"
// unless WithDefaultLanguage says otherwise.
func New(opts ...Option) (*Bundle, error) {
	b := &Bundle{
		table:       make(map[string]map[string]string),
		rules:       make(map[string]PluralRule),
		defaultLang: "en",
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("i18n: %w", err)
		}
	}
	if len(b.languages) == 0 {
		b.languages = []string{b.defaultLang}
	}
	return b, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		b.defaultLang = lang
		return nil
	}
}

// WithLanguages declares the supported languages. The default language is
// always listed first; the rest follow in alphabetical order.
func WithLanguages(langs ...string) Option {
	return func(b *Bundle) error {
		seen := map[string]bool{b.defaultLang: true}
		rest := make([]string, 0, len(langs))
		for _, lang := range langs {
			if lang == "" || seen[lang] {
				continue
			}
			seen[lang] = true
			rest = append(rest, lang)
		}
		sort.Strings(rest)
		b.languages = append([]string{b.defaultLang}, rest...)
		return nil
	}
}

// WithTranslations merges a catalog for one language and namespace. Nested
// maps flatten to dot-separated keys.
func WithTranslations(lang, namespace string, catalog map[string]any) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		b.merge(lang, namespace, catalog)
		return nil
	}
}

// WithPluralRule overrides the plural rule for a language.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		b.rules[lang] = rule
		return nil
	}
}

// WithMissingKeyHandler installs a callback invoked whenever a lookup misses
// every fallback. Useful to surface untranslated keys during development.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(b *Bundle) error {
		b.onMissing = fn
		return nil
	}
}

// DefaultLanguage returns the bundle's fallback language.
func (b *Bundle) DefaultLanguage() string { return b.defaultLang }

// Languages returns the declared languages, default first.
func (b *Bundle) Languages() []string { return b.languages }

// T looks up key in the given language and namespace, interpolating
// placeholders. Misses fall back to the base language, then the default
// language, then the key itself.
func (b *Bundle) T(lang, namespace, key string, placeholders ...M) string {
	if text, ok := b.lookup(lang, namespace, key); ok {
		return interpolate(text, mergeM(placeholders))
	}
	if b.onMissing != nil {
		b.onMissing(lang, namespace, key)
	}
	return key
}

// Tn looks up the plural form of key for count n. The catalog entry is a
// group of sub-keys named after CLDR categories (key.one, key.other, ...);
// the language's plural rule picks the category, with sparse catalogs
// falling back toward "other". The count is always available as {{count}}.
func (b *Bundle) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	form := b.rule(lang)(n)

	text, ok := b.lookupPlural(lang, namespace, key, form)
	if !ok {
		if b.onMissing != nil {
			b.onMissing(lang, namespace, key)
		}
		return key
	}

	values := M{"count": n}
	maps.Copy(values, mergeM(placeholders))
	return interpolate(text, values)
}

// fallbackChain yields the languages to consult, most specific first.
func (b *Bundle) fallbackChain(lang string) [3]string {
	chain := [3]string{lang, "", ""}
	if base := baseLang(lang); base != lang {
		chain[1] = base
	}
	if lang != b.defaultLang && baseLang(lang) != b.defaultLang {
		chain[2] = b.defaultLang
	}
	return chain
}

func (b *Bundle) lookup(lang, namespace, key string) (string, bool) {
	for _, l := range b.fallbackChain(lang) {
		if l == "" {
			continue
		}
		if text, ok := b.table[l][entryKey(namespace, key)]; ok {
			return text, true
		}
	}
	return "", false
}

func (b *Bundle) lookupPlural(lang, namespace, key, form string) (string, bool) {
	for _, l := range b.fallbackChain(lang) {
		if l == "" {
			continue
		}
		if text, ok := b.table[l][entryKey(namespace, key+"."+form)]; ok {
			return text, true
		}
		for _, alt := range sparserForms(form) {
			if text, ok := b.table[l][entryKey(namespace, key+"."+alt)]; ok {
				return text, true
			}
		}
	}
	return "", false
}

// rule returns the plural rule for lang, falling back through the base
// language and the default language before the generic rule.
func (b *Bundle) rule(lang string) PluralRule {
	for _, l := range b.fallbackChain(lang) {
		if l == "" {
			continue
		}
		if r, ok := b.rules[l]; ok {
			return r
		}
	}
	if r, ok := b.rules[b.defaultLang]; ok {
		return r
	}
	return DefaultPluralRule
}

// merge flattens catalog into the language table and pins a plural rule for
// lang if none is set yet.
func (b *Bundle) merge(lang, namespace string, catalog map[string]any) {
	entries := b.table[lang]
	if entries == nil {
		entries = make(map[string]string)
		b.table[lang] = entries
	}
	flattenInto(entries, namespace, "", catalog)

	if _, ok := b.rules[lang]; !ok {
		b.rules[lang] = RuleFor(lang)
	}
}

// flattenInto writes catalog entries under namespace, joining nested map
// keys with dots.
func flattenInto(dst map[string]string, namespace, prefix string, catalog map[string]any) {
	for key, value := range catalog {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			dst[entryKey(namespace, full)] = v
		case map[string]any:
			flattenInto(dst, namespace, full, v)
		case map[string]string:
			for sub, text := range v {
				dst[entryKey(namespace, full+"."+sub)] = text
			}
		default:
			dst[entryKey(namespace, full)] = fmt.Sprintf("%v", v)
		}
	}
}

// entryKey joins namespace and key with a separator that cannot appear in
// either.
func entryKey(namespace, key string) string {
	return namespace + "\x00" + key
}

// baseLang strips a region subtag: "en-US" → "en".
func baseLang(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}

func mergeM(ms []M) M {
	switch len(ms) {
	case 0:
		return nil
	case 1:
		return ms[0]
	}
	merged := make(M)
	for _, m := range ms {
		maps.Copy(merged, m)
	}
	return merged
}

// interpolate substitutes {{name}} placeholders in text. Unknown
// placeholders are left as-is.
func interpolate(text string, values M) string {
	if len(values) == 0 {
		return text
	}
	for name, value := range values {
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprintf("%v", value))
	}
	return text
}
