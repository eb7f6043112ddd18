package i18n

// Translator pins a Bundle to one language and namespace, the shape a single
// request works with: resolve the language once, then translate by key.
type Translator struct {
	bundle    *Bundle
	language  string
	namespace string
}

// NewTranslator builds a Translator for the given language and namespace.
// An empty language falls back to the bundle's default.
func NewTranslator(b *Bundle, language, namespace string) *Translator {
	if b == nil {
		panic("i18n: nil bundle")
	}
	if language == "" {
		language = b.DefaultLanguage()
	}
	return &Translator{bundle: b, language: language, namespace: namespace}
}

// T translates key in the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.bundle.T(t.language, t.namespace, key, placeholders...)
}

// Tn translates the plural form of key for count n.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.bundle.Tn(t.language, t.namespace, key, n, placeholders...)
}

// TranslateMessage translates key with a single placeholder map. The
// signature matches validator.TranslateFunc so a Translator can localize
// validation errors directly:
//
//	ve.Translate(tr.TranslateMessage)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.bundle.T(t.language, t.namespace, key, values)
}

// Language returns the pinned language.
func (t *Translator) Language() string { return t.language }

// Namespace returns the pinned namespace.
func (t *Translator) Namespace() string { return t.namespace }
