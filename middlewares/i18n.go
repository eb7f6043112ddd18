package middlewares

import (
	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/pkg/i18n"
)

// langCookie is the cookie consulted by the default language extractor.
const langCookie = "lang"

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Namespace    string
	Extractor    internal.Extractor
	extractorSet bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the namespace the request translator reads from.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Namespace = ns
	}
}

// WithI18nExtractor replaces the default cookie-then-header language detection.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage returns an ExtractorSource that negotiates the
// Accept-Language header against the available languages.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.ParseAcceptLanguage(header, available), true
	}
}

// I18n returns middleware that resolves the visitor's language, builds a
// Translator bound to it, and stores both in the request context. Language
// detection checks the "lang" cookie first, then the Accept-Language header,
// unless WithI18nExtractor overrides the chain.
func I18n(bundle *i18n.Bundle, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromCookie(langCookie),
			FromAcceptLanguage(bundle.Languages()),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok || lang == "" {
				lang = bundle.DefaultLanguage()
			}

			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(bundle, lang, cfg.Namespace))
			c.Set(internal.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the request translator, or nil when the I18n
// middleware is not installed.
func GetTranslator(c internal.Context) *i18n.Translator {
	if v, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// GetLanguage returns the resolved language, or "" when the I18n middleware
// is not installed.
func GetLanguage(c internal.Context) string {
	if v, ok := c.Get(internal.LanguageKey{}).(string); ok {
		return v
	}
	return ""
}
