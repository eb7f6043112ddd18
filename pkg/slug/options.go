package slug

type config struct {
	customReplace map[string]string
	separator     string
	stripChars    string
	reserved      []string
	maxLength     int
	minLength     int
	suffixLength  int
	lowercase     bool
}

// Option configures slug generation.
type Option func(*config)

// Separator sets the string inserted between words. Default is "-".
func Separator(sep string) Option {
	return func(c *config) {
		c.separator = sep
	}
}

// Lowercase controls case conversion. Enabled by default.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// MaxLength truncates the slug to at most n characters. Zero means unlimited.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// MinLength pads slugs shorter than n characters with a random suffix.
func MinLength(n int) Option {
	return func(c *config) {
		c.minLength = n
	}
}

// StripChars removes the given characters before slugification.
func StripChars(chars string) Option {
	return func(c *config) {
		c.stripChars = chars
	}
}

// CustomReplace applies string replacements before slugification, useful for
// symbols that carry meaning ("&" to "and").
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.customReplace = replacements
	}
}

// WithSuffix appends a random alphanumeric suffix of the given length for
// collision resistance.
func WithSuffix(length int) Option {
	return func(c *config) {
		c.suffixLength = length
	}
}

// ReservedSlugs appends a random suffix whenever the generated slug matches
// one of the given values (case-insensitive), keeping routes like "admin"
// from being shadowed by user content.
func ReservedSlugs(slugs ...string) Option {
	return func(c *config) {
		c.reserved = append(c.reserved, slugs...)
	}
}
