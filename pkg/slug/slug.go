package slug

import (
	"crypto/rand"
	mrand "math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultSuffixLength = 6

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	mixedAlnum = lowerAlnum + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// normalizer decomposes accented characters and strips combining marks,
// turning "café" into "cafe".
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// specialReplacer handles Latin letters that have no NFD decomposition.
var specialReplacer = strings.NewReplacer(
	"ß", "s",
	"æ", "a", "Æ", "A",
	"œ", "o", "Œ", "O",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "t", "Þ", "T",
)

// Make converts text into a URL-safe slug. The zero configuration lowercases
// the input, joins words with "-", and strips everything that is not ASCII
// alphanumeric. See the package documentation for the available options.
func Make(input string, opts ...Option) string {
	cfg := config{
		separator: "-",
		lowercase: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := input
	for from, to := range cfg.customReplace {
		s = strings.ReplaceAll(s, from, to)
	}
	if cfg.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}
	s = normalize(s)
	if cfg.lowercase {
		s = strings.ToLower(s)
	}

	base := buildSlug(s, cfg.separator)

	suffixLen := cfg.suffixLength
	explicit := suffixLen > 0
	if !explicit && isReserved(base, cfg.reserved) {
		suffixLen = defaultSuffixLength
	}

	result := base
	if suffixLen > 0 {
		result = appendSuffix(base, cfg, suffixLen, explicit)
	} else if cfg.maxLength > 0 && len(result) > cfg.maxLength {
		result = trimSeparator(result[:cfg.maxLength], cfg.separator)
	}

	if cfg.minLength > 0 && len(result) < cfg.minLength {
		result = padToMinimum(result, cfg)
	}

	return result
}

func normalize(s string) string {
	s = specialReplacer.Replace(s)
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		return s
	}
	return out
}

// buildSlug keeps ASCII alphanumeric runs and collapses everything between
// them into a single separator. Leading and trailing separators never appear.
func buildSlug(s, sep string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteString(sep)
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

func isReserved(s string, reserved []string) bool {
	for _, r := range reserved {
		if strings.EqualFold(s, r) {
			return true
		}
	}
	return false
}

// appendSuffix joins base and a random suffix while honoring maxLength.
// With keepSuffix the suffix length is guaranteed and the base gives way
// (explicit WithSuffix); otherwise the base is preserved and the suffix
// shrinks to fit (reserved-slug collisions).
func appendSuffix(base string, cfg config, length int, keepSuffix bool) string {
	suffix := generateSuffix(length, cfg.lowercase)
	sep := cfg.separator
	max := cfg.maxLength

	if base == "" {
		if max > 0 && len(suffix) > max {
			return suffix[:max]
		}
		return suffix
	}
	if max <= 0 {
		return base + sep + suffix
	}

	if keepSuffix {
		avail := max - len(suffix) - len(sep)
		if avail < 1 {
			if len(suffix) > max {
				return suffix[:max]
			}
			return suffix
		}
		if len(base) > avail {
			base = trimSeparator(base[:avail], sep)
		}
		return base + sep + suffix
	}

	avail := max - len(base) - len(sep)
	if avail >= 1 {
		if len(suffix) > avail {
			suffix = suffix[:avail]
		}
		return base + sep + suffix
	}
	cut := max - len(sep) - len(suffix)
	if cut < 1 {
		cut = 1
	}
	if cut < len(base) {
		base = trimSeparator(base[:cut], sep)
	}
	return base + sep + suffix
}

// padToMinimum appends a fixed-length random suffix when the slug falls
// short of the configured minimum.
func padToMinimum(result string, cfg config) string {
	suffix := generateSuffix(defaultSuffixLength, cfg.lowercase)
	if result == "" {
		if cfg.maxLength > 0 && len(suffix) > cfg.maxLength {
			return suffix[:cfg.maxLength]
		}
		return suffix
	}
	sep := cfg.separator
	if cfg.maxLength > 0 {
		avail := cfg.maxLength - len(result) - len(sep)
		if avail < 1 {
			return result
		}
		if len(suffix) > avail {
			suffix = suffix[:avail]
		}
	}
	return result + sep + suffix
}

func trimSeparator(s, sep string) string {
	if sep == "" {
		return s
	}
	for strings.HasSuffix(s, sep) {
		s = s[:len(s)-len(sep)]
	}
	return s
}

func generateSuffix(length int, lowercase bool) string {
	if length <= 0 {
		return ""
	}
	charset := mixedAlnum
	if lowercase {
		charset = lowerAlnum
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = charset[mrand.IntN(len(charset))]
		}
		return string(buf)
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}
	return string(buf)
}
