package i18n

import "strings"

// PluralRule maps a count to a CLDR plural category name.
type PluralRule func(n int) string

// CLDR plural category names. Catalog entries for Tn use these as sub-keys.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// DefaultPluralRule is used for languages without a specific rule.
var DefaultPluralRule PluralRule = func(n int) string {
	switch a := abs(n); {
	case n == 0:
		return PluralZero
	case a == 1:
		return PluralOne
	case a >= 2 && a <= 4:
		return PluralFew
	case a < 20:
		return PluralMany
	default:
		return PluralOther
	}
}

// RuleFor returns the plural rule for an ISO 639-1 language code, matching
// on the first two letters. Unknown languages get DefaultPluralRule.
func RuleFor(lang string) PluralRule {
	if len(lang) >= 2 {
		lang = strings.ToLower(lang[:2])
	}
	switch lang {
	case "en":
		return pluralEnglish
	case "pl", "ru", "cs", "uk", "hr", "sr", "sk", "sl", "bg":
		return pluralSlavic
	case "fr", "it", "pt":
		return pluralRomance
	case "de", "nl", "sv", "no", "da", "is", "es":
		return pluralGermanic
	case "ja", "zh", "ko", "th", "vi", "id", "ms":
		return pluralUninflected
	case "ar":
		return pluralArabic
	default:
		return DefaultPluralRule
	}
}

// sparserForms lists the categories to try when a catalog lacks the exact
// one, ordered toward the catch-all "other".
func sparserForms(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	default:
		return []string{PluralOther}
	}
}

func pluralEnglish(n int) string {
	switch {
	case n == 0:
		return PluralZero
	case abs(n) == 1:
		return PluralOne
	default:
		return PluralOther
	}
}

func pluralGermanic(n int) string {
	if abs(n) == 1 {
		return PluralOne
	}
	return PluralOther
}

func pluralRomance(n int) string {
	switch a := abs(n); {
	case n == 0 || a == 1:
		return PluralOne
	case a >= 1000000:
		return PluralMany
	default:
		return PluralOther
	}
}

func pluralSlavic(n int) string {
	a := abs(n)
	switch {
	case n == 0:
		return PluralZero
	case a == 1:
		return PluralOne
	case a%10 >= 2 && a%10 <= 4 && (a%100 < 12 || a%100 > 14):
		return PluralFew
	default:
		return PluralMany
	}
}

func pluralUninflected(int) string {
	return PluralOther
}

func pluralArabic(n int) string {
	a := abs(n)
	switch {
	case n == 0:
		return PluralZero
	case a == 1:
		return PluralOne
	case a == 2:
		return PluralTwo
	case a%100 >= 3 && a%100 <= 10:
		return PluralFew
	case a%100 >= 11:
		return PluralMany
	default:
		return PluralOther
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
