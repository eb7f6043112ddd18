package i18n

import "errors"

var (
	// ErrEmptyLanguage reports a missing language code in an option.
	ErrEmptyLanguage = errors.New("i18n: empty language")

	// ErrEmptyNamespace reports a missing namespace in an option.
	ErrEmptyNamespace = errors.New("i18n: empty namespace")

	// ErrNilPluralRule reports a nil rule passed to WithPluralRule.
	ErrNilPluralRule = errors.New("i18n: nil plural rule")

	// ErrInvalidFile reports a catalog file that cannot be parsed or sits
	// outside a language directory.
	ErrInvalidFile = errors.New("i18n: invalid translation file")
)
