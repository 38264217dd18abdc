package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Plural form suffixes, as defined by Unicode CLDR.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// pluralForms returns the keys to try for n in locale: an exact "zero" for 0,
// the CLDR cardinal form, then "other".
func pluralForms(locale string, n int) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	abs := n
	if abs < 0 {
		abs = -abs
	}

	forms := make([]string, 0, 3)
	if n == 0 {
		forms = append(forms, PluralZero)
	}
	if form := formName(plural.Cardinal.MatchPlural(tag, abs, 0, 0, 0, 0)); form != PluralZero || n != 0 {
		forms = append(forms, form)
	}
	if forms[len(forms)-1] != PluralOther {
		forms = append(forms, PluralOther)
	}
	return forms
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}
