package domain

import "golang.org/x/text/language"

// Locale is a supported reflection language
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleDarija  Locale = "ar-darija"
	LocaleFrench  Locale = "fr"
	LocaleEnglish Locale = "en"
)

// DefaultLocale is used when a client locale cannot be matched
const DefaultLocale = LocaleEnglish

// supportedTags mirrors the supported locales for BCP 47 matching.
// Darija is not a registered tag, so it matches through Arabic.
var supportedTags = []language.Tag{
	language.Arabic,
	language.French,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedTags)

// IsValidLocale reports whether l is one of the supported locales
func IsValidLocale(l Locale) bool {
	switch l {
	case LocaleArabic, LocaleDarija, LocaleFrench, LocaleEnglish:
		return true
	}
	return false
}

// NormalizeLocale maps an arbitrary client locale tag onto a supported locale.
// Exact values pass through; anything else is matched by language family
// (e.g. "fr-FR" -> "fr", "ar-MA" -> "ar"). Unmatchable input falls back to
// the default locale.
func NormalizeLocale(raw string) Locale {
	if IsValidLocale(Locale(raw)) {
		return Locale(raw)
	}

	tag, err := language.Parse(raw)
	if err != nil {
		return DefaultLocale
	}

	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}

	switch supportedTags[idx] {
	case language.Arabic:
		return LocaleArabic
	case language.French:
		return LocaleFrench
	default:
		return LocaleEnglish
	}
}
