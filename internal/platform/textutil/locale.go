package textutil

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/domain"
)

// The storefront ships in Arabic and French only; Arabic is the default.
var (
	localeArabic = language.Arabic
	localeFrench = language.French

	supportedLocales = []language.Tag{localeArabic, localeFrench}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

const (
	currencySymbolArabic = "د.ت"
	currencySymbolFrench = "DT"
)

// MatchLocale resolves an Accept-Language style tag list to one of the
// supported storefront locales, defaulting to Arabic for anything else.
func MatchLocale(raw string) language.Tag {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return localeArabic
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return localeArabic
	}
	_, index, _ := localeMatcher.Match(tags...)
	return supportedLocales[index]
}

// Localize picks the side of a bilingual value matching the locale.
func Localize(text domain.BilingualText, locale language.Tag) string {
	if locale == localeFrench {
		return text.In("fr")
	}
	return text.In("ar")
}

// DisplayAmount renders a millime amount for the given locale, e.g.
// "157.000 د.ت" in Arabic and "157.000 DT" in French.
func DisplayAmount(amount domain.Millimes, locale language.Tag) string {
	symbol := currencySymbolArabic
	if locale == localeFrench {
		symbol = currencySymbolFrench
	}
	return amount.String() + " " + symbol
}
