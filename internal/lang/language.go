// Package lang validates and normalizes language codes for speech
// synthesis. Synthesis voices are keyed by full BCP-47 locales
// (e.g. "pt-BR"), so bare base codes are expanded to a default region.
package lang

import (
	"fmt"
	"strings"
)

// validLocales lists the synthesis locales with voice coverage.
// Keys are canonical BCP-47 form.
var validLocales = map[string]string{
	"pt-BR": "Portuguese (Brazil)",
	"pt-PT": "Portuguese (Portugal)",
	"en-US": "English (United States)",
	"en-GB": "English (United Kingdom)",
	"en-AU": "English (Australia)",
	"es-ES": "Spanish (Spain)",
	"es-US": "Spanish (United States)",
	"fr-FR": "French (France)",
	"fr-CA": "French (Canada)",
	"de-DE": "German (Germany)",
	"it-IT": "Italian (Italy)",
	"ja-JP": "Japanese (Japan)",
	"ko-KR": "Korean (South Korea)",
	"nl-NL": "Dutch (Netherlands)",
	"pl-PL": "Polish (Poland)",
	"ru-RU": "Russian (Russia)",
}

// defaultRegions maps bare base codes to the locale used when no region
// is given.
var defaultRegions = map[string]string{
	"pt": "pt-BR",
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"it": "it-IT",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"nl": "nl-NL",
	"pl": "pl-PL",
	"ru": "ru-RU",
}

// Canonical normalizes a user-supplied language code to the canonical
// locale form: lowercase base, uppercase region ("pt-br" -> "pt-BR"),
// bare base codes expanded via defaultRegions ("pt" -> "pt-BR").
// Returns ErrInvalid when the code has no voice coverage.
func Canonical(code string) (string, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalid)
	}

	c = strings.ReplaceAll(c, "_", "-")
	parts := strings.SplitN(c, "-", 2)

	base := strings.ToLower(parts[0])
	if len(parts) == 1 {
		locale, ok := defaultRegions[base]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalid, code)
		}
		return locale, nil
	}

	locale := base + "-" + strings.ToUpper(parts[1])
	if _, ok := validLocales[locale]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalid, code)
	}
	return locale, nil
}

// Validate checks that a language code resolves to a supported locale.
func Validate(code string) error {
	_, err := Canonical(code)
	return err
}

// BaseCode returns the lowercase base language of a locale ("pt-BR" -> "pt").
func BaseCode(locale string) string {
	base, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(base)
}

// DisplayName returns a human-readable name for a canonical locale,
// or the locale itself when unknown.
func DisplayName(locale string) string {
	if name, ok := validLocales[locale]; ok {
		return name
	}
	return locale
}

// Supported returns the canonical locales with voice coverage, sorted order
// not guaranteed.
func Supported() []string {
	out := make([]string, 0, len(validLocales))
	for locale := range validLocales {
		out = append(out, locale)
	}
	return out
}
