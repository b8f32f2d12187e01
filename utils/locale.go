package utils

import (
	"strings"

	"pookadai/models"
)

// MapLanguageToCode maps a language name or tag to a supported language code.
// Input is normalized to lowercase before mapping.
// Returns "" when the language is not supported.
func MapLanguageToCode(language string) string {
	languageLower := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(languageLower, "-_;"); i > 0 {
		languageLower = languageLower[:i]
	}

	languageMap := map[string]string{
		"en":      models.LanguageEnglish,
		"english": models.LanguageEnglish,
		"ta":      models.LanguageTamil,
		"tamil":   models.LanguageTamil,
		"தமிழ்":   models.LanguageTamil,
	}

	if code, exists := languageMap[languageLower]; exists {
		return code
	}
	return ""
}

// ResolveLanguage picks the display language: an explicit choice first, then
// the first supported entry of an Accept-Language header, then fallback
func ResolveLanguage(explicit, acceptLanguage, fallback string) string {
	if code := MapLanguageToCode(explicit); code != "" {
		return code
	}
	for _, part := range strings.Split(acceptLanguage, ",") {
		if code := MapLanguageToCode(part); code != "" {
			return code
		}
	}
	if code := MapLanguageToCode(fallback); code != "" {
		return code
	}
	return models.LanguageEnglish
}
