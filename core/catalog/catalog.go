// Package catalog — localized phrases and the license table.
// Both are fixed, read-only data; the phrases are embedded as YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLang is the fallback language for phrase lookups.
const DefaultLang = "en"

// ErrUnsupportedLanguage is returned for a language outside Languages().
var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed phrases.yaml
var phrasesYAML []byte

var (
	phrases   = mustDecode(phrasesYAML)
	languages = []string{"es", "en", "pr"}
)

func mustDecode(data []byte) map[string]map[string]string {
	var out map[string]map[string]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("catalog: decoding embedded phrases: %v", err))
	}
	return out
}

// Languages returns the supported language codes.
func Languages() []string {
	return slices.Clone(languages)
}

// Supported reports whether lang is a supported language code.
func Supported(lang string) bool {
	return slices.Contains(languages, lang)
}

// CheckLanguage returns ErrUnsupportedLanguage for unknown codes.
func CheckLanguage(lang string) error {
	if !Supported(lang) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedLanguage, lang, strings.Join(languages, ", "))
	}
	return nil
}

// Phrase returns the phrase for key in lang, falling back to English.
// Unknown keys return the key itself.
func Phrase(key, lang string) string {
	byLang, ok := phrases[key]
	if !ok {
		return key
	}
	if s, ok := byLang[lang]; ok {
		return s
	}
	return byLang[DefaultLang]
}

// InstallHeading returns "How to install this module" (or addon) in lang.
func InstallHeading(lang, componentType string) string {
	return Phrase("how_to_install", lang) + " " + Phrase(componentType, lang)
}

// UsageHeading returns "How to use this module" (or addon) in lang.
func UsageHeading(lang, componentType string) string {
	return Phrase("how_to_use", lang) + " " + Phrase(componentType, lang)
}

// Installation returns the installation instructions for a component type.
func Installation(lang, componentType string) string {
	return strings.ReplaceAll(Phrase("installation", lang), "{folder}", componentType)
}

// CommandsHeading returns the heading of the manual's command reference.
func CommandsHeading(lang, componentType string) string {
	return Phrase("overview_"+componentType, lang)
}
