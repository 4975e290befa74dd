package manifest

import (
	"strconv"
	"strings"
)

// FallbackLang is used when a per-language mapping lacks the requested language.
const FallbackLang = "en"

// descriptionSlots is the positional order of "a | b | c" descriptions.
var descriptionSlots = []string{"es", "en", "pr"}

// descriptionDelimiter separates per-language variants in a flat description.
const descriptionDelimiter = "| "

// Text is a localized field value. Manifests author the same field in three
// shapes, and Text captures all of them once so callers only call Resolve:
//
//	{"es": {"title": "..."}}   scoped by language
//	{"title": {"es": "..."}}   per-language mapping
//	{"title": "..."}           flat
type Text struct {
	scoped map[string]string
	nested map[string]string
	flat   string
}

// Flat returns a Text holding the same value for every language.
func Flat(s string) Text {
	return Text{flat: s}
}

// TextOf captures the field name of obj in all of its shapes.
func TextOf(obj map[string]any, name string) Text {
	var t Text
	for key, value := range obj {
		scope, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if t.scoped == nil {
			t.scoped = make(map[string]string)
		}
		t.scoped[key] = stringify(scope[name])
	}
	switch v := obj[name].(type) {
	case map[string]any:
		t.nested = make(map[string]string, len(v))
		for lang, s := range v {
			t.nested[lang] = stringify(s)
		}
	default:
		t.flat = stringify(v)
	}
	return t
}

// Resolve returns the value for lang. It never fails; anything that cannot be
// resolved degrades to the empty string.
func (t Text) Resolve(lang string) string {
	if v, ok := t.scoped[lang]; ok {
		return v
	}
	if t.nested != nil {
		if v, ok := t.nested[lang]; ok {
			return v
		}
		return t.nested[FallbackLang]
	}
	return t.flat
}

// Attribute resolves field name of obj for lang.
func Attribute(obj map[string]any, name, lang string) string {
	return TextOf(obj, name).Resolve(lang)
}

// SplitDescription turns a "es | en | pr" description into explicit
// per-language slots. Without a delimiter the text fills every slot; slots the
// author left out take the English text, or the first one.
func SplitDescription(s string) Text {
	parts := strings.Split(s, descriptionDelimiter)
	values := make(map[string]string, len(descriptionSlots))
	for i, lang := range descriptionSlots {
		if i < len(parts) {
			values[lang] = strings.TrimSpace(parts[i])
		}
	}
	for _, lang := range descriptionSlots {
		if _, ok := values[lang]; ok {
			continue
		}
		if en, ok := values[FallbackLang]; ok {
			values[lang] = en
		} else {
			values[lang] = values[descriptionSlots[0]]
		}
	}
	return Text{nested: values}
}

// textFromValue builds a Text from a bare JSON value (string or mapping).
func textFromValue(v any) Text {
	if m, ok := v.(map[string]any); ok {
		nested := make(map[string]string, len(m))
		for lang, s := range m {
			nested[lang] = stringify(s)
		}
		return Text{nested: nested}
	}
	return Flat(stringify(v))
}

// stringify renders a scalar JSON value as text. Containers become "".
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
