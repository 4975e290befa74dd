// Package extract implements the Extractor interface.
// Manifest titles and descriptions are hand-authored and sometimes carry
// HTML. The extractor isolates the useful part of such a fragment by:
//  1. Parsing it into a document body
//  2. Removing noise elements (scripts, styles, embeds, form controls)
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// noiseSelectors are HTML elements removed before conversion.
// These contribute no meaningful content to a description.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"iframe", "object", "embed",
	"video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// HTMLExtractor strips noise from an HTML fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes an HTML fragment and returns it without noise elements.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", fmt.Errorf("no body found in HTML fragment")
	}

	result, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("serializing fragment: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// tagRegex matches opening or closing tags such as <p>, </p> or <a href="x">.
var tagRegex = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9]*)(?:\s[^<>]*)?/?>`)

// voidElements are recognized without a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Br:  true,
	atom.Hr:  true,
	atom.Img: true,
	atom.Wbr: true,
}

// ContainsHTML reports whether text holds markup worth converting: a void
// element, or a known element that is also closed. Placeholders such as
// <path> and comparisons such as a<b and c>d are plain text.
func ContainsHTML(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range tagRegex.FindAllStringSubmatch(lower, -1) {
		name := m[2]
		a := atom.Lookup([]byte(name))
		if a == 0 {
			continue
		}
		if voidElements[a] {
			return true
		}
		if m[1] == "" && strings.Contains(lower, "</"+name+">") {
			return true
		}
	}
	return false
}
