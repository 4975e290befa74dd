// Package normalize implements the Normalizer interface.
// It turns manifest text into Markdown: plain text passes through untouched,
// HTML fragments are cleaned by the extractor and converted.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/moddoc/core"
	"github.com/gaurav-prasanna/moddoc/core/extract"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	extractor core.Extractor
}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{extractor: extract.New()}
}

// Normalize converts text into Markdown.
func (n *MarkdownNormalizer) Normalize(text string) (string, error) {
	if !extract.ContainsHTML(text) {
		return text, nil
	}

	cleaned, err := n.extractor.Extract(text)
	if err != nil {
		return "", fmt.Errorf("extracting fragment: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Passthrough returns text unchanged. It is used when HTML conversion is off.
type Passthrough struct{}

// Normalize returns text as-is.
func (Passthrough) Normalize(text string) (string, error) {
	return text, nil
}
