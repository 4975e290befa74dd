// Package render provides output renderers for the moddoc pipeline.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/moddoc/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	return []byte(doc.Markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Format names accepted by ForFormat.
const (
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatMarkdown, FormatPDF, FormatJSON}

// ForFormat returns the renderer registered under format.
func ForFormat(format string) (core.Renderer, error) {
	switch format {
	case FormatMarkdown, "md", "":
		return NewMarkdownRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
