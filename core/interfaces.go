// Package core defines the pipeline interfaces for moddoc.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// DocKind identifies which document a pipeline run produces.
type DocKind string

const (
	// KindReadme is the short overview written to README.md.
	KindReadme DocKind = "readme"
	// KindManual is the detailed per-command reference.
	KindManual DocKind = "manual"
)

// DocMetadata holds metadata about a generated document.
type DocMetadata struct {
	Module      string  `json:"module"`
	Kind        DocKind `json:"kind"`
	Title       string  `json:"title"`
	Language    string  `json:"language"`
	GeneratedAt string  `json:"generated_at"` // ISO8601
}

// Document is composed Markdown plus the metadata renderers need.
type Document struct {
	Meta     DocMetadata
	Markdown string
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocContent holds the text and structured content of a document.
type DocContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocStructure holds structural metadata parsed from the content.
type DocStructure struct {
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
	Images   []Link    `json:"images"`
	Tables   int       `json:"tables"`
	Lists    int       `json:"lists"`
}

// DocJSON is the complete JSON output for a single document.
type DocJSON struct {
	Metadata  DocMetadata  `json:"metadata"`
	Content   DocContent   `json:"content"`
	Structure DocStructure `json:"structure"`
}

// Extractor cleans an HTML fragment, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts manifest text (plain or HTML) into Markdown.
type Normalizer interface {
	Normalize(text string) (string, error)
}

// Renderer converts a composed document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// VersionResolver looks up the latest published version of a dependency.
type VersionResolver interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}
