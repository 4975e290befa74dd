// Package render — JSON renderer.
// Builds a structured JSON summary of a composed document: its metadata, the
// heading-delimited sections and structural counts (links, images, tables,
// list items). Useful for feeding module docs into other tooling.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/moddoc/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the document into the JSON summary.
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	markdown := doc.Markdown
	headings := extractHeadings(markdown)

	page := core.DocJSON{
		Metadata: doc.Meta,
		Content: core.DocContent{
			Text:     stripMarkdown(markdown),
			Markdown: markdown,
			Sections: buildSections(markdown, headings),
		},
		Structure: core.DocStructure{
			Headings: headings,
			Links:    extractLinks(markdown),
			Images:   extractImages(markdown),
			Tables:   countTables(markdown),
			Lists:    countLists(markdown),
		},
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []core.Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]core.Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, core.Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url); imageRegex matches ![alt](src).
var (
	linkRegex  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	imageRegex = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

func extractLinks(md string) []core.Link {
	withoutImages := imageRegex.ReplaceAllString(md, "")
	matches := linkRegex.FindAllStringSubmatch(withoutImages, -1)
	links := make([]core.Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, core.Link{Text: m[1], Href: m[2]})
	}
	return links
}

func extractImages(md string) []core.Link {
	matches := imageRegex.FindAllStringSubmatch(md, -1)
	images := make([]core.Link, 0, len(matches))
	for _, m := range matches {
		images = append(images, core.Link{Text: m[1], Href: m[2]})
	}
	return images
}

func buildSections(md string, headings []core.Heading) []core.Section {
	if len(headings) == 0 {
		return nil
	}

	lines := strings.Split(md, "\n")
	sections := make([]core.Section, 0, len(headings))
	headingIdx := 0

	var currentSection *core.Section
	var sectionLines []string

	for _, line := range lines {
		if headingRegex.MatchString(line) && headingIdx < len(headings) {
			// Flush previous section.
			if currentSection != nil {
				currentSection.Text = strings.TrimSpace(strings.Join(sectionLines, "\n"))
				sections = append(sections, *currentSection)
			}
			currentSection = &core.Section{
				Heading: headings[headingIdx].Text,
				Level:   headings[headingIdx].Level,
			}
			sectionLines = nil
			headingIdx++
		} else if currentSection != nil {
			sectionLines = append(sectionLines, line)
		}
	}
	// Flush last section.
	if currentSection != nil {
		currentSection.Text = strings.TrimSpace(strings.Join(sectionLines, "\n"))
		sections = append(sections, *currentSection)
	}

	return sections
}

// countTables counts Markdown tables by looking for separator rows (|---|).
var tableRowRegex = regexp.MustCompile(`(?m)^\|[-:| ]+\|\s*$`)

func countTables(md string) int {
	return len(tableRowRegex.FindAllString(md, -1))
}

// countLists counts list items (lines starting with - or * or 1.).
var listItemRegex = regexp.MustCompile(`(?m)^[ \t]*([-*]|\d+\.)[ \t]`)

func countLists(md string) int {
	return len(listItemRegex.FindAllString(md, -1))
}

var (
	emphasisRegex = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	blankRunRegex = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := md
	text = headingRegex.ReplaceAllString(text, "$2")
	text = imageRegex.ReplaceAllString(text, "$1")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = blankRunRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
