// Package compose builds the Markdown documents of a module.
// The overview (README) and the manual share a base (title and description)
// and a trailer (OS, dependencies, license); both walk the manifest commands.
package compose

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	md "github.com/nao1215/markdown"

	"github.com/gaurav-prasanna/moddoc/core"
	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
	"github.com/gaurav-prasanna/moddoc/core/normalize"
)

// DefaultImageFolder holds per-command images, named {module}.png.
const DefaultImageFolder = "example"

// Composer renders manifest data into Markdown.
type Composer struct {
	moduleDir  string
	normalizer core.Normalizer
	logger     *log.Logger
}

// New creates a Composer for the module at moduleDir. A nil normalizer
// passes text through; a nil logger discards.
func New(moduleDir string, normalizer core.Normalizer, logger *log.Logger) *Composer {
	if normalizer == nil {
		normalizer = normalize.Passthrough{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Composer{moduleDir: moduleDir, normalizer: normalizer, logger: logger}
}

// base writes the title and the description for lang.
func (c *Composer) base(doc *md.Markdown, m *manifest.Manifest, lang string) {
	doc.H1(m.LocalizedTitle(lang))
	if desc := c.text(m.LocalizedDescription(lang)); desc != "" {
		doc.PlainText(desc)
	}
	doc.PlainText("")
}

// trailer writes the OS, dependencies and license sections.
func (c *Composer) trailer(doc *md.Markdown, m *manifest.Manifest, license catalog.License, versions map[string]string) {
	doc.PlainText("")
	doc.HorizontalRule()

	doc.H3("OS")
	if len(m.OS) > 0 {
		doc.BulletList(m.OS...)
	}

	doc.H3("Dependencies")
	if len(m.Dependencies) > 0 {
		items := make([]string, 0, len(m.Dependencies))
		for _, dep := range m.Dependencies {
			item := md.Bold(md.Link(dep.Name, dep.URL()))
			if v := dependencyVersion(dep, versions); v != "" {
				item += " " + md.Code(v)
			}
			items = append(items, item)
		}
		doc.BulletList(items...)
	}

	doc.H3("License")
	doc.PlainText(md.Image(license.ID, license.Badge))
	doc.PlainText("")
	doc.PlainText(md.Link(license.ID, license.URL))
}

// dependencyVersion prefers the pinned version over a resolved one.
// Versions are only shown when a resolution map is supplied.
func dependencyVersion(dep manifest.Dependency, versions map[string]string) string {
	if versions == nil {
		return ""
	}
	if dep.Version != "" {
		return dep.Version
	}
	return versions[dep.Name]
}

// commandImage writes the command image when {folder}/{module}.png exists.
func (c *Composer) commandImage(doc *md.Markdown, module, folder string) {
	if module == "" {
		return
	}
	if folder == "" {
		folder = DefaultImageFolder
	}
	rel := path.Join(filepath.ToSlash(folder), module+".png")
	if !c.exists(rel) {
		return
	}
	doc.PlainText(md.Image(module, rel))
	doc.PlainText("")
}

// text normalizes manifest text to Markdown. Conversion problems are logged
// and the raw text is kept.
func (c *Composer) text(s string) string {
	out, err := c.normalizer.Normalize(s)
	if err != nil {
		c.logger.Warn("keeping raw text", "err", err)
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}

// cell normalizes text and flattens it into a single Markdown table cell.
func (c *Composer) cell(s string) string {
	return flatten(c.text(s))
}

// flatten turns text into a single table cell without converting it.
func flatten(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// exists reports whether rel (slash-separated, relative to the module) is a file.
func (c *Composer) exists(rel string) bool {
	info, err := os.Stat(filepath.Join(c.moduleDir, filepath.FromSlash(strings.TrimPrefix(rel, "/"))))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("asset check failed", "path", rel, "err", err)
		}
		return false
	}
	return !info.IsDir()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
