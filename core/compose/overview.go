package compose

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
)

// OverviewOptions controls the README rendering.
type OverviewOptions struct {
	Lang string
	// Comments is free text inserted before the command list.
	Comments string
	// ImageFolder is searched for {module}.png command images.
	ImageFolder string
	// Changes is the changelog text; empty omits the section.
	Changes string
	// Versions enables version display; see dependencyVersion.
	Versions map[string]string
}

// Overview renders the README document.
func (c *Composer) Overview(m *manifest.Manifest, opts OverviewOptions) (string, error) {
	if err := catalog.CheckLanguage(opts.Lang); err != nil {
		return "", err
	}
	license, err := catalog.LookupLicense(m.License)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	c.base(doc, m, opts.Lang)

	if comments := strings.TrimSpace(opts.Comments); comments != "" {
		doc.PlainText(comments)
		doc.PlainText("")
	}

	doc.H2(catalog.Phrase("overview", opts.Lang))
	for i, command := range m.Children {
		doc.PlainText(fmt.Sprintf("%d. %s", i+1, c.text(command.Title.Resolve(opts.Lang))))
		if desc := c.text(command.Description.Resolve(opts.Lang)); desc != "" {
			doc.PlainText(indent(desc, "   "))
		}
		doc.PlainText("")
		c.commandImage(doc, command.Module, opts.ImageFolder)
	}

	if changes := strings.TrimSpace(opts.Changes); changes != "" {
		doc.H3("Changes")
		doc.BulletList(strings.Split(changes, "\n")...)
	}

	c.trailer(doc, m, license, opts.Versions)

	if err := doc.Build(); err != nil {
		return "", fmt.Errorf("building overview: %w", err)
	}
	c.logger.Debug("overview composed", "module", m.Name, "lang", opts.Lang, "commands", len(m.Children))
	return buf.String(), nil
}
