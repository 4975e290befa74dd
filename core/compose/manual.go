package compose

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
)

// HowToUseFile holds usage notes split into "---" sections ordered en, es, pr.
const HowToUseFile = "docs/how_to_use.md"

var howToUseOrder = []string{"en", "es", "pr"}

// ManualOptions controls the manual rendering.
type ManualOptions struct {
	Lang string
	// Banner is embedded after the description. Empty uses
	// /docs/imgs/Banner_{dir}.png when that file exists.
	Banner      string
	ImageFolder string
	Versions    map[string]string
}

// Manual renders the detailed manual document.
func (c *Composer) Manual(m *manifest.Manifest, opts ManualOptions) (string, error) {
	if err := catalog.CheckLanguage(opts.Lang); err != nil {
		return "", err
	}
	license, err := catalog.LookupLicense(m.License)
	if err != nil {
		return "", err
	}
	lang := opts.Lang
	component := m.ComponentType()

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	c.base(doc, m, lang)

	if banner := c.banner(opts.Banner); banner != "" {
		doc.PlainText(md.Image("banner", banner))
		doc.PlainText("")
	}

	doc.H2(catalog.InstallHeading(lang, component))
	doc.PlainText(catalog.Installation(lang, component))
	doc.PlainText("")

	usage, err := c.howToUse(lang)
	if err != nil {
		return "", err
	}
	if usage != "" {
		doc.H2(catalog.UsageHeading(lang, component))
		doc.PlainText(usage)
		doc.PlainText("")
	}

	doc.H2(catalog.CommandsHeading(lang, component))
	header := []string{
		catalog.Phrase("parameters", lang),
		catalog.Phrase("description", lang),
		catalog.Phrase("example", lang),
	}
	for _, command := range m.Children {
		doc.H3(c.text(command.Title.Resolve(lang)))
		if desc := c.text(command.Description.Resolve(lang)); desc != "" {
			doc.PlainText(desc)
		}
		doc.PlainText("")

		rows := make([][]string, 0, len(command.Inputs))
		for _, input := range command.Inputs {
			rows = append(rows, []string{
				strings.ReplaceAll(c.cell(input.Title.Resolve(lang)), ":", ""),
				strings.ReplaceAll(c.cell(input.Description.Resolve(lang)), ":", ""),
				flatten(input.Placeholder.Resolve(lang)),
			})
		}
		doc.CustomTable(md.TableSet{Header: header, Rows: rows}, md.TableOptions{AutoWrapText: false})
		doc.PlainText("")
		c.commandImage(doc, command.Module, opts.ImageFolder)
	}

	c.trailer(doc, m, license, opts.Versions)

	if err := doc.Build(); err != nil {
		return "", fmt.Errorf("building manual: %w", err)
	}
	c.logger.Debug("manual composed", "module", m.Name, "lang", lang, "commands", len(m.Children))
	return buf.String(), nil
}

// banner returns the banner reference to embed, or "" for none.
func (c *Composer) banner(explicit string) string {
	if explicit != "" {
		return explicit
	}
	abs, err := filepath.Abs(c.moduleDir)
	if err != nil {
		abs = c.moduleDir
	}
	def := fmt.Sprintf("/docs/imgs/Banner_%s.png", filepath.Base(abs))
	if c.exists(def) {
		return def
	}
	return ""
}

// howToUse returns the lang section of docs/how_to_use.md, or "" when the
// file is absent. Unknown positions fall back to the first section.
func (c *Composer) howToUse(lang string) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.moduleDir, filepath.FromSlash(HowToUseFile)))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", HowToUseFile, err)
	}

	sections := strings.Split(string(data), "---")
	idx := 0
	for i, l := range howToUseOrder {
		if l == lang {
			idx = i
		}
	}
	if idx >= len(sections) {
		idx = 0
	}
	return strings.TrimSpace(sections[idx]), nil
}
