package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
	"github.com/gaurav-prasanna/moddoc/core/normalize"
)

const gmailManifest = `{
	"name": "gmail_",
	"title": {"en": "Gmail"},
	"description": "Desc",
	"license": "MIT",
	"dependencies": {"requests": "2.0"},
	"windows": true, "mac": true, "linux": true, "docker": true,
	"children": []
}`

const sendMailManifest = `{
	"name": "mail",
	"title": {"es": "Correo", "en": "Mail"},
	"description": "Envia correos | Sends mail",
	"license": "MIT",
	"dependencies": {},
	"windows": true, "mac": false, "linux": true, "docker": false,
	"children": [{
		"title": {"es": "Enviar", "en": "Send"},
		"description": {"es": "Envia un correo", "en": "Sends an email"},
		"module": "send_mail",
		"form": {"inputs": [
			{"title": {"es": "Para:", "en": "To:"}, "description": "Recipient", "placeholder": "a@b.com"},
			{"title": "Subject", "description": {"en": "Mail: subject"}, "placeholder": "Hi"}
		]}
	}]
}`

func parse(t *testing.T, doc string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(doc))
	require.NoError(t, err)
	return m
}

// tableRows returns the cells of every non-separator table row.
func tableRows(markdown string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Trim(line, "|-: ") == "" {
			continue
		}
		parts := strings.Split(strings.Trim(line, "|"), "|")
		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestManualEndToEnd(t *testing.T) {
	c := New(t.TempDir(), normalize.New(), nil)
	out, err := c.Manual(parse(t, gmailManifest), ManualOptions{Lang: "en"})
	require.NoError(t, err)

	assert.Contains(t, out, "# Gmail")
	assert.Contains(t, out, "Desc")
	for _, platform := range []string{"- windows", "- mac", "- linux", "- docker"} {
		assert.Contains(t, out, platform)
	}
	assert.Contains(t, out, "**[requests](https://pypi.org/project/requests/)**")
	assert.Equal(t, 1, strings.Count(out, "https://pypi.org/project/"))

	mit, err := catalog.LookupLicense("MIT")
	require.NoError(t, err)
	assert.Contains(t, out, "![MIT]("+mit.Badge+")")
	assert.Contains(t, out, "[MIT]("+mit.URL+")")

	assert.Contains(t, out, "## How to install this module")
	assert.Contains(t, out, "'modules' folder")
	assert.NotContains(t, out, "### Send")
	assert.Empty(t, tableRows(out))
	assert.NotContains(t, out, "banner")
}

func TestManualCommandTable(t *testing.T) {
	c := New(t.TempDir(), normalize.New(), nil)
	out, err := c.Manual(parse(t, sendMailManifest), ManualOptions{Lang: "en"})
	require.NoError(t, err)

	assert.Contains(t, out, "## Description of the commands")
	assert.Contains(t, out, "### Send")
	assert.Contains(t, out, "Sends an email")

	rows := tableRows(out)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, []string{"parameters", "description", "example"}, lower(rows[0]))
	assert.Equal(t, []string{"To", "Recipient", "a@b.com"}, rows[1])
	assert.Equal(t, []string{"Subject", "Mail subject", "Hi"}, rows[2])
}

const angleBracketManifest = `{
	"name": "files",
	"title": "Files",
	"description": "Moves files",
	"license": "MIT",
	"windows": true, "mac": true, "linux": true, "docker": false,
	"children": [{
		"title": "Move",
		"description": "Moves a file",
		"module": "move_file",
		"form": {"inputs": [
			{"title": "Path", "description": "Use <ruta> here", "placeholder": "<nombre_variable>"},
			{"title": "Cmp", "description": "a<b and c>d", "placeholder": "<b>{var}</b>"}
		]}
	}]
}`

func TestManualKeepsAngleBracketText(t *testing.T) {
	c := New(t.TempDir(), normalize.New(), nil)
	out, err := c.Manual(parse(t, angleBracketManifest), ManualOptions{Lang: "en"})
	require.NoError(t, err)

	rows := tableRows(out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Path", "Use <ruta> here", "<nombre_variable>"}, rows[1])
	assert.Equal(t, []string{"Cmp", "a<b and c>d", "<b>{var}</b>"}, rows[2])
}

func TestManualSpanishAddon(t *testing.T) {
	m := parse(t, sendMailManifest)
	m.Type = "addon"

	out, err := New(t.TempDir(), nil, nil).Manual(m, ManualOptions{Lang: "es"})
	require.NoError(t, err)
	assert.Contains(t, out, "# Correo")
	assert.Contains(t, out, "Envia correos")
	assert.NotContains(t, out, "Sends mail")
	assert.Contains(t, out, "## Como instalar este addon")
	assert.Contains(t, out, "'addons'")
	assert.Contains(t, out, "## Configuración")
	assert.Contains(t, out, "### Enviar")
	assert.Equal(t, []string{"Para", "Recipient", "a@b.com"}, tableRows(out)[1])
}

func TestManualHowToUseAndImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mail")
	writeFile(t, dir, "docs/how_to_use.md", "English usage\n---\nUso en español\n---\nUso em português\n")
	writeFile(t, dir, "example/send_mail.png", "png")
	writeFile(t, dir, "docs/imgs/Banner_mail.png", "png")

	c := New(dir, nil, nil)
	out, err := c.Manual(parse(t, sendMailManifest), ManualOptions{Lang: "es"})
	require.NoError(t, err)

	assert.Contains(t, out, "## Como usar este módulo")
	assert.Contains(t, out, "Uso en español")
	assert.NotContains(t, out, "English usage")
	assert.Contains(t, out, "![send_mail](example/send_mail.png)")
	assert.Contains(t, out, "![banner](/docs/imgs/Banner_mail.png)")

	out, err = c.Manual(parse(t, sendMailManifest), ManualOptions{Lang: "en", Banner: "https://cdn/banner.png"})
	require.NoError(t, err)
	assert.Contains(t, out, "English usage")
	assert.Contains(t, out, "![banner](https://cdn/banner.png)")
}

func TestHowToUseMissingSectionFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/how_to_use.md", "Only english")

	usage, err := New(dir, nil, nil).howToUse("pr")
	require.NoError(t, err)
	assert.Equal(t, "Only english", usage)
}

func TestOverview(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "imgs/send_mail.png", "png")

	out, err := New(dir, nil, nil).Overview(parse(t, sendMailManifest), OverviewOptions{
		Lang:        "en",
		Comments:    "Read this first.",
		ImageFolder: "imgs",
		Changes:     "Sat Nov 13 19:41:50 2021  v1.2 test 2",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "# Mail")
	assert.Contains(t, out, "Sends mail")
	assert.Contains(t, out, "Read this first.")
	assert.Less(t, strings.Index(out, "Read this first."), strings.Index(out, "1. Send"))
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "1. Send")
	assert.Contains(t, out, "Sends an email")
	assert.Contains(t, out, "![send_mail](imgs/send_mail.png)")
	assert.Contains(t, out, "### Changes")
	assert.Contains(t, out, "v1.2 test 2")
	assert.Contains(t, out, "- windows")
	assert.Contains(t, out, "- linux")
	assert.NotContains(t, out, "- mac")
	assert.Contains(t, out, "### Dependencies")
	assert.Contains(t, out, "### License")
}

func TestOverviewWithoutChanges(t *testing.T) {
	out, err := New(t.TempDir(), nil, nil).Overview(parse(t, gmailManifest), OverviewOptions{Lang: "en"})
	require.NoError(t, err)
	assert.NotContains(t, out, "### Changes")
}

func TestUnknownLicense(t *testing.T) {
	m := parse(t, gmailManifest)
	m.License = "GPL"
	c := New(t.TempDir(), nil, nil)

	_, err := c.Manual(m, ManualOptions{Lang: "en"})
	assert.ErrorIs(t, err, catalog.ErrUnknownLicense)
	_, err = c.Overview(m, OverviewOptions{Lang: "en"})
	assert.ErrorIs(t, err, catalog.ErrUnknownLicense)
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := New(t.TempDir(), nil, nil).Overview(parse(t, gmailManifest), OverviewOptions{Lang: "fr"})
	assert.ErrorIs(t, err, catalog.ErrUnsupportedLanguage)
}

func TestDependencyVersions(t *testing.T) {
	m := parse(t, gmailManifest)
	m.Dependencies = append(m.Dependencies, manifest.Dependency{Name: "lxml"})

	out, err := New(t.TempDir(), nil, nil).Overview(m, OverviewOptions{
		Lang:     "en",
		Versions: map[string]string{"lxml": "5.3.0", "requests": "9.9"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "**[requests](https://pypi.org/project/requests/)** `2.0`")
	assert.Contains(t, out, "**[lxml](https://pypi.org/project/lxml/)** `5.3.0`")
}

func TestHTMLDescriptionsNormalized(t *testing.T) {
	m := parse(t, `{
		"title": {"en": "Html"}, "description": "<b>Bold</b> intro", "license": "MIT",
		"windows": true, "mac": true, "linux": true, "docker": true,
		"children": [{"title": "Cmd", "form": {"inputs": [
			{"title": "Field", "description": "<p>first</p><p>second</p>", "placeholder": "x"}
		]}}]
	}`)
	out, err := New(t.TempDir(), normalize.New(), nil).Manual(m, ManualOptions{Lang: "en"})
	require.NoError(t, err)
	assert.Contains(t, out, "**Bold** intro")

	rows := tableRows(out)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1][1], "first")
	assert.Contains(t, rows[1][1], "second")
}

func lower(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ToLower(c)
	}
	return out
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
