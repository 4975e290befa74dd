package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gmailManifest = `{
	"name": "gmail_",
	"title": {"en": "Gmail", "es": "Gmail ES"},
	"description": "Desc",
	"license": "MIT",
	"dependencies": {"requests": "2.0", "beautifulsoup4": ""},
	"windows": true, "mac": true, "linux": true, "docker": true,
	"children": []
}`

func TestParseSupportedOS(t *testing.T) {
	names := []string{"windows", "mac", "linux", "docker"}
	for mask := 0; mask < 16; mask++ {
		t.Run(fmt.Sprintf("mask_%02d", mask), func(t *testing.T) {
			var want []string
			doc := `{"license": "MIT"`
			for i, name := range names {
				on := mask&(1<<i) != 0
				if on {
					want = append(want, name)
				}
				doc += fmt.Sprintf(`, %q: %t`, name, on)
			}
			doc += `}`

			m, err := Parse([]byte(doc))
			require.NoError(t, err)
			if want == nil {
				assert.Empty(t, m.OS)
				return
			}
			assert.Equal(t, want, m.OS)
		})
	}
}

func TestParseMissingOSFlag(t *testing.T) {
	_, err := Parse([]byte(`{"windows": true, "mac": false, "docker": true}`))
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "linux", missing.Field)
	assert.ErrorIs(t, err, ErrMalformedManifest)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"windows": `))
	assert.ErrorIs(t, err, ErrMalformedManifest)

	_, err = Parse([]byte(`{"windows": "yes", "mac": true, "linux": true, "docker": true}`))
	assert.ErrorIs(t, err, ErrMalformedManifest)
}

func TestDependenciesKeepOrderAndVersion(t *testing.T) {
	m, err := Parse([]byte(gmailManifest))
	require.NoError(t, err)

	require.Len(t, m.Dependencies, 2)
	assert.Equal(t, "requests", m.Dependencies[0].Name)
	assert.Equal(t, "2.0", m.Dependencies[0].Version)
	assert.Equal(t, "beautifulsoup4", m.Dependencies[1].Name)
	assert.Equal(t, "", m.Dependencies[1].Version)

	for _, dep := range m.Dependencies {
		assert.Equal(t, "https://pypi.org/project/"+dep.Name+"/", dep.URL())
		assert.Equal(t, dep.URL(), dep.URL())
	}
}

func TestComponentType(t *testing.T) {
	m, err := Parse([]byte(gmailManifest))
	require.NoError(t, err)
	assert.Equal(t, "module", m.ComponentType())

	m.Type = "addon"
	assert.Equal(t, "addon", m.ComponentType())
}

func TestDescriptionDelimiter(t *testing.T) {
	m, err := Parse([]byte(`{"description": "Hola | Hello", "windows": true, "mac": true, "linux": true, "docker": true}`))
	require.NoError(t, err)
	assert.Equal(t, "Hola", m.LocalizedDescription("es"))
	assert.Equal(t, "Hello", m.LocalizedDescription("en"))
	assert.Equal(t, "Hello", m.LocalizedDescription("pr"))

	m, err = Parse([]byte(gmailManifest))
	require.NoError(t, err)
	assert.Equal(t, "Desc", m.LocalizedDescription("es"))
	assert.Equal(t, "Desc", m.LocalizedDescription("en"))
}

func TestDescriptionMapping(t *testing.T) {
	m, err := Parse([]byte(`{"description": {"es": "Hola", "en": "Hello"}, "windows": true, "mac": true, "linux": true, "docker": true}`))
	require.NoError(t, err)
	assert.Equal(t, "Hola", m.LocalizedDescription("es"))
	assert.Equal(t, "Hello", m.LocalizedDescription("pr"))
}

func TestParseChildren(t *testing.T) {
	doc := `{
		"windows": true, "mac": false, "linux": false, "docker": false,
		"children": [{
			"es": {"title": "Enviar", "description": "Envia un correo"},
			"title": "Send",
			"module": "send_mail",
			"form": {"inputs": [
				{"title": {"es": "Para:", "en": "To:"}, "placeholder": "a@b.com"},
				{"title": "Subject", "description": {"en": "Mail subject"}}
			]}
		}]
	}`
	m, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, m.Children, 1)

	cmd := m.Children[0]
	assert.Equal(t, "send_mail", cmd.Module)
	assert.Equal(t, "Enviar", cmd.Title.Resolve("es"))
	assert.Equal(t, "Send", cmd.Title.Resolve("en"))
	require.Len(t, cmd.Inputs, 2)
	assert.Equal(t, "Para:", cmd.Inputs[0].Title.Resolve("es"))
	assert.Equal(t, "a@b.com", cmd.Inputs[0].Placeholder.Resolve("pr"))
	assert.Equal(t, "Mail subject", cmd.Inputs[1].Description.Resolve("es"))
}

func TestParseCommandWithoutForm(t *testing.T) {
	m, err := Parse([]byte(`{"windows": true, "mac": true, "linux": true, "docker": true, "children": [{"title": "Only"}]}`))
	require.NoError(t, err)
	require.Len(t, m.Children, 1)
	assert.Empty(t, m.Children[0].Inputs)
}

func TestParseKeepsAllFields(t *testing.T) {
	m, err := Parse([]byte(`{"version": "1.2.0", "author": "x", "windows": true, "mac": true, "linux": true, "docker": true}`))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", m.Fields["version"])
	assert.Equal(t, "x", m.Fields["author"])
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestLoadDefaultsName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gmail")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName),
		[]byte(`{"title": {"en": "Gmail"}, "windows": true, "mac": true, "linux": true, "docker": true}`), 0o644))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gmail", m.Name)
	assert.Equal(t, "Gmail", m.LocalizedTitle("en"))
	assert.Equal(t, "Gmail", m.LocalizedTitle("es"))
}
