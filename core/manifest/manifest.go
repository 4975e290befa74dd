// Package manifest — the module metadata model.
// It decodes package.json, derives the supported OS list and dependency
// links, and exposes localized access to titles and descriptions.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FileName is the manifest file inside a module directory.
const FileName = "package.json"

// DefaultComponentType is used when the manifest has no "type".
const DefaultComponentType = "module"

const pypiProjectURL = "https://pypi.org/project/%s/"

// Dependency is one entry of the manifest "dependencies" mapping.
type Dependency struct {
	Name string
	// Version is the value authored in the manifest, possibly empty.
	Version string
}

// URL returns the package index page of the dependency.
func (d Dependency) URL() string {
	return fmt.Sprintf(pypiProjectURL, d.Name)
}

// Input is one parameter of a command form.
type Input struct {
	Title       Text
	Description Text
	Placeholder Text
	Raw         map[string]any
}

// Command is one configurable action exposed by the module.
type Command struct {
	Title       Text
	Description Text
	// Module is the machine name, also used to find the command image.
	Module string
	Inputs []Input
	Raw    map[string]any
}

// Manifest is a decoded package.json.
type Manifest struct {
	Name         string
	Title        Text
	Description  Text
	Type         string
	License      string
	Dependencies []Dependency
	Windows      bool
	Mac          bool
	Linux        bool
	Docker       bool
	// OS lists supported platforms in the fixed order windows, mac, linux, docker.
	OS       []string
	Children []Command
	// Fields holds every top-level field exactly as decoded.
	Fields map[string]any
}

type rawManifest struct {
	Name         string                              `json:"name"`
	Title        any                                 `json:"title"`
	Description  any                                 `json:"description"`
	Type         string                              `json:"type"`
	License      string                              `json:"license"`
	Dependencies *orderedmap.OrderedMap[string, any] `json:"dependencies"`
	Windows      *bool                               `json:"windows"`
	Mac          *bool                               `json:"mac"`
	Linux        *bool                               `json:"linux"`
	Docker       *bool                               `json:"docker"`
	Children     []map[string]any                    `json:"children"`
}

// Load reads and parses {moduleDir}/package.json.
func Load(moduleDir string) (*Manifest, error) {
	path := filepath.Join(moduleDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestNotFound, path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Name == "" {
		abs, err := filepath.Abs(moduleDir)
		if err != nil {
			abs = moduleDir
		}
		m.Name = filepath.Base(abs)
	}
	return m, nil
}

// Parse decodes a manifest document and derives the OS list and dependencies.
func Parse(data []byte) (*Manifest, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}

	m := &Manifest{
		Name:    raw.Name,
		Title:   textFromValue(raw.Title),
		Type:    raw.Type,
		License: raw.License,
		Fields:  fields,
	}
	if s, ok := raw.Description.(string); ok {
		m.Description = SplitDescription(s)
	} else {
		m.Description = textFromValue(raw.Description)
	}

	if err := m.supportedOS(raw); err != nil {
		return nil, err
	}
	m.Dependencies = dependencies(raw.Dependencies)

	m.Children = make([]Command, 0, len(raw.Children))
	for _, child := range raw.Children {
		m.Children = append(m.Children, newCommand(child))
	}
	return m, nil
}

func (m *Manifest) supportedOS(raw rawManifest) error {
	flags := []struct {
		name  string
		value *bool
		dst   *bool
	}{
		{"windows", raw.Windows, &m.Windows},
		{"mac", raw.Mac, &m.Mac},
		{"linux", raw.Linux, &m.Linux},
		{"docker", raw.Docker, &m.Docker},
	}

	m.OS = make([]string, 0, len(flags))
	for _, f := range flags {
		if f.value == nil {
			return &MissingFieldError{Field: f.name}
		}
		*f.dst = *f.value
		if *f.value {
			m.OS = append(m.OS, f.name)
		}
	}
	return nil
}

func dependencies(deps *orderedmap.OrderedMap[string, any]) []Dependency {
	if deps == nil {
		return nil
	}
	out := make([]Dependency, 0, deps.Len())
	for pair := deps.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Dependency{Name: pair.Key, Version: stringify(pair.Value)})
	}
	return out
}

func newCommand(raw map[string]any) Command {
	c := Command{
		Title:       TextOf(raw, "title"),
		Description: TextOf(raw, "description"),
		Raw:         raw,
	}
	c.Module, _ = raw["module"].(string)

	form, _ := raw["form"].(map[string]any)
	inputs, _ := form["inputs"].([]any)
	for _, item := range inputs {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c.Inputs = append(c.Inputs, Input{
			Title:       TextOf(obj, "title"),
			Description: TextOf(obj, "description"),
			Placeholder: TextOf(obj, "placeholder"),
			Raw:         obj,
		})
	}
	return c
}

// ComponentType returns the manifest "type", or "module" when absent.
func (m *Manifest) ComponentType() string {
	if m.Type == "" {
		return DefaultComponentType
	}
	return m.Type
}

// LocalizedTitle returns the module title for lang.
func (m *Manifest) LocalizedTitle(lang string) string {
	return m.Title.Resolve(lang)
}

// LocalizedDescription returns the module description for lang.
func (m *Manifest) LocalizedDescription(lang string) string {
	return m.Description.Resolve(lang)
}
