// Package output handles file naming and writing for moddoc outputs.
// The README lands in the module root (README.md); the manual lands in the
// module docs folder (docs/Manual_{name}.md), which is created on demand.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DocsDir is the module folder that receives the manual.
	DocsDir = "docs"
	// ReadmeBase is the README file name without extension.
	ReadmeBase = "README"
	// ManualPrefix prefixes the module name in the manual file name.
	ManualPrefix = "Manual_"
)

// Writer writes rendered output into a module directory.
type Writer struct {
	ModuleDir string
}

// New creates a Writer targeting the given module directory.
// If moduleDir is empty, it defaults to the current working directory.
func New(moduleDir string) (*Writer, error) {
	if moduleDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		moduleDir = wd
	}

	info, err := os.Stat(moduleDir)
	if err != nil {
		return nil, fmt.Errorf("module directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("module directory %s is not a directory", moduleDir)
	}

	return &Writer{ModuleDir: moduleDir}, nil
}

// ReadmePath returns the default README path: {module}/README{ext}.
func (w *Writer) ReadmePath(ext string) string {
	return filepath.Join(w.ModuleDir, ReadmeBase+ext)
}

// ManualPath returns the default manual path, {module}/docs/Manual_{name}{ext},
// creating the docs folder if needed.
func (w *Writer) ManualPath(name string, ext string) (string, error) {
	dir := filepath.Join(w.ModuleDir, DocsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return filepath.Join(dir, ManualPrefix+sanitize(name)+ext), nil
}

// Write writes data to path, creating parent directories.
func (w *Writer) Write(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// sanitize replaces path separators and characters that are invalid in
// file names with underscores. Everything else is kept as authored.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
