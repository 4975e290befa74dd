// Package changelog — merge history of a module as CHANGES.txt.
// It scrapes `git log` for merge commits, filters out noise, and keeps the
// result next to the manifest so the README can include it.
package changelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// FileName is the changelog file written inside the module directory.
const FileName = "CHANGES.txt"

// gitLogArgs selects merge commits on all branches as "<date> <refs> <subject>".
var gitLogArgs = []string{"log", "--merges", "--all", "--date=local", "--pretty=format:%ad %d %s"}

var (
	// entryRegex matches "Sat Nov 13 19:41:50 2021  subject".
	entryRegex = regexp.MustCompile(`^\w{3} \w{3} \d\d? \d\d?:\d{2}:\d{2} \d{4}  .*\S`)
	// noiseRegex matches merges of the default branch into itself.
	noiseRegex = regexp.MustCompile(`^\w{3} \w{3} \d\d? \d\d?:\d{2}:\d{2} \d{4}  Merge branch '?master'?(\s|$)`)
)

// ErrNoEntries is returned by Derive when the history holds no usable merges.
var ErrNoEntries = errors.New("no changelog entries")

// Deriver builds CHANGES.txt from version-control history.
type Deriver struct {
	runner Runner
	logger *log.Logger
}

// New creates a Deriver. A nil runner uses CmdRunner, a nil logger discards.
func New(runner Runner, logger *log.Logger) *Deriver {
	if runner == nil {
		runner = CmdRunner{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Deriver{runner: runner, logger: logger}
}

// Derive reads the merge history of moduleDir, writes CHANGES.txt and returns
// its content. When nothing survives the filter no file is written and
// ErrNoEntries is returned.
func (d *Deriver) Derive(ctx context.Context, moduleDir string) (string, error) {
	out, err := d.runner.Run(ctx, moduleDir, "git", gitLogArgs...)
	if err != nil {
		return "", fmt.Errorf("reading git log: %w", err)
	}

	lines := Filter(string(out))
	d.logger.Debug("changelog filtered", "dir", moduleDir, "entries", len(lines))
	if len(lines) == 0 {
		return "", ErrNoEntries
	}

	text := strings.Join(lines, "\n")
	path := filepath.Join(moduleDir, FileName)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return text, nil
}

// Filter keeps the well-formed, non-noise lines of raw git log output.
func Filter(raw string) []string {
	raw = strings.ReplaceAll(raw, "(HEAD -> master) ", "")
	raw = strings.ReplaceAll(raw, "'", "")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, " \r")
		if !entryRegex.MatchString(line) || noiseRegex.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Read returns the content of an existing CHANGES.txt, or "" when absent.
func Read(moduleDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(moduleDir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", FileName, err)
	}
	return strings.TrimSpace(string(data)), nil
}
