// Package cmd — generate (root) command.
// This is the main command that orchestrates the pipeline:
// load manifest → changelog → compose → render → write.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/moddoc/config"
	"github.com/gaurav-prasanna/moddoc/core"
	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/changelog"
	"github.com/gaurav-prasanna/moddoc/core/compose"
	"github.com/gaurav-prasanna/moddoc/core/fetch"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
	"github.com/gaurav-prasanna/moddoc/core/normalize"
	"github.com/gaurav-prasanna/moddoc/core/output"
	"github.com/gaurav-prasanna/moddoc/core/render"
)

// generateFlags are the root-only switches that do not map onto config keys.
type generateFlags struct {
	manualOnly  bool
	readmeOnly  bool
	noChangelog bool
}

func runGenerate(cmd *cobra.Command, globals *globalFlags, gen *generateFlags, args []string) error {
	dir := moduleDir(args)

	cfg, err := loadConfig(cmd, globals, dir)
	if err != nil {
		return err
	}
	if gen.manualOnly {
		cfg.Readme = false
	}
	if gen.readmeOnly {
		cfg.Manual = false
	}
	if gen.noChangelog {
		cfg.Changelog = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	renderer, err := render.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	m, err := manifest.Load(dir)
	if err != nil {
		return err
	}
	// Fail on an unknown license before anything is written.
	if _, err := catalog.LookupLicense(m.License); err != nil {
		return err
	}

	writer, err := output.New(dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := &pipeline{
		cfg:      cfg,
		manifest: m,
		composer: compose.New(dir, normalizerFor(cfg), logger),
		renderer: renderer,
		writer:   writer,
		logger:   logger,
	}
	p.versions = resolveVersions(ctx, cfg, m, fetch.New(cfg.PyPIURL), logger)
	p.changes = changelogText(ctx, cfg, dir, logger)

	written, err := p.run()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Written: ")+strings.Join(written, ", "))
	return nil
}

// pipeline holds everything one generation run needs.
type pipeline struct {
	cfg      *config.Config
	manifest *manifest.Manifest
	composer *compose.Composer
	renderer core.Renderer
	writer   *output.Writer
	logger   *log.Logger
	versions map[string]string
	changes  string
}

// run writes the README and/or the manual and returns the written paths.
func (p *pipeline) run() ([]string, error) {
	var written []string

	if p.cfg.Readme {
		text, err := p.composer.Overview(p.manifest, compose.OverviewOptions{
			Lang:        p.cfg.Lang,
			Comments:    p.cfg.Comments,
			ImageFolder: p.cfg.ImageFolder,
			Changes:     p.changes,
			Versions:    p.versions,
		})
		if err != nil {
			return written, fmt.Errorf("composing README: %w", err)
		}
		path := p.cfg.ReadmePath
		if path == "" {
			path = p.writer.ReadmePath(p.renderer.Extension())
		}
		if err := p.emit(core.KindReadme, text, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if p.cfg.Manual {
		text, err := p.composer.Manual(p.manifest, compose.ManualOptions{
			Lang:        p.cfg.Lang,
			Banner:      p.cfg.Banner,
			ImageFolder: p.cfg.ImageFolder,
			Versions:    p.versions,
		})
		if err != nil {
			return written, fmt.Errorf("composing manual: %w", err)
		}
		path := p.cfg.ManualPath
		if path == "" {
			path, err = p.writer.ManualPath(p.manifest.Name, p.renderer.Extension())
			if err != nil {
				return written, err
			}
		}
		if err := p.emit(core.KindManual, text, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// emit renders markdown with the configured renderer and writes it to path.
func (p *pipeline) emit(kind core.DocKind, markdown string, path string) error {
	doc := core.Document{
		Meta:     metadata(p.manifest, kind, p.cfg.Lang),
		Markdown: markdown,
	}
	data, err := p.renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if _, err := p.writer.Write(path, data); err != nil {
		return err
	}
	p.logger.Debug("written", "kind", kind, "path", path, "bytes", len(data))
	return nil
}

// metadata describes a generated document.
func metadata(m *manifest.Manifest, kind core.DocKind, lang string) core.DocMetadata {
	return core.DocMetadata{
		Module:      m.Name,
		Kind:        kind,
		Title:       m.LocalizedTitle(lang),
		Language:    lang,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func normalizerFor(cfg *config.Config) core.Normalizer {
	if cfg.HTML {
		return normalize.New()
	}
	return normalize.Passthrough{}
}

// changelogText refreshes CHANGES.txt from git and returns its content.
// Failures only drop the section.
func changelogText(ctx context.Context, cfg *config.Config, dir string, logger *log.Logger) string {
	if !cfg.Changelog {
		return ""
	}
	if _, err := changelog.New(changelogRunner, logger).Derive(ctx, dir); err != nil {
		if errors.Is(err, changelog.ErrNoEntries) {
			logger.Debug("no merge history for changelog", "dir", dir)
		} else {
			logger.Warn("skipping changelog", "err", err)
		}
	}
	text, err := changelog.Read(dir)
	if err != nil {
		logger.Warn("skipping changelog", "err", err)
		return ""
	}
	return text
}

// resolveVersions looks up unpinned dependencies when enabled. A nil map
// means versions are not shown at all.
func resolveVersions(ctx context.Context, cfg *config.Config, m *manifest.Manifest, resolver core.VersionResolver, logger *log.Logger) map[string]string {
	if !cfg.ResolveVersions {
		return nil
	}
	versions := make(map[string]string, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		if dep.Version != "" {
			continue
		}
		v, err := resolver.LatestVersion(ctx, dep.Name)
		if err != nil {
			logger.Warn("version lookup failed", "dependency", dep.Name, "err", err)
			continue
		}
		versions[dep.Name] = v
	}
	return versions
}
