// Package cmd implements the CLI commands for moddoc using Cobra.
package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/moddoc/config"
	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/changelog"
	"github.com/gaurav-prasanna/moddoc/core/render"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

// changelogRunner executes git; tests replace it.
var changelogRunner changelog.Runner = changelog.CmdRunner{}

// globalFlags are shared by every command.
type globalFlags struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	globals := &globalFlags{}
	gen := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "moddoc [module-path]",
		Short: "Generate README and manual Markdown from a module manifest",
		Long: TitleStyle.Render("moddoc") + SubtitleStyle.Render(" - documentation from package.json") + `

moddoc reads the package.json manifest of a module and writes a README
overview and a detailed manual, with fixed text in Spanish, English or
Portuguese around the manifest data.

` + SubtitleStyle.Render("Examples:") + `
  moddoc ./gmail                  README.md and docs/Manual_gmail.md in Spanish
  moddoc ./gmail -l en -m         Only the manual, in English
  moddoc ./gmail -r --comments "Requires an app password."
  moddoc ./gmail --format pdf     Manual and README as PDF
  moddoc preview ./gmail -l en    Render the manual in the terminal`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, globals, gen, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&globals.configFile, "config", "", "config file (default is {module}/"+config.FileName+")")
	pf.BoolVar(&globals.verbose, "verbose", false, "enable debug logging")
	pf.StringP("lang", "l", "es", "document language ("+strings.Join(catalog.Languages(), ", ")+")")
	pf.String("image-folder", "example", "module folder holding {command}.png images")
	pf.String("banner", "", "banner image for the manual (default /docs/imgs/Banner_{module}.png when present)")
	pf.String("comments", "", "free text inserted before the README command list")
	pf.Bool("html", true, "convert HTML in manifest text to Markdown")
	pf.Bool("resolve-versions", false, "look up unpinned dependency versions on PyPI")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.BoolVarP(&gen.manualOnly, "manual", "m", false, "generate only the manual")
	f.BoolVarP(&gen.readmeOnly, "readme", "r", false, "generate only the README")
	f.String("format", render.FormatMarkdown, "output format ("+strings.Join(render.Formats, ", ")+")")
	f.StringP("output", "o", "", "manual output path (default {module}/docs/Manual_{name}.md)")
	f.String("readme-output", "", "README output path (default {module}/README.md)")
	f.BoolVar(&gen.noChangelog, "no-changelog", false, "do not derive CHANGES.txt from git history")
	f.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "module" {
			name = "manual"
		}
		return pflag.NormalizedName(name)
	})

	cmd.AddCommand(newPreviewCmd(globals))
	cmd.AddCommand(newChangelogCmd(globals))
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// moduleDir returns the positional module path or the working directory.
func moduleDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

// loadConfig resolves settings for moduleDir and applies the global flags.
func loadConfig(cmd *cobra.Command, globals *globalFlags, dir string) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ModuleDir:  dir,
		ConfigFile: globals.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if globals.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "moddoc"})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
