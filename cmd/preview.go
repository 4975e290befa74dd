package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/moddoc/core/catalog"
	"github.com/gaurav-prasanna/moddoc/core/changelog"
	"github.com/gaurav-prasanna/moddoc/core/compose"
	"github.com/gaurav-prasanna/moddoc/core/fetch"
	"github.com/gaurav-prasanna/moddoc/core/manifest"
)

func newPreviewCmd(globals *globalFlags) *cobra.Command {
	var (
		readme bool
		style  string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "preview [module-path]",
		Short: "Render the manual or README in the terminal without writing files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := moduleDir(args)
			cfg, err := loadConfig(cmd, globals, dir)
			if err != nil {
				return err
			}
			if err := catalog.CheckLanguage(cfg.Lang); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			m, err := manifest.Load(dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			versions := resolveVersions(ctx, cfg, m, fetch.New(cfg.PyPIURL), logger)
			composer := compose.New(dir, normalizerFor(cfg), logger)

			var text string
			if readme {
				// Preview never touches git; an existing CHANGES.txt is shown as is.
				changes, err := changelog.Read(dir)
				if err != nil {
					logger.Warn("skipping changelog", "err", err)
				}
				text, err = composer.Overview(m, compose.OverviewOptions{
					Lang:        cfg.Lang,
					Comments:    cfg.Comments,
					ImageFolder: cfg.ImageFolder,
					Changes:     changes,
					Versions:    versions,
				})
				if err != nil {
					return err
				}
			} else {
				text, err = composer.Manual(m, compose.ManualOptions{
					Lang:        cfg.Lang,
					Banner:      cfg.Banner,
					ImageFolder: cfg.ImageFolder,
					Versions:    versions,
				})
				if err != nil {
					return err
				}
			}

			out, err := renderTerminal(text, style, width)
			if err != nil {
				return fmt.Errorf("rendering preview: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&readme, "readme", "r", false, "preview the README instead of the manual")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style (auto, dark, light, notty)")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}

// renderTerminal renders markdown with glamour.
func renderTerminal(markdown, style string, width int) (string, error) {
	var opts []glamour.TermRendererOption
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
