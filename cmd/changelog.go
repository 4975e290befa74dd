package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/moddoc/core/changelog"
)

func newChangelogCmd(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "changelog [module-path]",
		Short: "Derive CHANGES.txt from the module's git merge history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := moduleDir(args)
			cfg, err := loadConfig(cmd, globals, dir)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			text, err := changelog.New(changelogRunner, logger).Derive(ctx, dir)
			if errors.Is(err, changelog.ErrNoEntries) {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("No merge entries found; "+changelog.FileName+" left unchanged"))
				return nil
			}
			if err != nil {
				return err
			}

			entries := len(strings.Split(text, "\n"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s (%d entries)\n",
				SuccessStyle.Render("✓ Written: "), filepath.Join(dir, changelog.FileName), entries)
			return nil
		},
	}
}
