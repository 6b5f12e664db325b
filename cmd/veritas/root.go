package main

import (
	"context"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree around app.
func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "veritas",
		Short:         "Veritas - AI text detection and humanization",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&app.ConfigDir, "config-dir", app.ConfigDir, "directory holding settings.toml (defaults to standard location)")
	f.StringVar(&app.DataDir, "data-dir", app.DataDir, "directory holding the history (defaults to standard location)")
	f.StringVar(&app.ThemeName, "theme", app.ThemeName, "color theme: dark or light")

	root.AddCommand(
		newDetectCmd(app),
		newHumanizeCmd(app),
		newDiffCmd(app),
		newHighlightCmd(app),
		newHistoryCmd(app),
		newSettingsCmd(app),
		newExportCmd(app),
		newServeCmd(app),
		newBatchCmd(app),
		newViewCmd(app),
		newCacheCmd(app),
	)

	return root
}

// Execute runs the command named by args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
