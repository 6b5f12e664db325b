package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.settings()
				if err != nil {
					return err
				}
				return printSettings(app, s)
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change one setting",
			Long:      "Change one setting. Keys: " + strings.Join(veritas.SettingKeys, ", ") + ".",
			Args:      cobra.ExactArgs(2),
			ValidArgs: veritas.SettingKeys,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.settings()
				if err != nil {
					return err
				}
				if err := s.Set(args[0], args[1]); err != nil {
					return err
				}
				if err := app.settingsStore().Save(s); err != nil {
					return errors.Wrap(err, "saving settings")
				}
				log.Successf("%s set to %s\n", args[0], args[1])
				return nil
			},
		},
	)

	return cmd
}

func printSettings(app *App, s veritas.Settings) error {
	w := tabwriter.NewWriter(app.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s\n", s.Model)
	fmt.Fprintf(w, "temperature\t%g\n", s.Temperature)
	fmt.Fprintf(w, "max_tokens\t%d\n", s.MaxTokens)
	fmt.Fprintf(w, "enable_history\t%t\n", s.EnableHistory)
	fmt.Fprintf(w, "history_backend\t%s\n", s.HistoryBackend)
	return w.Flush()
}
