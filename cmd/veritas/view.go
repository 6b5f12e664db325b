package main

import (
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "Browse a recorded run in an interactive viewer",
		Long:  "Browse a recorded run in an interactive viewer. Without an id the most recent run is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openHistory()
			if err != nil {
				return err
			}
			var id string
			if len(args) > 0 {
				id = args[0]
			}
			item, err := lookupItem(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			viewer, err := app.viewer()
			if err != nil {
				return err
			}
			return viewer.View(cmd.Context(), *item)
		},
	}
}
