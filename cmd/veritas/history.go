package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/highlight"
	"github.com/fwojciec/veritas/log"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show or clear recent runs",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent runs, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openHistory()
				if err != nil {
					return err
				}
				items, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}
				r, err := app.renderer()
				if err != nil {
					return err
				}
				fmt.Fprint(app.Stdout, r.History(items, app.Now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a recorded run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openHistory()
				if err != nil {
					return err
				}
				item, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				r, err := app.renderer()
				if err != nil {
					return err
				}
				fmt.Fprint(app.Stdout, r.Item(*item, worddiff.NewDiffer(), highlight.NewSegmenter()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all recorded runs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openHistory()
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				log.Success("history cleared\n")
				return nil
			},
		},
	)

	return cmd
}

// openHistory opens the history store configured in the settings.
func (a *App) openHistory() (veritas.HistoryStore, error) {
	settings, err := a.settings()
	if err != nil {
		return nil, err
	}
	return a.historyStore(settings)
}

// lookupItem returns the item with id, or the most recent item when id is
// empty.
func lookupItem(ctx context.Context, store veritas.HistoryStore, id string) (*veritas.HistoryItem, error) {
	if id != "" {
		return store.Get(ctx, id)
	}
	items, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, veritas.Errorf(veritas.ENOTFOUND, "history is empty")
	}
	return &items[len(items)-1], nil
}
