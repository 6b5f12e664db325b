package main

import (
	"fmt"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/spf13/cobra"
)

type humanizeOutput struct {
	ID       string                  `json:"id,omitempty"`
	Result   *veritas.HumanizeResult `json:"result"`
	Segments []veritas.DiffSegment   `json:"segments"`
	Stats    veritas.TextStats       `json:"stats"`
}

func newHumanizeCmd(app *App) *cobra.Command {
	var asJSON, paste, copyResult bool

	cmd := &cobra.Command{
		Use:   "humanize [file]",
		Short: "Rewrite a text so it reads as human-written and show the changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := app.readInput(args, paste)
			if err != nil {
				return err
			}
			settings, err := app.settings()
			if err != nil {
				return err
			}
			humanizer, err := app.humanizer(ctx)
			if err != nil {
				return err
			}

			stats := veritas.StatsOf(text, app.counter())
			if !asJSON {
				printStats(stats)
			}
			// The rewrite is about as long as the input, so an input over the
			// output limit will likely be cut off.
			if stats.Tokens > settings.MaxTokens {
				log.Warnf("input is ~%d tokens but max_tokens is %d; the rewrite may be truncated\n", stats.Tokens, settings.MaxTokens)
			}

			result, err := humanizer.Humanize(ctx, text, settings)
			if err != nil {
				return err
			}
			segs, err := worddiff.NewDiffer().DiffChecked(result.OriginalText, result.HumanizedText)
			if err != nil {
				return err
			}

			id, err := app.record(ctx, settings, veritas.HistoryItem{
				Mode:     veritas.ModeHumanize,
				Input:    text,
				Humanize: result,
			})
			if err != nil {
				log.Warnf("%s\n", errorMessage(err))
			}

			if copyResult {
				if err := app.clipboard().Copy(result.HumanizedText); err != nil {
					log.Warnf("copying to clipboard: %s\n", err)
				} else if !asJSON {
					log.Success("copied to clipboard\n")
				}
			}

			if asJSON {
				return writeJSON(app.Stdout, humanizeOutput{ID: id, Result: result, Segments: segs, Stats: stats})
			}
			r, err := app.renderer()
			if err != nil {
				return err
			}
			fmt.Fprint(app.Stdout, r.Humanize(result, veritas.CoalesceDiff(segs)))
			if id != "" {
				log.Plainf("saved as %s\n", id)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&paste, "paste", false, "read the text from the clipboard")
	f.BoolVar(&copyResult, "copy", false, "copy the rewrite to the clipboard")

	return cmd
}
