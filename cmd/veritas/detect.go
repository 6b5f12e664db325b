package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/highlight"
	"github.com/fwojciec/veritas/log"
	"github.com/spf13/cobra"
)

var detectExample = `
 * Analyze a file
 veritas detect essay.txt

 * Analyze piped text
 pbpaste | veritas detect

 * Analyze the clipboard and print JSON
 veritas detect --paste --json
 `

type detectOutput struct {
	ID       string                     `json:"id,omitempty"`
	Result   *veritas.DetectionResult   `json:"result"`
	Segments []veritas.HighlightSegment `json:"segments"`
	Stats    veritas.TextStats          `json:"stats"`
}

func newDetectCmd(app *App) *cobra.Command {
	var asJSON, paste bool

	cmd := &cobra.Command{
		Use:     "detect [file]",
		Short:   "Estimate how likely a text is AI-written",
		Example: detectExample,
		Args:    cobra.MaximumNArgs(1),
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
			detector, err := app.detector(ctx)
			if err != nil {
				return err
			}

			stats := veritas.StatsOf(text, app.counter())
			if !asJSON {
				printStats(stats)
			}

			result, err := detector.Detect(ctx, text, settings)
			if err != nil {
				return err
			}
			segs := highlight.NewSegmenter().Highlight(text, result.Phrases)

			id, err := app.record(ctx, settings, veritas.HistoryItem{
				Mode:      veritas.ModeDetect,
				Input:     text,
				Detection: result,
			})
			if err != nil {
				log.Warnf("%s\n", errorMessage(err))
			}

			if asJSON {
				return writeJSON(app.Stdout, detectOutput{ID: id, Result: result, Segments: segs, Stats: stats})
			}
			r, err := app.renderer()
			if err != nil {
				return err
			}
			fmt.Fprint(app.Stdout, r.Detection(result, segs))
			if id != "" {
				log.Plainf("saved as %s\n", id)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&paste, "paste", false, "read the text from the clipboard")

	return cmd
}

func printStats(stats veritas.TextStats) {
	if stats.Tokens > 0 {
		log.Infof("%d words  ·  %d characters  ·  ~%d tokens\n", stats.Words, stats.Chars, stats.Tokens)
		return
	}
	log.Infof("%d words  ·  %d characters\n", stats.Words, stats.Chars)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
