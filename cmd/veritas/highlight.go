package main

import (
	"fmt"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/highlight"
	"github.com/spf13/cobra"
)

type highlightOutput struct {
	Segments []veritas.HighlightSegment `json:"segments"`
}

func newHighlightCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "highlight <file> <phrase>...",
		Short: "Mark occurrences of phrases in a text file",
		Long:  "Mark every occurrence of each phrase in the file. Earlier phrases win where matches overlap.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readTextFile(args[0])
			if err != nil {
				return err
			}
			phrases := args[1:]
			if err := veritas.ValidatePhrases(phrases); err != nil {
				return err
			}

			segs := highlight.NewSegmenter().Highlight(source, phrases)

			if asJSON {
				if segs == nil {
					segs = []veritas.HighlightSegment{}
				}
				return writeJSON(app.Stdout, highlightOutput{Segments: segs})
			}

			r, err := app.renderer()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout, r.Highlight(segs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print segments as JSON")

	return cmd
}
