package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/dmp"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/spf13/cobra"
)

// Diff engines selectable with --engine.
const (
	engineLCS = "lcs"
	engineDMP = "dmp"
)

type diffOutput struct {
	Segments []veritas.DiffSegment `json:"segments"`
	Stats    veritas.DiffStats     `json:"stats"`
}

func newDiffCmd(app *App) *cobra.Command {
	var asJSON, coalesce bool
	var engine string

	cmd := &cobra.Command{
		Use:   "diff <original> <revised>",
		Short: "Show a word-level diff of two text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := readTextFile(args[0])
			if err != nil {
				return err
			}
			revised, err := readTextFile(args[1])
			if err != nil {
				return err
			}

			var segs []veritas.DiffSegment
			switch engine {
			case engineLCS:
				if segs, err = worddiff.NewDiffer().DiffChecked(original, revised); err != nil {
					return err
				}
			case engineDMP:
				segs = dmp.NewDiffer().Diff(original, revised)
			default:
				return veritas.Errorf(veritas.EINVALID, "unknown engine %q (want %s or %s)", engine, engineLCS, engineDMP)
			}
			if coalesce {
				segs = veritas.CoalesceDiff(segs)
			}

			if asJSON {
				if segs == nil {
					segs = []veritas.DiffSegment{}
				}
				return writeJSON(app.Stdout, diffOutput{Segments: segs, Stats: veritas.DiffStatsOf(segs)})
			}

			r, err := app.renderer()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout, r.Diff(segs))
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print segments as JSON")
	f.BoolVar(&coalesce, "coalesce", false, "merge adjacent segments of the same kind")
	f.StringVar(&engine, "engine", engineLCS, "diff engine: lcs (exact, quadratic) or dmp (fast, for long texts)")

	return cmd
}

// readTextFile reads path and rejects content that is not UTF-8 text.
func readTextFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	s := string(b)
	if err := veritas.ValidateText(path, s); err != nil {
		return "", err
	}
	return s, nil
}
