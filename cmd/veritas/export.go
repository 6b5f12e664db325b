package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a recorded run as JSON",
		Long:  "Export a recorded run as JSON. Without an id the most recent run is exported.",
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

			now := app.Now()
			data, err := json.MarshalIndent(veritas.NewExport(*item, now), "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if save && output == "" {
				output = veritas.ExportFilename(item.Mode, now)
			}
			if output != "" {
				if dir := filepath.Dir(output); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return errors.Wrap(err, "creating export directory")
					}
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return errors.Wrapf(err, "writing %s", output)
				}
				log.Successf("exported to %s\n", output)
				return nil
			}

			tokenizer, err := app.tokenizer()
			if err != nil {
				return err
			}
			tokens := tokenizer.Tokenize("json", string(data))
			if tokens == nil {
				_, err := app.Stdout.Write(data)
				return err
			}
			r, err := app.renderer()
			if err != nil {
				return err
			}
			fmt.Fprint(app.Stdout, r.Tokens(tokens))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "write the export to this file")
	f.BoolVar(&save, "save", false, "write the export to the default file name in the current directory")

	return cmd
}
