package main

import (
	"errors"

	"github.com/fwojciec/veritas/highlight"
	vhttp "github.com/fwojciec/veritas/http"
	"github.com/fwojciec/veritas/log"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/spf13/cobra"
)

// DefaultAddr is the address the API server binds to by default.
const DefaultAddr = "127.0.0.1:8080"

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diff, highlight, detect and humanize API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s := vhttp.NewServer()
			s.Addr = addr
			s.Differ = worddiff.NewDiffer()
			s.Highlighter = highlight.NewSegmenter()
			s.SettingsStore = app.settingsStore()
			s.NewID = app.NewID
			s.Now = app.Now

			settings, err := app.settings()
			if err != nil {
				return err
			}
			if s.HistoryStore, err = app.historyStore(settings); err != nil {
				return err
			}

			// Without a key the offline engines are still served.
			if s.Detector, err = app.detector(ctx); err != nil {
				if !errors.Is(err, ErrNoAPIKey) {
					return err
				}
				log.Warnf("%s; /api/detect and /api/humanize are disabled\n", errorMessage(err))
			}
			if s.Detector != nil {
				if s.Humanizer, err = app.humanizer(ctx); err != nil {
					return err
				}
			}

			return vhttp.ListenAndServe(ctx, s)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", DefaultAddr, "address to listen on")

	return cmd
}
