package main

import (
	"github.com/fwojciec/veritas/fs"
	"github.com/fwojciec/veritas/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached model responses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached detect and humanize response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fs.NewCache(app.cacheDir()).Clear(); err != nil {
				return errors.Wrap(err, "clearing cache")
			}
			log.Success("cache cleared\n")
			return nil
		},
	})

	return cmd
}
