package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/merkle-open/nitro-frontify-deployer/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Rebuild whenever the component tree changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, log, err := newDeployer()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		rebuild := func(ctx context.Context, changed []string) error {
			log.Info(ctx, "component tree changed", "files", len(changed))
			if err := d.ValidateComponents(); err != nil {
				return err
			}

			return d.BuildComponents(ctx)
		}

		// Initial full build before entering the watch loop.
		if err := rebuild(ctx, nil); err != nil {
			log.Error(ctx, err, "initial build failed")
		}

		tw, err := watcher.New(d.RootDirectory(), 300*time.Millisecond, rebuild)
		if err != nil {
			return err
		}
		log.Info(ctx, "watching for changes", "root", d.RootDirectory())

		err = tw.Run(ctx, func(err error) {
			log.Error(ctx, err, "rebuild failed")
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
