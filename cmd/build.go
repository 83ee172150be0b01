package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build pattern descriptors and rendered markup into the target directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := newDeployer()
		if err != nil {
			return err
		}
		if err := d.ValidateComponents(); err != nil {
			return err
		}
		if err := d.BuildComponents(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Build finished")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
