package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build target directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := newDeployer()
		if err != nil {
			return err
		}
		if err := d.Clean(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Target directory removed")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
