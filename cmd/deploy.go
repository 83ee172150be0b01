package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:     "deploy",
	Aliases: []string{"d"},
	Short:   "Validate, build and sync components to the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := newDeployer()
		if err != nil {
			return err
		}
		result, err := d.Deploy(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d components and %d assets\n",
			len(result.Components), len(result.Assets))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
}
