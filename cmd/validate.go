package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"v"},
	Short:   "Validate all component metadata against the schema and mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := newDeployer()
		if err != nil {
			return err
		}
		if err := d.ValidateComponents(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All components are valid")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
