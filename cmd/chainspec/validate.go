package main

import (
	"fmt"

	"github.com/aretw0/chainspec/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a spec file without running it",
	Long:  `Parses the spec file, builds its action tree and realizes it, reporting every error found.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := cli.Validate(cmd.Context(), specOptions(cmd, args))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Spec is valid! ✅ (%d case(s))\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
