package main

import (
	"fmt"

	"github.com/aretw0/chainspec/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the action tree visualization",
	Long:  `Compiles the spec file and outputs a Mermaid diagram (graph TD) of its action tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cli.Graph(cmd.Context(), specOptions(cmd, args))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
