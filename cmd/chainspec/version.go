package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/chainspec"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chainspec",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chainspec version %s\n", strings.TrimSpace(chainspec.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
