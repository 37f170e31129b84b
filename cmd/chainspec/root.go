package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/chainspec/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chainspec",
	Short: "chainspec runs fluent assertion specs against live values",
	Long: `chainspec loads YAML spec files describing chains of property reads and
assertions, realizes them into groups and cases and runs them, retrying
shouldEventually chains until the subject converges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrFailures) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log every node execution and retry to stderr")
	rootCmd.PersistentFlags().Int("max-retries", -1, "Override the retry limit of eventual assertions")
	rootCmd.PersistentFlags().Bool("eventually", false, "Treat every should chain as shouldEventually")
}

// specOptions reads the flags shared by every command working on a spec file.
func specOptions(cmd *cobra.Command, args []string) cli.Options {
	debug, _ := cmd.Flags().GetBool("debug")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	eventually, _ := cmd.Flags().GetBool("eventually")
	return cli.Options{
		File:       args[0],
		MaxRetries: maxRetries,
		Eventually: eventually,
		Debug:      debug,
	}
}
