package main

import (
	"os"

	"github.com/aretw0/chainspec/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a spec file and print the report",
	Long:  `Loads the spec file, runs every case and prints the report. Exits with status 1 when a case fails.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		banner, _ := cmd.Flags().GetBool("banner")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err := cli.Run(ctx, cli.RunOptions{
			Options:     specOptions(cmd, args),
			Format:      format,
			MetricsAddr: metricsAddr,
			Banner:      banner,
		}, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("format", "f", cli.FormatText, "Report format: text, json or markdown")
	runCmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address while running")
	runCmd.Flags().Bool("banner", false, "Print the banner before a text report")
}
