package main

import (
	"github.com/aretw0/chainspec/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Start the HTTP server",
	Long:  `Exposes the spec file over HTTP: POST /run runs it, GET /graph draws it and GET /metrics reports Prometheus metrics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Options: specOptions(cmd, args),
			Addr:    addr,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
