package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/claude-memory/claude-memory/internal/api"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		eng, cfg, cleanup, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		cfg.RestAPI.Enabled = true

		server := api.NewServer(eng, cfg)
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}
