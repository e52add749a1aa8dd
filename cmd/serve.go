package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tryathq/backdown/app"
	"github.com/tryathq/backdown/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report history over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Store.Enabled = true
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	return svc.Serve(ctx)
}
