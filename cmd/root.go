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

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "backdown",
	Short: "Back-down and non-compliance report generator",
	RunE:  runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	rep, err := svc.GenerateReport(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows from %d instruction periods -> %s\n",
		rep.Title, len(rep.Rows), rep.Periods, cfg.Output.Path)
	if len(rep.Warnings) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d warnings, see log output\n", len(rep.Warnings))
	}
	return nil
}
