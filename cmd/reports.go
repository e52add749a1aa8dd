package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/infra/store"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Report history commands",
}

var reportsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List persisted report runs, newest first",
	RunE:  runReportsLs,
}

func init() {
	reportsCmd.AddCommand(reportsLsCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runReportsLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s, err := store.New(cfg.Store.Dir)
	if err != nil {
		return err
	}
	entries, err := s.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no reports stored")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s  %d rows  %d periods  %s\n",
			e.RunAt.Format("2006-01-02 15:04"), e.ID, e.Rows, e.Periods, e.Title)
	}
	return nil
}
