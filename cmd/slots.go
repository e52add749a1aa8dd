package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
	"github.com/tryathq/backdown/infra/excel"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Preview the slot expansion of the instruction sheet",
	Long: `Reads the instruction workbook and prints the 15-minute slots each
instruction period expands to, without touching DC or SCADA data. Useful to
check the instruction sheet before a full run.`,
	RunE: runSlots,
}

func init() {
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	raw, err := excel.LoadInstructions(cfg.Inputs.Instructions)
	if err != nil {
		return err
	}
	periods, err := report.Extract(raw)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range periods {
		slots, err := report.SlotsFor(p)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", p, err)
			continue
		}
		suffix := ""
		if _, err := cfg.Ramp.Params().InitialOffset(p.Duration()); err != nil {
			suffix = " (no ramp offset for this duration)"
		}
		fmt.Fprintf(out, "%s: %d slots%s\n", p, len(slots), suffix)
		for _, s := range slots {
			fmt.Fprintf(out, "  %s-%s\n", model.ClockString(s.StartMin), model.ClockString(s.EndMin()))
		}
	}
	fmt.Fprintf(out, "%d periods over %d days\n", len(periods), len(report.Days(periods)))
	return nil
}
