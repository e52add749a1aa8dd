package config

import (
	"fmt"

	"github.com/tryathq/backdown/core/report"
)

// RampConfig exposes the tolerance-curve constants. They are regulatory
// numbers and rarely change; the overrides exist for what-if runs.
type RampConfig struct {
	Offset5MW       float64 `json:"offset_5_mw"`
	Offset10MW      float64 `json:"offset_10_mw"`
	Offset15MW      float64 `json:"offset_15_mw"`
	DownPerSlotMW   float64 `json:"down_per_slot_mw"`
	FloorMW         float64 `json:"floor_mw"`
	EnergyDivisorMW float64 `json:"energy_divisor_mw"`
}

// SetDefaults fills in the prescribed constants for any field left at zero.
func (c *RampConfig) SetDefaults() {
	def := report.DefaultRampParams()
	if c.Offset5MW == 0 {
		c.Offset5MW = def.Offset5
	}
	if c.Offset10MW == 0 {
		c.Offset10MW = def.Offset10
	}
	if c.Offset15MW == 0 {
		c.Offset15MW = def.Offset15
	}
	if c.DownPerSlotMW == 0 {
		c.DownPerSlotMW = def.DownPerSlot
	}
	if c.FloorMW == 0 {
		c.FloorMW = def.FloorMW
	}
	if c.EnergyDivisorMW == 0 {
		c.EnergyDivisorMW = def.EnergyDivisor
	}
}

// Validate checks the configuration ranges.
func (c RampConfig) Validate() error {
	if c.DownPerSlotMW <= 0 {
		return fmt.Errorf("down_per_slot_mw must be >0")
	}
	if c.FloorMW < 0 {
		return fmt.Errorf("floor_mw must not be negative")
	}
	if c.EnergyDivisorMW <= 0 {
		return fmt.Errorf("energy_divisor_mw must be >0")
	}
	return nil
}

// Params converts the section into the engine's parameter set.
func (c RampConfig) Params() report.RampParams {
	return report.RampParams{
		Offset5:       c.Offset5MW,
		Offset10:      c.Offset10MW,
		Offset15:      c.Offset15MW,
		DownPerSlot:   c.DownPerSlotMW,
		FloorMW:       c.FloorMW,
		EnergyDivisor: c.EnergyDivisorMW,
	}
}
