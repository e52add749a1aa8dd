package model

import "time"

// SlotRecord is one row of the assembled report. Optional values are nil when
// the corresponding cell is blank; missing inputs are never substituted with
// zero, so gaps stay visible in the output.
//
// A record with Summary set carries only the per-period energy totals and
// renders as the period's sum row.
type SlotRecord struct {
	// Date is the row's calendar day. After the date-suppression pass it is
	// set only on the first row of each day; the numeric columns are computed
	// before suppression and never depend on it.
	Date *time.Time
	Slot TimeSlot

	// FirstOfPeriod marks the first slot row of an instruction period.
	FirstOfPeriod bool
	// Offset is the ramp offset subtracted from declared capacity on the row
	// that initialized the period's ramp curve, nil elsewhere. The writer
	// needs it to emit the matching first-row formula.
	Offset *float64

	DC       *float64 // declared capacity, MW
	Scada    *float64 // measured grid telemetry, MW
	Ramp     *float64 // permitted "MW as per ramp" tolerance value
	DiffBD   *float64 // DC - Scada
	EnergyBD *float64 // DiffBD / divisor, sign preserved
	DiffNC   *float64 // Scada - Ramp
	EnergyNC *float64 // DiffNC / divisor clamped at zero

	Summary     bool
	SumEnergyBD *float64
	SumEnergyNC *float64
}

// Float returns a pointer to v, for filling optional record fields.
func Float(v float64) *float64 { return &v }
