package report

import "github.com/tryathq/backdown/core/model"

// RampParams holds the arithmetic constants of the regulatory tolerance
// curve. The same values are handed to the spreadsheet writer so the emitted
// formulas and the computed cells cannot drift apart.
type RampParams struct {
	// Offset5/10/15 is the first-slot offset subtracted from declared
	// capacity, selected by the instruction's declared duration.
	Offset5  float64
	Offset10 float64
	Offset15 float64
	// DownPerSlot is the decrement applied on every subsequent slot.
	DownPerSlot float64
	// FloorMW is the clamp floor of the curve. Once reached, the curve stays
	// there for the rest of the period.
	FloorMW float64
	// EnergyDivisor converts a MW difference over one block into MU.
	EnergyDivisor float64
}

// DefaultRampParams returns the prescribed regulatory constants.
func DefaultRampParams() RampParams {
	return RampParams{
		Offset5:       15,
		Offset10:      27.5,
		Offset15:      40,
		DownPerSlot:   40,
		FloorMW:       270,
		EnergyDivisor: 4000,
	}
}

// InitialOffset returns the first-slot offset for an instruction of the
// given declared duration. Only 5-, 10- and 15-minute instructions have a
// documented offset; anything else is rejected rather than extrapolated.
func (p RampParams) InitialOffset(durationMin int) (float64, error) {
	switch durationMin {
	case 5:
		return p.Offset5, nil
	case 10:
		return p.Offset10, nil
	case 15:
		return p.Offset15, nil
	}
	return 0, &UnsupportedDurationError{Minutes: durationMin}
}

// Derive fills the four dependent columns of a row from whichever inputs are
// present. A column whose input is blank stays blank; non-compliance energy
// clamps negative differences to zero, while back-down energy keeps its sign.
func (p RampParams) Derive(rec *model.SlotRecord) {
	if rec.DC != nil && rec.Scada != nil {
		d := *rec.DC - *rec.Scada
		rec.DiffBD = model.Float(d)
		rec.EnergyBD = model.Float(d / p.EnergyDivisor)
	}
	if rec.Scada != nil && rec.Ramp != nil {
		d := *rec.Scada - *rec.Ramp
		rec.DiffNC = model.Float(d)
		if d > 0 {
			rec.EnergyNC = model.Float(d / p.EnergyDivisor)
		} else {
			rec.EnergyNC = model.Float(0)
		}
	}
}

// RampCalculator produces the "MW as per ramp" curve for one instruction
// period. The only state is the previous slot's value; it never crosses
// period boundaries, so call Reset (or allocate a fresh calculator) at the
// start of each period.
type RampCalculator struct {
	params RampParams
	prev   *float64
}

func NewRampCalculator(params RampParams) *RampCalculator {
	return &RampCalculator{params: params}
}

// Reset clears the carried state for a new period.
func (c *RampCalculator) Reset() { c.prev = nil }

// Initialized reports whether the period's curve has started, i.e. a slot
// with a declared capacity has been seen.
func (c *RampCalculator) Initialized() bool { return c.prev != nil }

// Next returns the ramp value for the next slot of the period.
//
// Until the curve is initialized each slot re-attempts the first-slot
// computation: if dc is nil the slot's ramp value is blank and the state does
// not advance, so the following slot is treated as a first slot again. Once
// initialized the recurrence needs only the previous value; dc is ignored.
func (c *RampCalculator) Next(dc *float64, offset float64) *float64 {
	if c.prev == nil {
		if dc == nil {
			return nil
		}
		v := *dc - offset
		c.prev = &v
		return model.Float(v)
	}
	v := *c.prev - c.params.DownPerSlot
	if v < c.params.FloorMW {
		v = c.params.FloorMW
	}
	c.prev = &v
	return model.Float(v)
}
