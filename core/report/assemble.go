package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tryathq/backdown/core/logger"
	"github.com/tryathq/backdown/core/model"
)

// Assembler joins instruction periods with the two value sources into the
// ordered report rows. Periods are processed strictly in ascending
// (day, from) order and slots within a period in time order; ramp state is
// threaded through one period at a time.
type Assembler struct {
	Params   RampParams
	Resolver *Resolver
	Log      logger.Logger
	// Summaries appends one row per period carrying the period's energy
	// totals, mirroring the hand-built compliance sheet.
	Summaries bool
}

// Assemble produces one row per expected slot of every period, plus summary
// rows when enabled. Per-period structural failures (an undefined ramp
// offset, an invalid range) never abort the remaining periods; they are
// returned as warnings and the affected columns stay blank.
func (a Assembler) Assemble(periods []model.InstructionPeriod) ([]model.SlotRecord, []error) {
	ordered := orderPeriods(periods)
	calc := NewRampCalculator(a.Params)
	var rows []model.SlotRecord
	var warnings []error
	for _, p := range ordered {
		slots, err := SlotsFor(p)
		if err != nil {
			a.warnf(&warnings, err, "skipping instruction %s: %v", p, err)
			continue
		}
		offset, offErr := a.Params.InitialOffset(p.Duration())
		if offErr != nil {
			a.warnf(&warnings, offErr, "instruction %s: %v, ramp columns left blank", p, offErr)
		}
		calc.Reset()
		var energyBD, energyNC []float64
		for i, slot := range slots {
			rec := model.SlotRecord{Slot: slot, FirstOfPeriod: i == 0}
			day := slot.Day
			rec.Date = &day
			rec.DC = a.Resolver.DC(slot)
			rec.Scada = a.Resolver.Scada(slot)
			if offErr == nil {
				started := calc.Initialized()
				rec.Ramp = calc.Next(rec.DC, offset)
				if rec.Ramp != nil && !started {
					rec.Offset = model.Float(offset)
				}
			}
			a.Params.Derive(&rec)
			if rec.EnergyBD != nil {
				energyBD = append(energyBD, *rec.EnergyBD)
			}
			if rec.EnergyNC != nil {
				energyNC = append(energyNC, *rec.EnergyNC)
			}
			rows = append(rows, rec)
		}
		if a.Summaries {
			sum := model.SlotRecord{Summary: true}
			if len(energyBD) > 0 {
				sum.SumEnergyBD = model.Float(floats.Sum(energyBD))
			}
			if len(energyNC) > 0 {
				sum.SumEnergyNC = model.Float(floats.Sum(energyNC))
			}
			rows = append(rows, sum)
		}
	}
	SuppressRepeatedDates(rows)
	return rows, warnings
}

func (a Assembler) warnf(warnings *[]error, err error, format string, args ...any) {
	*warnings = append(*warnings, err)
	if a.Log != nil {
		a.Log.Warnf(format, args...)
	}
}

// orderPeriods sorts periods by (day, from) and drops duplicates of that
// pair. The input slice is left untouched.
func orderPeriods(periods []model.InstructionPeriod) []model.InstructionPeriod {
	ordered := make([]model.InstructionPeriod, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Day.Equal(ordered[j].Day) {
			return ordered[i].Day.Before(ordered[j].Day)
		}
		return ordered[i].FromMin < ordered[j].FromMin
	})
	deduped := ordered[:0]
	for i, p := range ordered {
		if i > 0 && p.Day.Equal(ordered[i-1].Day) && p.FromMin == ordered[i-1].FromMin {
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// SuppressRepeatedDates blanks the date of every row whose day matches the
// most recent dated row, leaving one dated row per day. It is a presentation
// pass over finished rows, applied after all numeric computation, and is
// idempotent: a date once blanked stays blank on a second run. Summary rows
// carry no date and are skipped.
func SuppressRepeatedDates(rows []model.SlotRecord) {
	var last *model.SlotRecord
	for i := range rows {
		rec := &rows[i]
		if rec.Summary || rec.Date == nil {
			continue
		}
		if last != nil && last.Date != nil && rec.Date.Equal(*last.Date) {
			rec.Date = nil
			continue
		}
		last = rec
	}
}
