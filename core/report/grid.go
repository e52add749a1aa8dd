package report

import (
	"time"

	"github.com/tryathq/backdown/core/model"
)

// SlotsCovering expands the range [fromMin, toMin) on the given day onto the
// canonical 15-minute grid anchored at midnight. The start is floored and the
// end raised to the next boundary, so a 5- or 10-minute instruction still
// occupies one full reporting row. At least one slot is always produced.
func SlotsCovering(day time.Time, fromMin, toMin int) ([]model.TimeSlot, error) {
	if toMin <= fromMin {
		return nil, ErrInvalidRange
	}
	start := fromMin / model.SlotMinutes * model.SlotMinutes
	end := (toMin + model.SlotMinutes - 1) / model.SlotMinutes * model.SlotMinutes
	slots := make([]model.TimeSlot, 0, (end-start)/model.SlotMinutes)
	for m := start; m < end; m += model.SlotMinutes {
		slots = append(slots, model.TimeSlot{Day: day, StartMin: m})
	}
	return slots, nil
}

// SlotsFor expands an instruction period onto the reporting grid.
func SlotsFor(p model.InstructionPeriod) ([]model.TimeSlot, error) {
	return SlotsCovering(p.Day, p.FromMin, p.ToMin)
}
