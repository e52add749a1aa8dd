package report

import (
	"errors"
	"testing"
	"time"

	"github.com/tryathq/backdown/core/model"
)

func slotValues(day time.Time, startMin int, vals ...float64) SlotValues {
	m := make(SlotValues, len(vals))
	for i, v := range vals {
		m[day.Add(time.Duration(startMin+i*model.SlotMinutes)*time.Minute)] = v
	}
	return m
}

func TestAssembleHourLongInstruction(t *testing.T) {
	day := model.Date(2024, time.March, 5)
	dc := slotValues(day, 0, 500, 500, 500, 500)
	scada := slotValues(day, 0, 480, 460, 455, 450)
	asm := Assembler{
		Params:   DefaultRampParams(),
		Resolver: NewResolver(dc, scada),
	}
	p := model.InstructionPeriod{Day: day, FromMin: 0, ToMin: 60}
	rows, warnings := asm.Assemble([]model.InstructionPeriod{p})

	// A 60-minute instruction has no documented ramp offset: all four of its
	// slots are still reported, but the curve and its dependent columns stay
	// blank.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	var ud *UnsupportedDurationError
	if !errors.As(warnings[0], &ud) || ud.Minutes != 60 {
		t.Fatalf("warning: %v", warnings[0])
	}
	for i, rec := range rows {
		if rec.DC == nil || rec.Scada == nil {
			t.Fatalf("row %d: sources should still resolve", i)
		}
		if rec.Ramp != nil || rec.Offset != nil || rec.DiffNC != nil || rec.EnergyNC != nil {
			t.Fatalf("row %d: ramp columns should be blank", i)
		}
		if rec.DiffBD == nil {
			t.Fatalf("row %d: back-down columns do not depend on the curve", i)
		}
	}
	if !almost(*rows[0].DiffBD, 20) || !almost(*rows[0].EnergyBD, 0.005) {
		t.Fatalf("row 0 back-down: %v %v", *rows[0].DiffBD, *rows[0].EnergyBD)
	}
}

func TestAssembleRampThreadedThroughPeriod(t *testing.T) {
	day := model.Date(2024, time.March, 5)
	dc := slotValues(day, 9*60, 492.7, 492.7, 492.7, 492.7)
	scada := slotValues(day, 9*60, 470, 430, 400, 350)
	asm := Assembler{
		Params:   DefaultRampParams(),
		Resolver: NewResolver(dc, scada),
	}
	p := model.InstructionPeriod{Day: day, FromMin: 9 * 60, ToMin: 9*60 + 15}
	rows, warnings := asm.Assemble([]model.InstructionPeriod{p, {Day: day, FromMin: 9*60 + 30, ToMin: 9*60 + 45}})
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Ramp == nil || !almost(*first.Ramp, 452.7) {
		t.Fatalf("first ramp: %v", first.Ramp)
	}
	if first.Offset == nil || *first.Offset != 40 {
		t.Fatalf("first slot should record its offset: %v", first.Offset)
	}
	if !first.FirstOfPeriod {
		t.Fatalf("first slot flag missing")
	}
	// Second period starts its own curve from its own DC, not 452.7-40.
	second := rows[1]
	if second.Ramp == nil || !almost(*second.Ramp, 452.7) {
		t.Fatalf("second period did not restart the curve: %v", *second.Ramp)
	}
	if !second.FirstOfPeriod {
		t.Fatalf("second period first-slot flag missing")
	}
}

func TestAssembleOrdersAndDeduplicates(t *testing.T) {
	d1 := model.Date(2024, time.March, 5)
	d2 := model.Date(2024, time.March, 6)
	periods := []model.InstructionPeriod{
		{Day: d2, FromMin: 600, ToMin: 615},
		{Day: d1, FromMin: 900, ToMin: 915},
		{Day: d1, FromMin: 600, ToMin: 615},
		{Day: d1, FromMin: 600, ToMin: 615},
	}
	asm := Assembler{Params: DefaultRampParams(), Resolver: NewResolver(nil, nil)}
	rows, _ := asm.Assemble(periods)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows after dedup, got %d", len(rows))
	}
	if rows[0].Slot.StartMin != 600 || !rows[0].Slot.Day.Equal(d1) {
		t.Fatalf("rows not in chronological order: %+v", rows[0].Slot)
	}
	if rows[1].Slot.StartMin != 900 || !rows[2].Slot.Day.Equal(d2) {
		t.Fatalf("rows not in chronological order")
	}
}

func TestAssembleSummaryRows(t *testing.T) {
	day := model.Date(2024, time.March, 5)
	dc := slotValues(day, 0, 500, 500)
	scada := slotValues(day, 0, 480, 470)
	asm := Assembler{
		Params:    DefaultRampParams(),
		Resolver:  NewResolver(dc, scada),
		Summaries: true,
	}
	p := model.InstructionPeriod{Day: day, FromMin: 0, ToMin: 30}
	rows, _ := asm.Assemble([]model.InstructionPeriod{p})
	// Two slot rows plus one summary, even though the 30-minute duration
	// leaves the ramp blank.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	sum := rows[2]
	if !sum.Summary {
		t.Fatalf("last row should be the summary")
	}
	if sum.SumEnergyBD == nil || !almost(*sum.SumEnergyBD, 0.005+0.0075) {
		t.Fatalf("summary back-down energy: %v", sum.SumEnergyBD)
	}
	if sum.SumEnergyNC != nil {
		t.Fatalf("no non-compliance energy to sum, got %v", *sum.SumEnergyNC)
	}
	if sum.Date != nil {
		t.Fatalf("summary rows carry no date")
	}
}

func TestAssembleMissingScadaLeavesRowBlank(t *testing.T) {
	day := model.Date(2024, time.March, 5)
	dc := slotValues(day, 0, 500)
	asm := Assembler{Params: DefaultRampParams(), Resolver: NewResolver(dc, nil)}
	p := model.InstructionPeriod{Day: day, FromMin: 0, ToMin: 15}
	rows, warnings := asm.Assemble([]model.InstructionPeriod{p})
	if len(warnings) != 0 {
		t.Fatalf("a lookup miss is not a warning: %v", warnings)
	}
	rec := rows[0]
	if rec.Scada != nil || rec.DiffBD != nil || rec.EnergyBD != nil || rec.DiffNC != nil || rec.EnergyNC != nil {
		t.Fatalf("measured columns should all be blank: %+v", rec)
	}
	// The curve still starts from DC alone.
	if rec.Ramp == nil || !almost(*rec.Ramp, 460) {
		t.Fatalf("ramp: %v", rec.Ramp)
	}
}

func TestSuppressRepeatedDates(t *testing.T) {
	d1 := model.Date(2024, time.March, 5)
	d2 := model.Date(2024, time.March, 6)
	rows := []model.SlotRecord{
		{Date: &d1},
		{Date: &d1},
		{Summary: true},
		{Date: &d1},
		{Date: &d2},
		{Date: &d2},
	}
	SuppressRepeatedDates(rows)
	want := []bool{true, false, false, false, true, false}
	for i, w := range want {
		if (rows[i].Date != nil) != w {
			t.Fatalf("row %d: dated=%v want %v", i, rows[i].Date != nil, w)
		}
	}
	// Idempotent: a second pass changes nothing.
	SuppressRepeatedDates(rows)
	for i, w := range want {
		if (rows[i].Date != nil) != w {
			t.Fatalf("second pass row %d: dated=%v want %v", i, rows[i].Date != nil, w)
		}
	}
}
