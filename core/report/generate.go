package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/tryathq/backdown/core/logger"
	"github.com/tryathq/backdown/core/model"
)

// Report is the result of one generation run: the assembled rows plus the
// run's bookkeeping for logging and metrics.
type Report struct {
	Title       string
	Rows        []model.SlotRecord
	Periods     int
	DCMisses    int
	ScadaMisses int
	// Warnings holds the per-period failures that left columns blank
	// (unsupported durations, invalid ranges). They never abort the run.
	Warnings []error
}

// Unsupported counts the warnings caused by undefined ramp offsets.
func (r *Report) Unsupported() int {
	n := 0
	for _, w := range r.Warnings {
		var ud *UnsupportedDurationError
		if errors.As(w, &ud) {
			n++
		}
	}
	return n
}

// Generate is the engine's entry point: raw instruction rows plus the two
// read-only value sources in, ordered report rows out. It is pure — no I/O,
// no clock, no shared state — so each call may run on its own goroutine as
// long as the sources are not mutated underneath it.
func Generate(raw []model.RawInstructionRow, dc DCSource, scada ScadaSource, params RampParams, log logger.Logger) (*Report, error) {
	periods, err := Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("extract instruction periods: %w", err)
	}
	res := NewResolver(dc, scada)
	asm := Assembler{Params: params, Resolver: res, Log: log, Summaries: true}
	rows, warnings := asm.Assemble(periods)
	dcMisses, scadaMisses := res.Misses()
	return &Report{
		Title:       Title(periods),
		Rows:        rows,
		Periods:     len(periods),
		DCMisses:    dcMisses,
		ScadaMisses: scadaMisses,
		Warnings:    warnings,
	}, nil
}

// Title derives the report heading from the instruction date range.
func Title(periods []model.InstructionPeriod) string {
	const base = "Back down and Non compliance"
	if len(periods) == 0 {
		return base
	}
	first, last := periods[0].Day, periods[0].Day
	for _, p := range periods[1:] {
		if p.Day.Before(first) {
			first = p.Day
		}
		if p.Day.After(last) {
			last = p.Day
		}
	}
	if first.Equal(last) {
		return fmt.Sprintf("%s for %s", base, first.Format(titleDateLayout))
	}
	return fmt.Sprintf("%s from %s to %s", base, first.Format(titleDateLayout), last.Format(titleDateLayout))
}

const titleDateLayout = "02-Jan-2006"

// Days returns the distinct calendar days the periods touch, in order. The
// loaders use it to know which daily telemetry files to read.
func Days(periods []model.InstructionPeriod) []time.Time {
	var days []time.Time
	seen := make(map[time.Time]bool)
	for _, p := range periods {
		if !seen[p.Day] {
			seen[p.Day] = true
			days = append(days, p.Day)
		}
	}
	return days
}
