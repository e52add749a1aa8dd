package report

import (
	"time"

	"github.com/tryathq/backdown/core/model"
)

// DCSource supplies the revised declared-capacity schedule, keyed by exact
// slot start. Populated by an external loader; the engine never mutates it.
type DCSource interface {
	DC(slot model.TimeSlot) (float64, bool)
}

// ScadaSource supplies the measured grid telemetry, keyed by exact slot
// start.
type ScadaSource interface {
	Scada(slot model.TimeSlot) (float64, bool)
}

// SlotValues is an in-memory source keyed by slot start instant. It
// implements both DCSource and ScadaSource.
type SlotValues map[time.Time]float64

func (m SlotValues) DC(slot model.TimeSlot) (float64, bool) {
	v, ok := m[slot.Start()]
	return v, ok
}

func (m SlotValues) Scada(slot model.TimeSlot) (float64, bool) {
	v, ok := m[slot.Start()]
	return v, ok
}

// Resolver looks up a slot's values in the two sources. Lookups are exact
// (date plus slot start): no interpolation, no nearest-neighbor fallback. A
// miss yields nil, never an error; the assembler records the row with the
// cell blank. Misses are counted for the run summary.
//
// A Resolver belongs to one report generation. Concurrent generations must
// each use their own instance.
type Resolver struct {
	dc          DCSource
	scada       ScadaSource
	dcMisses    int
	scadaMisses int
}

func NewResolver(dc DCSource, scada ScadaSource) *Resolver {
	return &Resolver{dc: dc, scada: scada}
}

func (r *Resolver) DC(slot model.TimeSlot) *float64 {
	if r.dc != nil {
		if v, ok := r.dc.DC(slot); ok {
			return model.Float(v)
		}
	}
	r.dcMisses++
	return nil
}

func (r *Resolver) Scada(slot model.TimeSlot) *float64 {
	if r.scada != nil {
		if v, ok := r.scada.Scada(slot); ok {
			return model.Float(v)
		}
	}
	r.scadaMisses++
	return nil
}

// Misses returns how many DC and SCADA lookups found no value.
func (r *Resolver) Misses() (dc, scada int) { return r.dcMisses, r.scadaMisses }
