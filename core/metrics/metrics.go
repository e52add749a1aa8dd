package metrics

import "time"

// ReportEvent summarizes one report generation run.
type ReportEvent struct {
	Rows        int
	Periods     int
	DCMisses    int
	ScadaMisses int
	Unsupported int
	Duration    time.Duration
	Time        time.Time
}

// Sink records report generation events for observability purposes.
type Sink interface {
	RecordReport(ev ReportEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordReport(ReportEvent) error { return nil }
