package model

import (
	"fmt"
	"time"
)

// SlotMinutes is the length of one reporting block.
const SlotMinutes = 15

// SlotsPerDay is the number of reporting blocks in one day.
const SlotsPerDay = 24 * 60 / SlotMinutes

// TimeSlot is one 15-minute reporting interval [Start, End) anchored to a
// calendar day. Slots partition the day into exactly SlotsPerDay instances
// indexed by start time. All times are naive wall-clock values; the day is
// carried as a midnight time.Time in UTC purely as a container, no time zone
// semantics are attached.
type TimeSlot struct {
	Day      time.Time
	StartMin int // minutes since midnight, always a multiple of SlotMinutes
}

// Date builds a naive calendar day at midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Start returns the slot start as an absolute instant on its day.
func (s TimeSlot) Start() time.Time {
	return s.Day.Add(time.Duration(s.StartMin) * time.Minute)
}

// End returns the slot end, always Start plus 15 minutes.
func (s TimeSlot) End() time.Time {
	return s.Start().Add(SlotMinutes * time.Minute)
}

// EndMin returns the slot end in minutes since midnight.
func (s TimeSlot) EndMin() int { return s.StartMin + SlotMinutes }

// Index returns the slot position within its day, 0 through SlotsPerDay-1.
func (s TimeSlot) Index() int { return s.StartMin / SlotMinutes }

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day.Format("2006-01-02"), ClockString(s.StartMin), ClockString(s.EndMin()))
}

// ClockString renders minutes since midnight as HH:MM, wrapping at 24h so a
// slot ending exactly at midnight prints as 00:00.
func ClockString(min int) string {
	min = min % (24 * 60)
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
