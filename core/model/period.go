package model

import (
	"fmt"
	"time"
)

// RawInstructionRow is one line of the instruction source before parsing.
// Date is blank on continuation rows; the extractor forward-fills it from the
// most recent non-blank value. Index is the row number in the source sheet,
// kept for error reporting.
type RawInstructionRow struct {
	Index int
	Date  string
	From  string
	To    string
}

// InstructionPeriod is one declared back-down instruction: a time range on a
// calendar day during which the unit is instructed to reduce output. Created
// once by the extractor and read-only thereafter.
type InstructionPeriod struct {
	Day     time.Time
	FromMin int
	ToMin   int
}

// Duration returns the declared length of the instruction in minutes.
func (p InstructionPeriod) Duration() int { return p.ToMin - p.FromMin }

func (p InstructionPeriod) String() string {
	return fmt.Sprintf("%s %s-%s", p.Day.Format("2006-01-02"), ClockString(p.FromMin), ClockString(p.ToMin))
}
