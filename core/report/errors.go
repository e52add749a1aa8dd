package report

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports a time range whose end does not come after its
// start. Overnight instructions are not supported; a period belongs to one
// calendar day.
var ErrInvalidRange = errors.New("time range end must be after start")

// MalformedPeriodError reports an instruction row that could not be parsed.
// It aborts the whole extraction: a silently truncated period list would
// change the report's row count.
type MalformedPeriodError struct {
	Row int
	Err error
}

func (e *MalformedPeriodError) Error() string {
	return fmt.Sprintf("instruction row %d: %v", e.Row, e.Err)
}

func (e *MalformedPeriodError) Unwrap() error { return e.Err }

// UnsupportedDurationError reports an instruction duration that has no
// defined ramp offset. The period's rows are still emitted with the ramp
// columns blank; other periods are unaffected.
type UnsupportedDurationError struct {
	Minutes int
}

func (e *UnsupportedDurationError) Error() string {
	return fmt.Sprintf("no ramp offset defined for a %d-minute instruction", e.Minutes)
}
