package report

import (
	"errors"
	"strings"
	"time"

	"github.com/tryathq/backdown/core/model"
)

// Extract parses raw instruction rows into periods in source order. The date
// column is present only on the first row of each day and blank on
// continuation rows; it is forward-filled from the most recent non-blank
// value before grouping. Each raw row is one instruction period.
//
// Any row that cannot be parsed aborts the extraction with a
// MalformedPeriodError carrying the offending row index.
func Extract(rows []model.RawInstructionRow) ([]model.InstructionPeriod, error) {
	periods := make([]model.InstructionPeriod, 0, len(rows))
	var day time.Time
	for _, row := range rows {
		date := strings.TrimSpace(row.Date)
		from := strings.TrimSpace(row.From)
		to := strings.TrimSpace(row.To)
		if date == "" && from == "" && to == "" {
			continue // padding row in the sheet
		}
		if date != "" {
			d, err := model.ParseDate(date)
			if err != nil {
				return nil, &MalformedPeriodError{Row: row.Index, Err: err}
			}
			day = d
		}
		if day.IsZero() {
			return nil, &MalformedPeriodError{Row: row.Index, Err: errors.New("no date on this row or any row above it")}
		}
		fromMin, err := model.ParseClock(from)
		if err != nil {
			return nil, &MalformedPeriodError{Row: row.Index, Err: err}
		}
		toMin, err := model.ParseClock(to)
		if err != nil {
			return nil, &MalformedPeriodError{Row: row.Index, Err: err}
		}
		if toMin <= fromMin {
			return nil, &MalformedPeriodError{Row: row.Index, Err: ErrInvalidRange}
		}
		periods = append(periods, model.InstructionPeriod{Day: day, FromMin: fromMin, ToMin: toMin})
	}
	return periods, nil
}
