package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
)

// dcSheetLayout is the sheet-per-day naming convention of the revised DC
// workbook.
const dcSheetLayout = "02.01.2006"

// LoadDC reads the revised declared-capacity workbook for the given days.
// Each day lives on its own sheet named after the date; a missing sheet means
// no revisions were filed for that day and is not an error. Times are floored
// to their slot, so a 09:02 revision row lands on the 09:00 slot.
func LoadDC(cfg config.DCInput, days []time.Time) (report.SlotValues, error) {
	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open DC workbook: %w", err)
	}
	defer f.Close()

	timeCol, err := excelize.ColumnNameToNumber(cfg.TimeColumn)
	if err != nil {
		return nil, fmt.Errorf("DC time column: %w", err)
	}
	valueCol, err := excelize.ColumnNameToNumber(cfg.ValueColumn)
	if err != nil {
		return nil, fmt.Errorf("DC value column: %w", err)
	}

	values := make(report.SlotValues)
	for _, day := range days {
		sheet, ok := findDaySheet(f, day)
		if !ok {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for i := cfg.HeaderRows; i < len(rows); i++ {
			raw := cellAt(rows[i], timeCol-1)
			if raw == "" {
				continue
			}
			min, err := model.ParseClock(raw)
			if err != nil {
				continue
			}
			v, ok := parseNumber(cellAt(rows[i], valueCol-1))
			if !ok {
				continue
			}
			slot := day.Add(time.Duration(min/model.SlotMinutes*model.SlotMinutes) * time.Minute)
			values[slot] = v
		}
	}
	return values, nil
}

func findDaySheet(f *excelize.File, day time.Time) (string, bool) {
	want := day.Format(dcSheetLayout)
	for _, s := range f.GetSheetList() {
		name := strings.TrimSpace(s)
		if name == want || strings.HasPrefix(name, want) {
			return s, true
		}
	}
	return "", false
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
