package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
)

// scadaFileLayout is the date part of the daily telemetry workbook names.
const scadaFileLayout = "02-01-2006"

// scadaFilePatterns lists the naming variants the operators have used over
// time. Tried in order; the first existing file wins.
var scadaFilePatterns = []string{
	"BD  LR  %s.xlsx",
	"BD LR_MBED %s.xlsx",
	"BD LR %s.xlsx",
}

// scadaTimeLayouts covers the timestamp formats seen in the telemetry sheet.
// Plain clock values are resolved against the file's day.
var scadaTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"1/2/06 15:04",
	"01-02-06 15:04",
}

// LoadScada reads the daily telemetry workbooks for the given days. A missing
// file means no telemetry was exported for that day and is not an error, a
// present file with a missing sheet is. Timestamps are floored to their slot.
func LoadScada(cfg config.ScadaInput, days []time.Time) (report.SlotValues, error) {
	timeCol, err := excelize.ColumnNameToNumber(cfg.TimeColumn)
	if err != nil {
		return nil, fmt.Errorf("scada time column: %w", err)
	}
	valueCol, err := excelize.ColumnNameToNumber(cfg.ValueColumn)
	if err != nil {
		return nil, fmt.Errorf("scada value column: %w", err)
	}

	values := make(report.SlotValues)
	for _, day := range days {
		path, ok := FindDailyFile(cfg.Dir, day)
		if !ok {
			continue
		}
		if err := loadScadaFile(path, cfg.Sheet, timeCol, valueCol, day, values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// FindDailyFile locates the telemetry workbook for one day.
func FindDailyFile(dir string, day time.Time) (string, bool) {
	date := day.Format(scadaFileLayout)
	for _, pattern := range scadaFilePatterns {
		path := filepath.Join(dir, fmt.Sprintf(pattern, date))
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func loadScadaFile(path, sheetName string, timeCol, valueCol int, day time.Time, values report.SlotValues) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open telemetry workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheet, err := findSheet(f, sheetName)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	for _, row := range rows {
		raw := cellAt(row, timeCol-1)
		if raw == "" {
			continue
		}
		min, ok := parseScadaTime(raw, day)
		if !ok {
			continue
		}
		v, ok := parseNumber(cellAt(row, valueCol-1))
		if !ok {
			continue
		}
		slot := day.Add(time.Duration(min/model.SlotMinutes*model.SlotMinutes) * time.Minute)
		values[slot] = v
	}
	return nil
}

// parseScadaTime extracts minutes since midnight from a timestamp cell.
// Timestamps from another day than the file's own are dropped.
func parseScadaTime(raw string, day time.Time) (int, bool) {
	for _, layout := range scadaTimeLayouts {
		ts, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if ts.Year() > 1 {
			sameDay := ts.Year() == day.Year() && ts.Month() == day.Month() && ts.Day() == day.Day()
			if !sameDay {
				return 0, false
			}
		}
		return ts.Hour()*60 + ts.Minute(), true
	}
	min, err := model.ParseClock(raw)
	if err != nil {
		return 0, false
	}
	return min, true
}
