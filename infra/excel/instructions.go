// Package excel reads the hand-maintained source workbooks and writes the
// generated report. All sheet and column conventions come from the plant's
// existing files; the loaders are tolerant of the formatting drift those
// files accumulate (renamed sheets, padded names, mixed time formats).
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tryathq/backdown/config"
	"github.com/tryathq/backdown/core/model"
)

// LoadInstructions reads the dispatch-instruction sheet into raw rows. The
// header row is located by scanning the first few rows for "date" and "from"
// cells; everything below it is data. Row indices are the workbook's own
// 1-based numbers so parse errors can point at the offending row.
func LoadInstructions(cfg config.InstructionInput) ([]model.RawInstructionRow, error) {
	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open instruction workbook: %w", err)
	}
	defer f.Close()

	sheet, err := findSheet(f, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	dateCol, fromCol, toCol, headerRow, err := findInstructionHeader(rows, cfg.HeaderScanRows)
	if err != nil {
		return nil, err
	}

	var raw []model.RawInstructionRow
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		raw = append(raw, model.RawInstructionRow{
			Index: i + 1,
			Date:  cellAt(row, dateCol),
			From:  cellAt(row, fromCol),
			To:    cellAt(row, toCol),
		})
	}
	return raw, nil
}

// findSheet resolves a sheet by name, tolerating padding and case drift. An
// empty name selects the workbook's first sheet.
func findSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if name == "" {
		return sheets[0], nil
	}
	target := strings.ToLower(strings.TrimSpace(name))
	for _, s := range sheets {
		if strings.ToLower(strings.TrimSpace(s)) == target {
			return s, nil
		}
	}
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(strings.TrimSpace(s)), target) {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found (have %s)", name, strings.Join(sheets, ", "))
}

func findInstructionHeader(rows [][]string, scanRows int) (dateCol, fromCol, toCol, headerRow int, err error) {
	limit := scanRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for r := 0; r < limit; r++ {
		dateCol, fromCol, toCol = -1, -1, -1
		for c, cell := range rows[r] {
			switch v := strings.ToLower(strings.TrimSpace(cell)); {
			case strings.Contains(v, "date"):
				if dateCol == -1 {
					dateCol = c
				}
			case v == "from" || strings.Contains(v, "from"):
				if fromCol == -1 {
					fromCol = c
				}
			case v == "to" || strings.HasPrefix(v, "to"):
				if toCol == -1 {
					toCol = c
				}
			}
		}
		if dateCol >= 0 && fromCol >= 0 && toCol >= 0 {
			return dateCol, fromCol, toCol, r, nil
		}
	}
	return 0, 0, 0, 0, fmt.Errorf("no Date/From/To header found in the first %d rows", scanRows)
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
