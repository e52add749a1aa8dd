package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
)

func buildReport(t *testing.T) *report.Report {
	t.Helper()
	day := model.Date(2024, time.March, 5)
	values := make(report.SlotValues)
	dc := map[int]float64{9 * 60: 492.7, 9*60 + 15: 492.7}
	scada := map[int]float64{9 * 60: 470, 9*60 + 15: 430}
	dcSrc := make(report.SlotValues)
	for min, v := range dc {
		dcSrc[day.Add(time.Duration(min)*time.Minute)] = v
	}
	for min, v := range scada {
		values[day.Add(time.Duration(min)*time.Minute)] = v
	}
	raw := []model.RawInstructionRow{
		{Index: 2, Date: "05-03-2024", From: "09:00", To: "09:30"},
	}
	rep, err := report.Generate(raw, dcSrc, values, report.DefaultRampParams(), nil)
	require.NoError(t, err)
	return rep
}

func TestWriterRoundTrip(t *testing.T) {
	rep := buildReport(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := Writer{Params: report.DefaultRampParams()}
	require.NoError(t, w.Write(rep, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Back down and Non compliance"
	title, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Back down and Non compliance for 05-Mar-2024", title)

	group, _ := f.GetCellValue(sheet, "B3")
	assert.Equal(t, "Back down", group)
	group, _ = f.GetCellValue(sheet, "J3")
	assert.Equal(t, "Non compliance", group)

	header, _ := f.GetCellValue(sheet, "B4")
	assert.Equal(t, "Date", header)
	header, _ = f.GetCellValue(sheet, "F4")
	assert.Equal(t, "As per SLDC Scada in MW", header)

	// First data row: dated, raw inputs as values, derived cells as
	// formulas.
	date, _ := f.GetCellValue(sheet, "B5")
	assert.Equal(t, "05-03-2024", date)
	from, _ := f.GetCellValue(sheet, "C5")
	assert.Equal(t, "09:00", from)
	to, _ := f.GetCellValue(sheet, "D5")
	assert.Equal(t, "09:15", to)
	dc, _ := f.GetCellValue(sheet, "E5")
	assert.Equal(t, "492.7", dc)

	formula, err := f.GetCellFormula(sheet, "G5")
	require.NoError(t, err)
	assert.Equal(t, "E5-F5", formula)
	formula, _ = f.GetCellFormula(sheet, "H5")
	assert.Equal(t, "G5/4000", formula)
	formula, _ = f.GetCellFormula(sheet, "J5")
	assert.Equal(t, "E5-40", formula)
	formula, _ = f.GetCellFormula(sheet, "K5")
	assert.Equal(t, "F5-J5", formula)
	formula, _ = f.GetCellFormula(sheet, "L5")
	assert.Equal(t, "IF(K5/4000>0,K5/4000,0)", formula)

	// Second slot: date suppressed, ramp switches to the recurrence.
	date, _ = f.GetCellValue(sheet, "B6")
	assert.Empty(t, date)
	formula, _ = f.GetCellFormula(sheet, "J6")
	assert.Equal(t, "MAX(J5-40,270)", formula)

	// Summary row carries only the period totals.
	from, _ = f.GetCellValue(sheet, "C7")
	assert.Empty(t, from)
	sumBD, _ := f.GetCellValue(sheet, "I7")
	assert.NotEmpty(t, sumBD)
	sumNC, _ := f.GetCellValue(sheet, "M7")
	assert.NotEmpty(t, sumNC)
}

func TestWriterTitleOverride(t *testing.T) {
	rep := buildReport(t)
	w := Writer{Sheet: "Custom", Title: "March compliance review", Params: report.DefaultRampParams()}
	f, err := w.Build(rep)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Custom", "B2")
	require.NoError(t, err)
	assert.Equal(t, "March compliance review", title)
}

func TestWriterBlankRampColumns(t *testing.T) {
	day := model.Date(2024, time.March, 5)
	src := make(report.SlotValues)
	for min := 0; min < 60; min += 15 {
		src[day.Add(time.Duration(min)*time.Minute)] = 500
	}
	raw := []model.RawInstructionRow{
		{Index: 2, Date: "05-03-2024", From: "00:00", To: "01:00"},
	}
	rep, err := report.Generate(raw, src, src, report.DefaultRampParams(), nil)
	require.NoError(t, err)

	w := Writer{Params: report.DefaultRampParams()}
	f, err := w.Build(rep)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Back down and Non compliance"
	// The hour-long instruction has no ramp offset: J through L stay empty
	// while the back-down columns are still populated.
	for r := 5; r <= 8; r++ {
		formula, _ := f.GetCellFormula(sheet, cellRef("J", r))
		assert.Empty(t, formula, "row %d", r)
		formula, _ = f.GetCellFormula(sheet, cellRef("G", r))
		assert.NotEmpty(t, formula, "row %d", r)
	}
}
