package excel

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tryathq/backdown/core/model"
	"github.com/tryathq/backdown/core/report"
)

// Workbook geometry, matching the hand-built compliance sheets: row 1 empty,
// title on row 2, section headers on row 3, column headers on row 4, data
// from row 5, all starting at column B.
const (
	titleRow  = 2
	groupRow  = 3
	headerRow = 4
	dataStart = 5
)

var columnHeaders = []string{
	"Date", "From", "To", "DC\n(MW)", "As per SLDC Scada in MW", "Diff (MW)",
	"Mus", "Sum Mus", "MW as per ramp", "Diff", "MU", "Sum MU",
}

var columnWidths = []float64{12, 8, 8, 10, 25, 12, 10, 12, 15, 10, 10, 12}

const dateCellLayout = "02-01-2006"

// Writer renders assembled report rows into the regulator's workbook layout.
// Derived columns are written as live formulas over the input columns, so a
// reviewer adjusting a SCADA value sees every dependent cell follow.
type Writer struct {
	Sheet string
	// Title overrides the heading derived from the instruction dates.
	Title  string
	Params report.RampParams
}

// Write renders the report and saves it to path.
func (w Writer) Write(rep *report.Report, path string) error {
	f, err := w.Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Build renders the report into an in-memory workbook. The caller owns the
// returned file and must close it.
func (w Writer) Build(rep *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.Sheet
	if sheet == "" {
		sheet = "Back down and Non compliance"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := w.writeHeader(f, sheet, st, rep); err != nil {
		return nil, err
	}
	if err := w.writeRows(f, sheet, st, rep.Rows); err != nil {
		return nil, err
	}
	if err := layoutSheet(f, sheet); err != nil {
		return nil, err
	}
	return f, nil
}

type styles struct {
	title       int
	header      int
	scadaHeader int
	cell        int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var st styles
	var err error
	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
	})
	if err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return st, err
	}
	st.scadaHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: center,
		Border:    border,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	if err != nil {
		return st, err
	}
	st.cell, err = f.NewStyle(&excelize.Style{Border: border})
	return st, err
}

func (w Writer) writeHeader(f *excelize.File, sheet string, st styles, rep *report.Report) error {
	title := w.Title
	if title == "" {
		title = rep.Title
	}
	if err := f.MergeCell(sheet, "B2", "M2"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B2", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "B2", "M2", st.title); err != nil {
		return err
	}

	// Section headers: back-down columns B..I, non-compliance J..M.
	if err := f.MergeCell(sheet, "B3", "I3"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B3", "Back down"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "J3", "M3"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "J3", "Non compliance"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "B3", "M3", st.header); err != nil {
		return err
	}

	for i, h := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(2+i, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		style := st.header
		if h == "As per SLDC Scada in MW" {
			style = st.scadaHeader
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeRows(f *excelize.File, sheet string, st styles, rows []model.SlotRecord) error {
	for i, rec := range rows {
		r := dataStart + i
		if rec.Summary {
			if rec.SumEnergyBD != nil {
				if err := f.SetCellValue(sheet, cellRef("I", r), *rec.SumEnergyBD); err != nil {
					return err
				}
			}
			if rec.SumEnergyNC != nil {
				if err := f.SetCellValue(sheet, cellRef("M", r), *rec.SumEnergyNC); err != nil {
					return err
				}
			}
		} else {
			if err := w.writeSlotRow(f, sheet, r, rec); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, cellRef("B", r), cellRef("M", r), st.cell); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeSlotRow(f *excelize.File, sheet string, r int, rec model.SlotRecord) error {
	if rec.Date != nil {
		if err := f.SetCellValue(sheet, cellRef("B", r), rec.Date.Format(dateCellLayout)); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(sheet, cellRef("C", r), model.ClockString(rec.Slot.StartMin)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cellRef("D", r), model.ClockString(rec.Slot.EndMin())); err != nil {
		return err
	}
	if rec.DC != nil {
		if err := f.SetCellValue(sheet, cellRef("E", r), *rec.DC); err != nil {
			return err
		}
	}
	if rec.Scada != nil {
		if err := f.SetCellValue(sheet, cellRef("F", r), *rec.Scada); err != nil {
			return err
		}
	}
	if rec.DiffBD != nil {
		if err := f.SetCellFormula(sheet, cellRef("G", r), fmt.Sprintf("E%d-F%d", r, r)); err != nil {
			return err
		}
	}
	if rec.EnergyBD != nil {
		if err := f.SetCellFormula(sheet, cellRef("H", r), fmt.Sprintf("G%d/%s", r, num(w.Params.EnergyDivisor))); err != nil {
			return err
		}
	}
	if rec.Ramp != nil {
		var formula string
		if rec.Offset != nil {
			formula = fmt.Sprintf("E%d-%s", r, num(*rec.Offset))
		} else {
			formula = fmt.Sprintf("MAX(J%d-%s,%s)", r-1, num(w.Params.DownPerSlot), num(w.Params.FloorMW))
		}
		if err := f.SetCellFormula(sheet, cellRef("J", r), formula); err != nil {
			return err
		}
	}
	if rec.DiffNC != nil {
		if err := f.SetCellFormula(sheet, cellRef("K", r), fmt.Sprintf("F%d-J%d", r, r)); err != nil {
			return err
		}
	}
	if rec.EnergyNC != nil {
		div := num(w.Params.EnergyDivisor)
		if err := f.SetCellFormula(sheet, cellRef("L", r), fmt.Sprintf("IF(K%d/%s>0,K%d/%s,0)", r, div, r, div)); err != nil {
			return err
		}
	}
	return nil
}

func layoutSheet(f *excelize.File, sheet string) error {
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(2 + i)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	for row, height := range map[int]float64{titleRow: 25, groupRow: 20, headerRow: 30} {
		if err := f.SetRowHeight(sheet, row, height); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", dataStart),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	show := false
	return f.SetSheetView(sheet, 0, &excelize.ViewOptions{ShowGridLines: &show})
}

func cellRef(col string, row int) string {
	return col + strconv.Itoa(row)
}

// num renders a constant for embedding in a formula, without a trailing
// decimal point for whole values.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
