package config

import (
	"fmt"
)

// InputsConfig locates the three source datasets of a report run.
type InputsConfig struct {
	Instructions InstructionInput `json:"instructions"`
	DC           DCInput          `json:"dc"`
	Scada        ScadaInput       `json:"scada"`
}

// InstructionInput points at the dispatch-instruction workbook.
type InstructionInput struct {
	Path string `json:"path"`
	// Sheet is the worksheet holding the instruction list. Empty selects the
	// workbook's first sheet.
	Sheet string `json:"sheet"`
	// HeaderScanRows bounds the search for the Date/From/To header row.
	HeaderScanRows int `json:"header_scan_rows"`
}

// DCInput points at the revised declared-capacity workbook, one sheet per
// calendar day.
type DCInput struct {
	Path string `json:"path"`
	// TimeColumn and ValueColumn are spreadsheet column letters.
	TimeColumn  string `json:"time_column"`
	ValueColumn string `json:"value_column"`
	// HeaderRows is the number of leading rows to skip on each day sheet.
	HeaderRows int `json:"header_rows"`
}

// ScadaInput selects where measured telemetry comes from: daily workbooks in
// a directory, or an InfluxDB bucket.
type ScadaInput struct {
	// Backend is "excel" or "influx".
	Backend string `json:"backend"`
	// Dir holds one workbook per day when the backend is "excel".
	Dir         string       `json:"dir"`
	Sheet       string       `json:"sheet"`
	TimeColumn  string       `json:"time_column"`
	ValueColumn string       `json:"value_column"`
	Influx      InfluxConfig `json:"influx"`
}

// InfluxConfig carries the connection settings of the telemetry bucket.
type InfluxConfig struct {
	URL         string `json:"url"`
	Token       string `json:"token"`
	Org         string `json:"org"`
	Bucket      string `json:"bucket"`
	Measurement string `json:"measurement"`
	Field       string `json:"field"`
}

// SetDefaults applies the layout of the hand-maintained workbooks.
func (c *InputsConfig) SetDefaults() {
	if c.Instructions.HeaderScanRows <= 0 {
		c.Instructions.HeaderScanRows = 4
	}
	if c.DC.TimeColumn == "" {
		c.DC.TimeColumn = "B"
	}
	if c.DC.ValueColumn == "" {
		c.DC.ValueColumn = "E"
	}
	if c.DC.HeaderRows <= 0 {
		c.DC.HeaderRows = 2
	}
	if c.Scada.Backend == "" {
		c.Scada.Backend = "excel"
	}
	if c.Scada.Sheet == "" {
		c.Scada.Sheet = "SCADA Grid"
	}
	if c.Scada.TimeColumn == "" {
		c.Scada.TimeColumn = "A"
	}
	if c.Scada.ValueColumn == "" {
		c.Scada.ValueColumn = "D"
	}
	if c.Scada.Influx.Field == "" {
		c.Scada.Influx.Field = "mw"
	}
}

// Validate checks mandatory fields.
func (c InputsConfig) Validate() error {
	if c.Instructions.Path == "" {
		return fmt.Errorf("inputs.instructions.path is required")
	}
	if c.DC.Path == "" {
		return fmt.Errorf("inputs.dc.path is required")
	}
	switch c.Scada.Backend {
	case "excel":
		if c.Scada.Dir == "" {
			return fmt.Errorf("inputs.scada.dir is required for the excel backend")
		}
	case "influx":
		if c.Scada.Influx.URL == "" || c.Scada.Influx.Bucket == "" {
			return fmt.Errorf("inputs.scada.influx.url and bucket are required for the influx backend")
		}
	default:
		return fmt.Errorf("unknown scada backend %s", c.Scada.Backend)
	}
	return nil
}
