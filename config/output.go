package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputConfig controls the generated workbook.
type OutputConfig struct {
	// Path is the destination .xlsx file.
	Path string `json:"path"`
	// Sheet is the worksheet name inside the workbook.
	Sheet string `json:"sheet"`
	// Title overrides the heading derived from the instruction date range.
	Title string `json:"title"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "backdown_report.xlsx"
	}
	if c.Sheet == "" {
		c.Sheet = "Back down and Non compliance"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if strings.ToLower(filepath.Ext(c.Path)) != ".xlsx" {
		return fmt.Errorf("output.path must end in .xlsx")
	}
	return nil
}

// StoreConfig controls the on-disk report history.
type StoreConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "reports"
	}
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// APIConfig controls the read-only HTTP API over the report history.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	// Token, when set, is required as a bearer token on every request.
	Token string `json:"token"`
}
