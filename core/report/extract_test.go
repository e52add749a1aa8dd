package report

import (
	"errors"
	"testing"
	"time"

	"github.com/tryathq/backdown/core/model"
)

func TestExtractForwardFillsDates(t *testing.T) {
	rows := []model.RawInstructionRow{
		{Index: 5, Date: "01-01-2026", From: "08:00", To: "08:15"},
		{Index: 6, Date: "", From: "09:30", To: "09:45"},
		{Index: 7, Date: "02-01-2026", From: "10:00", To: "10:15"},
		{Index: 8, Date: "", From: "11:00", To: "11:10"},
	}
	periods, err := Extract(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 4 {
		t.Fatalf("expected 4 periods got %d", len(periods))
	}
	jan1 := model.Date(2026, time.January, 1)
	jan2 := model.Date(2026, time.January, 2)
	if !periods[1].Day.Equal(jan1) {
		t.Fatalf("row 6 should inherit 01-01, got %v", periods[1].Day)
	}
	if !periods[3].Day.Equal(jan2) {
		t.Fatalf("row 8 should inherit 02-01, got %v", periods[3].Day)
	}
	if periods[3].Duration() != 10 {
		t.Fatalf("row 8 duration %d", periods[3].Duration())
	}
}

func TestExtractSkipsBlankRows(t *testing.T) {
	rows := []model.RawInstructionRow{
		{Index: 5, Date: "2026-01-01", From: "08:00", To: "08:15"},
		{Index: 6},
		{Index: 7},
	}
	periods, err := Extract(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("expected 1 period got %d", len(periods))
	}
}

func TestExtractDoesNotMergeAdjacentRows(t *testing.T) {
	// Contiguous ranges on the same day stay separate periods: one raw row
	// is one instruction.
	rows := []model.RawInstructionRow{
		{Index: 5, Date: "2026-01-01", From: "08:00", To: "08:15"},
		{Index: 6, Date: "", From: "08:15", To: "08:30"},
	}
	periods, err := Extract(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods got %d", len(periods))
	}
}

func TestExtractAbortsOnMalformedRow(t *testing.T) {
	cases := []struct {
		name string
		rows []model.RawInstructionRow
		row  int
	}{
		{
			"bad time",
			[]model.RawInstructionRow{
				{Index: 5, Date: "2026-01-01", From: "08:00", To: "08:15"},
				{Index: 6, Date: "", From: "late", To: "08:45"},
			},
			6,
		},
		{
			"bad date",
			[]model.RawInstructionRow{
				{Index: 5, Date: "someday", From: "08:00", To: "08:15"},
			},
			5,
		},
		{
			"inverted range",
			[]model.RawInstructionRow{
				{Index: 5, Date: "2026-01-01", From: "09:00", To: "08:00"},
			},
			5,
		},
		{
			"leading row without date",
			[]model.RawInstructionRow{
				{Index: 5, Date: "", From: "08:00", To: "08:15"},
			},
			5,
		},
	}
	for _, tc := range cases {
		_, err := Extract(tc.rows)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var mp *MalformedPeriodError
		if !errors.As(err, &mp) {
			t.Fatalf("%s: expected MalformedPeriodError got %v", tc.name, err)
		}
		if mp.Row != tc.row {
			t.Fatalf("%s: expected row %d got %d", tc.name, tc.row, mp.Row)
		}
	}
}

func TestParseClockFormats(t *testing.T) {
	cases := map[string]int{
		"08:15":    8*60 + 15,
		"8:15":     8*60 + 15,
		"23:45:00": 23*60 + 45,
		"0.30":     30,
	}
	for in, want := range cases {
		got, err := model.ParseClock(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: got %d want %d", in, got, want)
		}
	}
	if _, err := model.ParseClock("25:99"); err == nil {
		t.Fatalf("expected error for 25:99")
	}
}
