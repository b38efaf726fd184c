package export

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ReelCut/internal/model"
)

func TestTimestampedFileName(t *testing.T) {
	now := time.Date(2026, 3, 5, 7, 9, 0, 0, time.UTC)
	if got, want := TimestampedFileName(now), "cut_log_2026-03-05_07-09.xlsx"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExportJournalXLSX_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.xlsx")
	ts := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	entries := []model.CutLogEntry{
		{ID: "b-2-1", BatchID: "b", Name: "Late", Length: 10, ReelID: 2, StartIndex: 50, EndIndex: 60, Timestamp: ts},
		{ID: "a-1-2", BatchID: "a", Name: "Second", Length: 20, ReelID: 1, StartIndex: 120, EndIndex: 140, Timestamp: ts},
		{ID: "a-1-1", BatchID: "a", Name: "First", Length: 82.5, ReelID: 1, StartIndex: 10, EndIndex: 92.5, Timestamp: ts},
	}
	if err := ExportJournalXLSX(path, entries); err != nil {
		t.Fatalf("ExportJournalXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	raw := excelize.Options{RawCellValue: true}
	get := func(ref string) string {
		t.Helper()
		v, err := f.GetCellValue(JournalSheet, ref, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}

	if get("A1") != "Cable Cut Report" {
		t.Errorf("unexpected title %q", get("A1"))
	}
	if get("B4") != "3" {
		t.Errorf("expected 3 total cuts, got %q", get("B4"))
	}
	if total, _ := strconv.ParseFloat(get("B5"), 64); total != 112.5 {
		t.Errorf("expected total length 112.5, got %q", get("B5"))
	}
	if get("A7") != "Reel #" || get("G7") != "Cut ID" {
		t.Errorf("unexpected table header %q .. %q", get("A7"), get("G7"))
	}

	wantIDs := []string{"a-1-1", "a-1-2", "b-2-1"}
	for i, id := range wantIDs {
		ref, _ := excelize.CoordinatesToCellName(7, 8+i)
		if got := get(ref); got != id {
			t.Errorf("row %d: expected %s, got %s", 8+i, id, got)
		}
	}
	if get("F8") != "2026-10-17 09:30:00" {
		t.Errorf("unexpected timestamp %q", get("F8"))
	}

	merged, err := f.GetMergeCells(JournalSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 2 {
		t.Errorf("expected 2 merged ranges, got %d", len(merged))
	}

	width, err := f.GetColWidth(JournalSheet, "B")
	if err != nil {
		t.Fatal(err)
	}
	if width != 30 {
		t.Errorf("expected column B width 30, got %v", width)
	}
}

func TestExportJournalXLSX_Empty(t *testing.T) {
	if err := ExportJournalXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), nil); err == nil {
		t.Fatal("expected error for empty journal")
	}
}
