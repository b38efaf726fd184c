package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/model"
)

// JournalSheet is the name of the worksheet holding the cut log.
const JournalSheet = "Cut Log"

// journalTableRow is the first row of the cut table (the header row).
const journalTableRow = 7

var journalColumns = []struct {
	header string
	width  float64
}{
	{"Reel #", 15},
	{"Cable Name", 30},
	{"Length (m)", 15},
	{"Start Index (m)", 20},
	{"End Index (m)", 20},
	{"Cut At", 25},
	{"Cut ID", 30},
}

// TimestampedFileName returns the default workbook name for an export made at now.
func TimestampedFileName(now time.Time) string {
	return fmt.Sprintf("cut_log_%s.xlsx", now.Format("2006-01-02_15-04"))
}

// BuildJournalWorkbook lays out the cut journal as a workbook: a title row,
// a summary block with the total number of cuts and metres, and from row 7
// a table with one row per cut grouped by reel and ordered by start index.
// The caller owns the returned file and must close it.
func BuildJournalWorkbook(entries []model.CutLogEntry) (*excelize.File, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no cut log entries to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), JournalSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeJournalSheet(f, entries); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeJournalSheet(f *excelize.File, entries []model.CutLogEntry) error {
	sheet := JournalSheet
	summary := cutlog.Summarize(entries)

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	oneDecimal := "0.0"
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &oneDecimal})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	cells := []struct {
		ref   string
		value interface{}
	}{
		{"A1", "Cable Cut Report"},
		{"A3", "Summary:"},
		{"A4", "Total cuts"},
		{"B4", summary.TotalCuts},
		{"A5", "Total length cut (m)"},
		{"B5", summary.TotalLength},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c.ref, c.value); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.ref, err)
		}
	}
	if err := f.MergeCell(sheet, "A1", "G1"); err != nil {
		return fmt.Errorf("failed to merge title: %w", err)
	}
	if err := f.MergeCell(sheet, "A3", "B3"); err != nil {
		return fmt.Errorf("failed to merge summary heading: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "A3", boldStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "B5", "B5", numberStyle); err != nil {
		return err
	}

	for i, col := range journalColumns {
		ref, err := excelize.CoordinatesToCellName(i+1, journalTableRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, ref, col.header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", ref, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A7", "G7", boldStyle); err != nil {
		return err
	}

	for i, e := range cutlog.SortForExport(entries) {
		row := journalTableRow + 1 + i
		values := []interface{}{
			e.ReelID,
			e.Name,
			e.Length,
			e.StartIndex,
			e.EndIndex,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.ID,
		}
		for col, v := range values {
			ref, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", ref, err)
			}
		}
	}

	last := journalTableRow + len(entries)
	from, _ := excelize.CoordinatesToCellName(4, journalTableRow+1)
	to, _ := excelize.CoordinatesToCellName(5, last)
	if err := f.SetCellStyle(sheet, from, to, numberStyle); err != nil {
		return err
	}
	return nil
}

// ExportJournalXLSX writes the cut journal workbook to path.
func ExportJournalXLSX(path string, entries []model.CutLogEntry) error {
	f, err := BuildJournalWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
