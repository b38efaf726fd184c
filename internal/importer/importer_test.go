package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "ID,Name,Length\n1,Hall,40\n2,Lobby,12.5\n", ','},
		{"semicolon", "ID;Name;Length\n1;Hall;40\n2;Lobby;12,5\n", ';'},
		{"tab", "ID\tName\tLength\n1\tHall\t40\n2\tLobby\t12.5\n", '\t'},
		{"pipe", "ID|Name|Length\n1|Hall|40\n2|Lobby|12.5\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ID", "Name", "Length", "Qty"}, KindCuts)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.ID != 0 || mapping.Name != 1 || mapping.Length != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"METERS", "Circuit", "Cut #"}, KindCuts)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Length != 0 || mapping.Name != 1 || mapping.ID != 2 || mapping.Quantity != -1 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		kind Kind
		want ColumnMapping
	}{
		{"reels id,length", []string{"1", "305"}, KindReels, ColumnMapping{ID: 0, Name: -1, Length: 1, Quantity: -1}},
		{"reels length only", []string{"305"}, KindReels, ColumnMapping{ID: -1, Name: -1, Length: 0, Quantity: -1}},
		{"cuts name,length", []string{"Hall", "40"}, KindCuts, ColumnMapping{ID: -1, Name: 0, Length: 1, Quantity: -1}},
		{"cuts full", []string{"1", "Hall", "40", "2"}, KindCuts, ColumnMapping{ID: 0, Name: 1, Length: 2, Quantity: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isHeader := DetectColumns(tt.row, tt.kind)
			if isHeader {
				t.Error("expected no header")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_CutsWithHeaders(t *testing.T) {
	data := "ID,Name,Length\n1,Hall,40\n2,Lobby,12.5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindCuts)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cuts) != 2 {
		t.Fatalf("expected 2 cuts, got %d", len(result.Cuts))
	}
	if result.Cuts[1].ID != 2 || result.Cuts[1].Name != "Lobby" || result.Cuts[1].Length != 12.5 {
		t.Errorf("unexpected cut %+v", result.Cuts[1])
	}
	if len(result.Reels) != 0 {
		t.Errorf("cut import must not produce reels")
	}
}

func TestImportCSVFromReader_ReelsWithoutHeaders(t *testing.T) {
	data := "3,305\n7,120.5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Reels) != 2 {
		t.Fatalf("expected 2 reels, got %d", len(result.Reels))
	}
	if result.Reels[0].ID != 3 || result.Reels[1].ID != 7 || result.Reels[1].Length != 120.5 {
		t.Errorf("unexpected reels %+v", result.Reels)
	}
}

func TestImportCSVFromReader_AutoIDs(t *testing.T) {
	data := "Length\n100\n50\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Reels) != 2 || result.Reels[0].ID != 1 || result.Reels[1].ID != 2 {
		t.Errorf("expected ids 1 and 2, got %+v", result.Reels)
	}
}

func TestImportCSVFromReader_AutoIDsSkipExplicitOnes(t *testing.T) {
	data := "ID,Length\n1,100\n,50\n3,20\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	ids := []int{result.Reels[0].ID, result.Reels[1].ID, result.Reels[2].ID}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestImportCSVFromReader_DuplicateID(t *testing.T) {
	data := "ID,Length\n1,100\n1,50\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Reels) != 1 {
		t.Errorf("expected 1 reel, got %d", len(result.Reels))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Duplicate id 1") {
		t.Errorf("expected duplicate id error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_ReelTooLong(t *testing.T) {
	data := "ID,Length\n1,306\n2,305\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Reels) != 1 || result.Reels[0].ID != 2 {
		t.Errorf("expected only reel 2, got %+v", result.Reels)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("expected error on line 2, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad length", "ID,Name,Length\n1,Hall,abc\n", "Invalid length"},
		{"zero length", "ID,Name,Length\n1,Hall,0\n", "Length must be positive"},
		{"negative length", "ID,Name,Length\n1,Hall,-3\n", "Length must be positive"},
		{"missing length", "ID,Name,Length\n1,Hall,\n", "Missing length"},
		{"bad id", "ID,Name,Length\nx,Hall,10\n", "Invalid id"},
		{"bad qty", "ID,Name,Length,Qty\n1,Hall,10,0\n", "Invalid quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader(tt.data), ',', KindCuts)
			if len(result.Cuts) != 0 {
				t.Errorf("expected no cuts, got %+v", result.Cuts)
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Name,Length\nHall,40\nBroken,x\nLobby,10\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindCuts)

	if len(result.Cuts) != 2 {
		t.Errorf("expected 2 cuts, got %d", len(result.Cuts))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_QuantityExpands(t *testing.T) {
	data := "Name,Length,Qty\nOffice,18,3\nHall,40,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindCuts)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cuts) != 4 {
		t.Fatalf("expected 4 cuts, got %d", len(result.Cuts))
	}
	if result.Cuts[0].Name != "Office (1/3)" || result.Cuts[2].Name != "Office (3/3)" {
		t.Errorf("unexpected names %q, %q", result.Cuts[0].Name, result.Cuts[2].Name)
	}
	if result.Cuts[3].Name != "Hall" || result.Cuts[3].ID != 4 {
		t.Errorf("unexpected last cut %+v", result.Cuts[3])
	}
}

func TestImportCSVFromReader_EmptyNameGetsDefault(t *testing.T) {
	data := "ID,Name,Length\n5,,12\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindCuts)

	if len(result.Cuts) != 1 || result.Cuts[0].Name != "Cut 5" {
		t.Errorf("expected default name 'Cut 5', got %+v", result.Cuts)
	}
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	data := "Name;Length\nHall;12,5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';', KindCuts)

	if len(result.Cuts) != 1 || result.Cuts[0].Length != 12.5 {
		t.Errorf("expected 12.5, got %+v (errors %v)", result.Cuts, result.Errors)
	}
}

func TestImportCSVFromReader_UnrecognisedHeaderSkipped(t *testing.T) {
	data := "Spool,Metres left\n1,200\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindReels)

	if len(result.Reels) != 1 || result.Reels[0].Length != 200 {
		t.Errorf("expected one reel of 200m, got %+v", result.Reels)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a header warning")
	}
}

func TestImportCSVFromReader_MissingLengthColumn(t *testing.T) {
	data := "ID,Name\n1,Hall\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', KindCuts)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Length") {
		t.Errorf("expected missing Length column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_TooManyWarns(t *testing.T) {
	var b strings.Builder
	b.WriteString("Length\n")
	for i := 0; i < 21; i++ {
		b.WriteString("10\n")
	}
	result := ImportCSVFromReader(strings.NewReader(b.String()), ',', KindReels)

	if len(result.Reels) != 21 {
		t.Fatalf("expected 21 reels, got %d", len(result.Reels))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "at most 20") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a limit warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', KindCuts)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── File Tests ────────────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuts.csv")
	if err := os.WriteFile(path, []byte("ID;Name;Length\n1;Hall;40\n2;Lobby;12,5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path, KindCuts)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cuts) != 2 || result.Cuts[1].Length != 12.5 {
		t.Errorf("unexpected cuts %+v", result.Cuts)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"), KindCuts)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path, KindCuts)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_Reels(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Reel #", "Length (m)"},
		{1, 305},
		{2, 88.5},
	})

	result := ImportFile(path, KindReels)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Reels) != 2 || result.Reels[1].Length != 88.5 {
		t.Errorf("unexpected reels %+v", result.Reels)
	}
}

func TestImportExcel_CutsWithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Hall", 40},
		{"Lobby", 12},
	})

	result := ImportExcel(path, KindCuts)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cuts) != 2 || result.Cuts[0].Name != "Hall" || result.Cuts[0].ID != 1 {
		t.Errorf("unexpected cuts %+v", result.Cuts)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"), KindReels)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
