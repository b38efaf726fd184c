// Package importer reads reel and cut lists from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ReelCut/internal/model"
)

// Kind selects what a file describes.
type Kind int

const (
	KindCuts Kind = iota
	KindReels
)

func (k Kind) String() string {
	if k == KindReels {
		return "reels"
	}
	return "cuts"
}

// ImportResult holds the results of an import operation. Only the slice
// matching the requested Kind is filled.
type ImportResult struct {
	Reels    []model.Reel
	Cuts     []model.CutRequest
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	ID       int
	Name     int
	Length   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":       {"id", "#", "no", "no.", "number", "reel", "reel id", "reel #", "cut id", "cut #"},
	"name":     {"name", "label", "cut", "cut name", "description", "desc", "circuit", "room", "item"},
	"length":   {"length", "len", "metres", "meters", "m", "length (m)", "size"},
	"quantity": {"quantity", "qty", "count", "pcs", "pieces"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping for the given kind and false if no header was found.
func DetectColumns(row []string, kind Kind) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Name: -1, Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "id":
					if mapping.ID == -1 {
						mapping.ID = i
					}
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(len(row), kind), false
	}
	return mapping, true
}

// positionalMapping is used for files without a header. Reels are
// "id,length" or just "length"; cuts are "id,name,length[,qty]" or
// "name,length".
func positionalMapping(cols int, kind Kind) ColumnMapping {
	if kind == KindReels {
		if cols < 2 {
			return ColumnMapping{ID: -1, Name: -1, Length: 0, Quantity: -1}
		}
		return ColumnMapping{ID: 0, Name: -1, Length: 1, Quantity: -1}
	}
	if cols == 2 {
		return ColumnMapping{ID: -1, Name: 0, Length: 1, Quantity: -1}
	}
	return ColumnMapping{ID: 0, Name: 1, Length: 2, Quantity: 3}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both "12.5" and "12,5".
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	return 0, err
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go to
// ImportExcel, everything else to ImportCSV.
func ImportFile(path string, kind Kind) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path, kind)
	default:
		return ImportCSV(path, kind)
	}
}

// ImportCSV imports reels or cuts from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, kind Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", warnings)
}

// ImportCSVFromReader imports reels or cuts from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, kind Kind) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", nil)
}

// ImportExcel imports reels or cuts from an Excel file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, kind Kind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, kind, "Row", nil)
}

// rowParser turns rows into reels or cuts, assigning ids to rows that
// have none and rejecting duplicates.
type rowParser struct {
	kind    Kind
	mapping ColumnMapping
	seen    map[int]bool
	nextID  int
	result  *ImportResult
}

func (p *rowParser) takeID(raw, rowLabel string) (int, bool) {
	if raw == "" {
		for p.seen[p.nextID] {
			p.nextID++
		}
		id := p.nextID
		p.seen[id] = true
		p.nextID++
		return id, true
	}
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || id <= 0 {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Invalid id '%s'", rowLabel, raw))
		return 0, false
	}
	if p.seen[id] {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Duplicate id %d", rowLabel, id))
		return 0, false
	}
	p.seen[id] = true
	if id >= p.nextID {
		p.nextID = id + 1
	}
	return id, true
}

func (p *rowParser) length(row []string, rowLabel string) (float64, bool) {
	raw := getCell(row, p.mapping.Length)
	if raw == "" {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Missing length value", rowLabel))
		return 0, false
	}
	v, err := parseNumber(raw)
	if err != nil {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, raw))
		return 0, false
	}
	if v <= 0 {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Length must be positive", rowLabel))
		return 0, false
	}
	if p.kind == KindReels && v > model.MaxReelLength+model.Epsilon {
		p.result.Errors = append(p.result.Errors,
			fmt.Sprintf("%s: Reel length %.1fm exceeds %.0fm", rowLabel, v, model.MaxReelLength))
		return 0, false
	}
	return v, true
}

func (p *rowParser) parseReel(row []string, rowLabel string) {
	length, ok := p.length(row, rowLabel)
	if !ok {
		return
	}
	id, ok := p.takeID(getCell(row, p.mapping.ID), rowLabel)
	if !ok {
		return
	}
	p.result.Reels = append(p.result.Reels, model.NewReel(id, length))
}

func (p *rowParser) parseCut(row []string, rowLabel string) {
	length, ok := p.length(row, rowLabel)
	if !ok {
		return
	}

	qty := 1
	if raw := getCell(row, p.mapping.Quantity); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, raw))
			return
		}
		qty = n
	}

	name := getCell(row, p.mapping.Name)
	rawID := getCell(row, p.mapping.ID)
	if qty > 1 && rawID != "" {
		p.result.Warnings = append(p.result.Warnings,
			fmt.Sprintf("%s: Quantity %d given, ids assigned after %s", rowLabel, qty, rawID))
	}

	for i := 0; i < qty; i++ {
		raw := rawID
		if i > 0 {
			raw = ""
		}
		id, ok := p.takeID(raw, rowLabel)
		if !ok {
			return
		}
		cutName := name
		if cutName == "" {
			cutName = fmt.Sprintf("Cut %d", id)
		} else if qty > 1 {
			cutName = fmt.Sprintf("%s (%d/%d)", name, i+1, qty)
		}
		p.result.Cuts = append(p.result.Cuts, model.NewCutRequest(id, cutName, length))
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, kind Kind, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0], kind)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Length")
			return result
		}
	} else if _, err := parseNumber(getCell(rows[0], mapping.Length)); err != nil {
		// Unrecognised header: skip it but keep positional mapping.
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	p := &rowParser{kind: kind, mapping: mapping, seen: map[int]bool{}, nextID: 1, result: &result}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		if kind == KindReels {
			p.parseReel(row, rowLabel)
		} else {
			p.parseCut(row, rowLabel)
		}
	}

	limit, count := model.MaxCuts, len(result.Cuts)
	if kind == KindReels {
		limit, count = model.MaxReels, len(result.Reels)
	}
	if count > limit {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Imported %d %s; a single calculation accepts at most %d", count, kind, limit))
	}

	return result
}
