package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TemplateField describes one column of the measurement entry template.
type TemplateField struct {
	Key          string // internal name, matches the measurements field
	Label        string // human-readable header shown in the spreadsheet
	Description  string // shown on the Instructions sheet
	FormatRule   string // e.g. "whole millimeters"
	ExampleValue string // shown on the Instructions sheet
}

// MeasurementTemplateFields returns the ordered columns of the measurement
// import template.
func MeasurementTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "serial", Label: "Serial", Description: "Window label, carried through to the cutting sheet", ExampleValue: "W-101"},
		{Key: "height_mm", Label: "Height (mm)", Description: "Opening height as measured on site", FormatRule: "Whole millimeters", ExampleValue: "1000"},
		{Key: "width_mm", Label: "Width (mm)", Description: "Opening width as measured on site", FormatRule: "Whole millimeters", ExampleValue: "600"},
		{Key: "category", Label: "Category", Description: "Window type (select from dropdown)", FormatRule: "Normal, Louver, Kitchen, Jina or Fix", ExampleValue: "Normal"},
	}
}

// CellWarning flags one imported cell that was coerced to a default. The
// row is still imported; the warning exists so a reviewer can correct the
// value before export.
type CellWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing an uploaded measurement file.
// Unlike a hard validator, every row parses: malformed cells degrade to
// their defaults and surface here as warnings.
type ValidationResult struct {
	TotalRows   int              `json:"total_rows"`
	CleanRows   int              `json:"clean_rows"`
	WarningRows int              `json:"warning_rows"`
	Warnings    []CellWarning    `json:"warnings"`
	Rows        []MeasurementRow `json:"rows"`
	FileName    string           `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to template field keys.
// Returns an ordered list of field keys (one per column, "" for columns we
// don't recognize) and the unrecognized header names.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateMeasurementFile parses an uploaded .csv or .xlsx measurement
// file into MeasurementRow candidates. Rows are never rejected for bad
// cell values; coerced cells produce warnings instead so the grid can
// highlight them for review.
func ValidateMeasurementFile(file io.Reader, fileName string) (*ValidationResult, error) {
	fields := MeasurementTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
	}

	result := &ValidationResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
		Rows:      make([]MeasurementRow, 0, len(dataRows)),
	}

	warningRowSet := make(map[int]bool)
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for the header row

		cells := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			if colIdx < len(row) {
				cells[key] = strings.TrimSpace(row[colIdx])
			}
		}

		parsed := ParseMeasurementRow(cells["serial"], cells["height_mm"], cells["width_mm"], cells["category"])

		if parsed.HeightDefaulted {
			result.Warnings = append(result.Warnings, coercedWarning(rowNum, keyToLabel["height_mm"], cells["height_mm"], "0"))
		}
		if parsed.WidthDefaulted {
			result.Warnings = append(result.Warnings, coercedWarning(rowNum, keyToLabel["width_mm"], cells["width_mm"], "0"))
		}
		if parsed.CategoryDefaulted && cells["category"] != "" {
			result.Warnings = append(result.Warnings, coercedWarning(rowNum, keyToLabel["category"], cells["category"], "Normal"))
		}
		if parsed.HeightDefaulted || parsed.WidthDefaulted || (parsed.CategoryDefaulted && cells["category"] != "") {
			warningRowSet[rowNum] = true
		}

		result.Rows = append(result.Rows, parsed)
	}

	result.WarningRows = len(warningRowSet)
	result.CleanRows = result.TotalRows - result.WarningRows

	return result, nil
}

func coercedWarning(rowNum int, field, value, fallback string) CellWarning {
	msg := fmt.Sprintf("%q could not be read, using %s", value, fallback)
	if value == "" {
		msg = fmt.Sprintf("cell is empty, using %s", fallback)
	}
	return CellWarning{Row: rowNum, Field: field, Message: msg}
}

// GenerateWarningReport creates a downloadable .xlsx file listing the
// coerced cells from an import.
func GenerateWarningReport(warnings []CellWarning) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Warnings"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D97706"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Warning")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, w := range warnings {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, w.Row)
		f.SetCellValue(sheet, "B"+row, w.Field)
		f.SetCellValue(sheet, "C"+row, w.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write warning report: %w", err)
	}
	return buf.Bytes(), nil
}
