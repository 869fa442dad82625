package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CategoryLabels lists the selectable window types for spreadsheet
// dropdowns, in display form.
var CategoryLabels = []string{"Normal", "Louver", "Kitchen", "Jina", "Fix"}

// GenerateMeasurementTemplate creates the downloadable .xlsx entry
// template for site measurements: styled headers, a category dropdown, a
// frozen header row and a hidden instructions sheet.
func GenerateMeasurementTemplate() ([]byte, error) {
	fields := MeasurementTemplateFields()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Measurements"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(len(fields))
	for i, field := range fields {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(sheetName, cell, field.Label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		width := float64(len(field.Label)) * 1.3
		if width < 14 {
			width = 14
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}

	// Category dropdown on the whole column below the header.
	for i, field := range fields {
		if field.Key != "category" {
			continue
		}
		col := columns[i]
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s1048576", col, col)
		dv.SetDropList(CategoryLabels)
		f.AddDataValidation(sheetName, dv)
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	addInstructionsSheet(f, fields)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet creates a hidden sheet with field descriptions.
func addInstructionsSheet(f *excelize.File, fields []TemplateField) {
	instSheet := "Instructions"
	f.NewSheet(instSheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(instSheet, "A1", "Measurement Import - Instructions")
	f.SetCellStyle(instSheet, "A1", "A1", titleStyle)

	instructionHeaders := []string{"Field Name", "Format Rule", "Description", "Example"}
	cols := columnLetters(len(instructionHeaders))
	for i, h := range instructionHeaders {
		cell := fmt.Sprintf("%s3", cols[i])
		f.SetCellValue(instSheet, cell, h)
		f.SetCellStyle(instSheet, cell, cell, headerStyle)
	}

	for i, field := range fields {
		row := fmt.Sprintf("%d", i+4)
		f.SetCellValue(instSheet, cols[0]+row, field.Label)
		f.SetCellValue(instSheet, cols[1]+row, field.FormatRule)
		f.SetCellValue(instSheet, cols[2]+row, field.Description)
		f.SetCellValue(instSheet, cols[3]+row, field.ExampleValue)
	}

	widths := []float64{20, 30, 50, 15}
	for i, w := range widths {
		f.SetColWidth(instSheet, cols[i], cols[i], w)
	}

	f.SetSheetVisible(instSheet, false)
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
