package services

import (
	"fmt"
	"strconv"
)

// SheetRow is one line of the cutting sheet, ready for a renderer or data
// grid. Millimeter dimensions that are absent for the row's category are
// empty strings, never "0": the fabricator must be able to tell "zero
// millimeters" apart from "not cut for this window type".
type SheetRow struct {
	Index    int    `json:"index"`
	Serial   string `json:"serial"`
	HeightMM int    `json:"height_mm"`
	WidthMM  int    `json:"width_mm"`
	Category string `json:"category"`

	FrameHeight string `json:"frame_height"`
	FrameWidth  string `json:"frame_width"`
	SashHeight  string `json:"sash_height"`
	SashWidth   string `json:"sash_width"`

	SashHeightDisplay string `json:"sash_height_display"`
	SashWidthDisplay  string `json:"sash_width_display"`

	AreaSqft float64 `json:"area_sqft"`
}

// SheetMeta is the project metadata printed on the cutting sheet header.
type SheetMeta struct {
	Title       string
	OwnerName   string
	SiteAddress string
	Phone       string
	CompanyName string
	CreatedDate string
}

// SheetData holds everything an exporter needs for one cutting sheet.
type SheetData struct {
	SheetMeta
	Rows          []SheetRow
	TotalAreaSqft float64
}

// formatDim renders an optional millimeter dimension for display.
func formatDim(d Dim) string {
	if !d.Valid {
		return ""
	}
	return strconv.Itoa(d.Mm)
}

// formatArea renders an Sf value with the 3-decimal precision the batch
// carries.
func formatArea(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// BuildSheetData maps a computed batch into renderer-ready rows.
func BuildSheetData(meta SheetMeta, batch Batch) SheetData {
	data := SheetData{
		SheetMeta:     meta,
		Rows:          make([]SheetRow, 0, len(batch.Rows)),
		TotalAreaSqft: batch.TotalAreaSqft,
	}

	for i, r := range batch.Rows {
		data.Rows = append(data.Rows, SheetRow{
			Index:             i + 1,
			Serial:            r.Serial,
			HeightMM:          r.HeightMM,
			WidthMM:           r.WidthMM,
			Category:          r.Category.String(),
			FrameHeight:       formatDim(r.FrameHeight),
			FrameWidth:        formatDim(r.FrameWidth),
			SashHeight:        formatDim(r.SashHeight),
			SashWidth:         formatDim(r.SashWidth),
			SashHeightDisplay: r.SashHeightDisplay,
			SashWidthDisplay:  r.SashWidthDisplay,
			AreaSqft:          r.AreaSqft,
		})
	}

	return data
}
