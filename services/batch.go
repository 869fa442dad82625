package services

import (
	"math"
	"strconv"
	"strings"
)

// MeasurementRow is one physical window unit as measured on site. Height
// and width are the raw opening size in millimeters (H1/W1); Serial is
// carried through for display only. The Defaulted flags record cells that
// were coerced from malformed input so a reviewer can spot them.
type MeasurementRow struct {
	Serial   string   `json:"serial"`
	HeightMM int      `json:"height_mm"`
	WidthMM  int      `json:"width_mm"`
	Category Category `json:"category"`

	HeightDefaulted   bool `json:"height_defaulted,omitempty"`
	WidthDefaulted    bool `json:"width_defaulted,omitempty"`
	CategoryDefaulted bool `json:"category_defaulted,omitempty"`
}

// ParseMeasurementRow builds a MeasurementRow from free-form string input
// (manual entry, spreadsheet cell or recognized handwriting). Malformed or
// negative dimensions degrade to 0 and unknown categories degrade to
// Normal; nothing here ever fails, the result is meant to be reviewed and
// corrected, not rejected.
func ParseMeasurementRow(serial, height, width, category string) MeasurementRow {
	row := MeasurementRow{Serial: strings.TrimSpace(serial)}
	row.HeightMM, row.HeightDefaulted = parseMM(height)
	row.WidthMM, row.WidthDefaulted = parseMM(width)
	row.Category, row.CategoryDefaulted = ParseCategory(category)
	return row
}

// parseMM coerces a string to a non-negative integer millimeter value.
// Decimal input is rounded; anything unparseable or negative becomes 0
// with the defaulted flag set.
func parseMM(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, true
		}
		return n, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, true
		}
		return roundHalfAway(f), false
	}
	return 0, true
}

// DerivedRow is a MeasurementRow plus the computed dimensions for one
// batch pass. AreaSqft is always computed from the raw H1/W1 regardless of
// category; the frame/sash offsets are absent for non-offset categories.
type DerivedRow struct {
	MeasurementRow
	Offsets
	AreaSqft float64 `json:"area_sqft"`
}

// Batch is the result of one computation pass over an ordered set of rows.
type Batch struct {
	Rows          []DerivedRow `json:"rows"`
	TotalAreaSqft float64      `json:"total_area_sqft"`
}

// round3 rounds to 3 decimal places, halves away from zero.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RowArea returns the Sf area estimate for one raw opening size: the
// product of the two half-foot pricing values, rounded to 3 decimals.
func RowArea(heightMM, widthMM int) float64 {
	return round3(ToFeet(heightMM) * ToFeet(widthMM))
}

// Process derives every row and aggregates the total area. Input order is
// preserved and the input slice is never mutated; each call returns a
// fresh Batch. The total is the rounded sum of the per-row rounded areas,
// matching what a reader adding up the printed column would get.
func Process(rows []MeasurementRow) Batch {
	batch := Batch{Rows: make([]DerivedRow, 0, len(rows))}

	var total float64
	for _, row := range rows {
		area := RowArea(row.HeightMM, row.WidthMM)
		total += area

		batch.Rows = append(batch.Rows, DerivedRow{
			MeasurementRow: row,
			Offsets:        Derive(row.Category, row.HeightMM, row.WidthMM),
			AreaSqft:       area,
		})
	}

	batch.TotalAreaSqft = round3(total)
	return batch
}
