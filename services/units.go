// Package services provides the measurement-to-specification conversion
// pipeline: unit converters, the per-row dimension deriver, the batch
// processor and the import/export helpers built on top of them.
package services

import (
	"fmt"
	"math"
)

const mmPerInch = 25.4

// fractionEps absorbs floating-point noise when comparing a fractional
// inch remainder against an allowed eighth.
const fractionEps = 1e-9

// allowedFractions are the permitted eighths-of-an-inch display values,
// ascending. Zero stands for "exactly on the whole inch".
var allowedFractions = []float64{0, 1.0 / 8, 2.0 / 8, 3.0 / 8, 4.0 / 8, 5.0 / 8, 6.0 / 8, 7.0 / 8}

// ToInchFraction converts a millimeter value into the inch-and-eighths
// notation used on cutting sheets, e.g. `24 3/8"`. The fractional part is
// rounded UP to the smallest allowed eighth; a remainder above 7/8 rolls
// over to the next whole inch.
func ToInchFraction(mm float64) string {
	inches := mm / mmPerInch
	whole := int(math.Floor(inches))
	frac := inches - math.Floor(inches)

	fraction := -1.0
	for _, f := range allowedFractions {
		if frac <= f+fractionEps {
			fraction = f
			break
		}
	}
	if fraction < 0 {
		// Remainder beyond 7/8: next whole inch.
		whole++
		fraction = 0
	}

	numerator := int(math.Round(fraction * 8))
	switch {
	case numerator == 0:
		return fmt.Sprintf("%d\"", whole)
	case numerator >= 8:
		return fmt.Sprintf("%d\"", whole+1)
	case whole == 0:
		return fmt.Sprintf("%d/8\"", numerator)
	default:
		return fmt.Sprintf("%d %d/8\"", whole, numerator)
	}
}

// feetRange maps a closed millimeter interval onto the half-foot value
// used for area pricing.
type feetRange struct {
	lowMM  int
	highMM int
	feet   float64
}

// feetTable is the fixed mm-to-feet lookup used for the Sf area estimate.
// Ranges are disjoint and ascending; values below the table clamp to the
// first entry and values above it clamp to the last.
var feetTable = []feetRange{
	{100, 609, 2.0},
	{610, 761, 2.5},
	{762, 914, 3.0},
	{915, 1066, 3.5},
	{1067, 1219, 4.0},
	{1220, 1371, 4.5},
	{1372, 1523, 5.0},
	{1524, 1676, 5.5},
	{1677, 1828, 6.0},
	{1829, 1980, 6.5},
	{1981, 2132, 7.0},
	{2133, 2285, 7.5},
	{2286, 2437, 8.0},
}

// ToFeet converts a millimeter dimension to its half-foot pricing value
// via the fixed range table. Out-of-table values clamp to the nearest end.
func ToFeet(mm int) float64 {
	if mm < feetTable[0].lowMM {
		return feetTable[0].feet
	}
	for _, r := range feetTable {
		if mm >= r.lowMM && mm <= r.highMM {
			return r.feet
		}
	}
	return feetTable[len(feetTable)-1].feet
}
