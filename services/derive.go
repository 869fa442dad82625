package services

import (
	"math"
	"strings"
)

// Category is the window type controlling which offset formulas apply.
type Category int

const (
	CategoryNormal Category = iota
	CategoryLouver
	CategoryKitchen
	CategoryJina
	CategoryFix
)

var categoryNames = map[Category]string{
	CategoryNormal:  "Normal",
	CategoryLouver:  "Louver",
	CategoryKitchen: "Kitchen",
	CategoryJina:    "Jina",
	CategoryFix:     "Fix",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Normal"
}

// Slug returns the lowercase form stored in the measurements collection.
func (c Category) Slug() string {
	return strings.ToLower(c.String())
}

// MarshalJSON emits the display name so API payloads carry "Normal"
// instead of an opaque number.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts any casing and degrades unknown names to Normal,
// mirroring ParseCategory.
func (c *Category) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, _ := ParseCategory(s)
	*c = parsed
	return nil
}

// ParseCategory normalizes a free-form category string (trim, case-fold).
// Unrecognized or empty input falls back to Normal; the second return
// reports whether that fallback happened so a grid can flag the cell.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return CategoryNormal, false
	case "louver":
		return CategoryLouver, false
	case "kitchen":
		return CategoryKitchen, false
	case "jina":
		return CategoryJina, false
	case "fix":
		return CategoryFix, false
	default:
		return CategoryNormal, true
	}
}

// Dim is a millimeter dimension that may be absent. Absent is distinct
// from zero: Louver/Jina/Fix rows have no frame or sash dimensions at all.
type Dim struct {
	Mm    int  `json:"mm"`
	Valid bool `json:"valid"`
}

func dim(mm int) Dim { return Dim{Mm: mm, Valid: true} }

// Offsets holds the derived frame (H2/W2) and sash (H3/W3) dimensions for
// one row, plus the inch-fraction display strings for the sash pair.
type Offsets struct {
	FrameHeight Dim `json:"frame_height_mm"`
	FrameWidth  Dim `json:"frame_width_mm"`
	SashHeight  Dim `json:"sash_height_mm"`
	SashWidth   Dim `json:"sash_width_mm"`

	SashHeightDisplay string `json:"sash_height_display"`
	SashWidthDisplay  string `json:"sash_width_display"`
}

// roundHalfAway rounds to the nearest integer with halves away from zero,
// so (600-165)/2 = 217.5 becomes 218.
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}

// Derive applies the category's offset formulas to the raw opening size.
// Louver, Jina and Fix need no offset dimensioning and return all-absent
// values; Kitchen uses a wider frame deduction and a deeper sash cut than
// the Normal path.
func Derive(cat Category, heightMM, widthMM int) Offsets {
	switch cat {
	case CategoryLouver, CategoryJina, CategoryFix:
		return Offsets{}
	}

	frameDeduction := 165
	sashCut := 64
	if cat == CategoryKitchen {
		frameDeduction = 395
		sashCut = 65
	}

	h2 := heightMM - 38
	w2 := roundHalfAway(float64(widthMM-frameDeduction) / 2)
	h3 := h2 - sashCut
	w3 := w2 + 15

	return Offsets{
		FrameHeight:       dim(h2),
		FrameWidth:        dim(w2),
		SashHeight:        dim(h3),
		SashWidth:         dim(w3),
		SashHeightDisplay: ToInchFraction(float64(h3)),
		SashWidthDisplay:  ToInchFraction(float64(w3)),
	}
}
