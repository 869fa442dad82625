package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a printable cutting sheet from SheetData using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data SheetData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addSheetHeader(m, data)
	addSheetTableHeader(m)
	for _, r := range data.Rows {
		addSheetTableRow(m, r)
	}
	addSheetSummary(m, data)
	addSheetFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addSheetHeader adds the title and project metadata lines.
func addSheetHeader(m core.Maroto, data SheetData) {
	title := data.Title
	if data.CompanyName != "" {
		title = data.CompanyName + " - " + title
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	metaText := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	metaRight := metaText
	metaRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Owner: %s", data.OwnerName), metaText),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), metaRight),
			),
		),
	)

	if data.SiteAddress != "" || data.Phone != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(fmt.Sprintf("Site: %s", data.SiteAddress), metaText),
				),
				col.New(4).Add(
					text.New(fmt.Sprintf("Ph: %s", data.Phone), metaRight),
				),
			),
		)
	}

	// Spacer
	m.AddRows(row.New(4))
}

// addSheetTableHeader adds the column header row for the measurement table.
func addSheetTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	labels := []string{"#", "Serial", "Category", "H1", "W1", "H2", "W2", "H3", "W3", "Sash H", "Sash W", "Sf"}
	cols := make([]core.Col, 0, len(labels))
	for _, label := range labels {
		cols = append(cols, col.New(1).Add(text.New(label, headerText)).WithStyle(&headerCell))
	}

	m.AddRows(row.New(8).Add(cols...))
}

// addSheetTableRow adds one measurement line; absent dimensions stay blank.
func addSheetTableRow(m core.Maroto, r SheetRow) {
	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left

	cells := []struct {
		value string
		style props.Text
	}{
		{fmt.Sprintf("%d", r.Index), baseText},
		{r.Serial, leftText},
		{r.Category, baseText},
		{fmt.Sprintf("%d", r.HeightMM), baseText},
		{fmt.Sprintf("%d", r.WidthMM), baseText},
		{r.FrameHeight, baseText},
		{r.FrameWidth, baseText},
		{r.SashHeight, baseText},
		{r.SashWidth, baseText},
		{r.SashHeightDisplay, baseText},
		{r.SashWidthDisplay, baseText},
		{formatArea(r.AreaSqft), baseText},
	}

	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(1).Add(text.New(c.value, c.style)))
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addSheetSummary adds the total area line at the bottom of the table.
func addSheetSummary(m core.Maroto, data SheetData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Total Area (Sf)", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(formatArea(data.TotalAreaSqft), labelStyle),
			).WithStyle(summaryCell),
		),
	)
}

// addSheetFooter adds the generated-date line.
func addSheetFooter(m core.Maroto, data SheetData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
