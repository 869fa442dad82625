package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabsheet/services"
)

// measurementRowsFromRecords maps stored records onto core input rows,
// preserving sheet order.
func measurementRowsFromRecords(records []*core.Record) []services.MeasurementRow {
	rows := make([]services.MeasurementRow, 0, len(records))
	for _, rec := range records {
		cat, _ := services.ParseCategory(rec.GetString("category"))
		rows = append(rows, services.MeasurementRow{
			Serial:   rec.GetString("serial"),
			HeightMM: rec.GetInt("height_mm"),
			WidthMM:  rec.GetInt("width_mm"),
			Category: cat,
		})
	}
	return rows
}

// computeBatch loads a project's rows and runs one computation pass.
func computeBatch(app *pocketbase.PocketBase, projectID string) (services.Batch, error) {
	records, err := findProjectMeasurements(app, projectID)
	if err != nil {
		return services.Batch{}, err
	}
	return services.Process(measurementRowsFromRecords(records)), nil
}

// HandleSheetCompute returns a handler serving the computed cutting sheet
// for a project as JSON. Nothing is persisted: every request recomputes
// the whole batch from the stored raw rows.
func HandleSheetCompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		batch, err := computeBatch(app, projectID)
		if err != nil {
			log.Printf("sheet_compute: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project":         projectToResponse(project),
			"rows":            batch.Rows,
			"total_area_sqft": batch.TotalAreaSqft,
		})
	}
}
