package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabsheet/services"
)

// measurementForm is the JSON body accepted when adding or patching a
// measurement row. String fields let noisy input (OCR, hand-typed cells)
// through; the core coerces them with defaulted flags instead of
// rejecting the row.
type measurementForm struct {
	Serial   string `json:"serial"`
	HeightMM string `json:"height_mm"`
	WidthMM  string `json:"width_mm"`
	Category string `json:"category"`
}

// measurementResponse is the JSON shape of one stored row.
type measurementResponse struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
	Serial    string `json:"serial"`
	HeightMM  int    `json:"height_mm"`
	WidthMM   int    `json:"width_mm"`
	Category  string `json:"category"`
}

func measurementToResponse(rec *core.Record) measurementResponse {
	cat, _ := services.ParseCategory(rec.GetString("category"))
	return measurementResponse{
		ID:        rec.Id,
		SortOrder: rec.GetInt("sort_order"),
		Serial:    rec.GetString("serial"),
		HeightMM:  rec.GetInt("height_mm"),
		WidthMM:   rec.GetInt("width_mm"),
		Category:  cat.String(),
	}
}

// findProjectMeasurements loads a project's measurement records in sheet
// order.
func findProjectMeasurements(app *pocketbase.PocketBase, projectID string) ([]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("measurements")
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "project = {:projectId}", "sort_order", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	return records, nil
}

// nextSortOrder returns the sort_order for a row appended to the project.
func nextSortOrder(records []*core.Record) int {
	max := 0
	for _, r := range records {
		if so := r.GetInt("sort_order"); so > max {
			max = so
		}
	}
	return max + 1
}

// saveMeasurement applies a parsed row to a record. Only the normalized
// values are stored; the defaulted flags are per-pass review hints, not
// persistent state.
func saveMeasurement(app *pocketbase.PocketBase, rec *core.Record, row services.MeasurementRow) error {
	rec.Set("serial", row.Serial)
	rec.Set("height_mm", row.HeightMM)
	rec.Set("width_mm", row.WidthMM)
	rec.Set("category", row.Category.Slug())
	return app.Save(rec)
}

// HandleMeasurementList returns a handler that lists a project's raw rows.
func HandleMeasurementList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		records, err := findProjectMeasurements(app, projectID)
		if err != nil {
			log.Printf("measurement_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		items := make([]measurementResponse, 0, len(records))
		for _, rec := range records {
			items = append(items, measurementToResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"measurements": items})
	}
}

// HandleMeasurementAdd returns a handler that appends one row to a project.
func HandleMeasurementAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		var form measurementForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		existing, err := findProjectMeasurements(app, projectID)
		if err != nil {
			log.Printf("measurement_add: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		col, err := app.FindCollectionByNameOrId("measurements")
		if err != nil {
			log.Printf("measurement_add: could not find measurements collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		row := services.ParseMeasurementRow(form.Serial, form.HeightMM, form.WidthMM, form.Category)

		rec := core.NewRecord(col)
		rec.Set("project", projectID)
		rec.Set("sort_order", nextSortOrder(existing))
		if err := saveMeasurement(app, rec, row); err != nil {
			log.Printf("measurement_add: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save measurement")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"measurement": measurementToResponse(rec),
			"row":         row,
		})
	}
}

// HandleMeasurementUpdate returns a handler that patches one row.
func HandleMeasurementUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("measurements", e.Request.PathValue("measurementId"))
		if err != nil {
			return e.String(http.StatusNotFound, "Measurement not found")
		}

		var form measurementForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		row := services.ParseMeasurementRow(form.Serial, form.HeightMM, form.WidthMM, form.Category)
		if err := saveMeasurement(app, rec, row); err != nil {
			log.Printf("measurement_update: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save measurement")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"measurement": measurementToResponse(rec),
			"row":         row,
		})
	}
}

// reorderForm carries the full ID sequence of a project's rows in the
// desired sheet order.
type reorderForm struct {
	IDs []string `json:"ids"`
}

// HandleMeasurementReorder returns a handler that rewrites sort_order from
// an explicit ID sequence. IDs not belonging to the project are rejected;
// rows missing from the sequence keep their place after the reordered ones.
func HandleMeasurementReorder(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		var form reorderForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		records, err := findProjectMeasurements(app, projectID)
		if err != nil {
			log.Printf("measurement_reorder: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		byID := make(map[string]*core.Record, len(records))
		for _, rec := range records {
			byID[rec.Id] = rec
		}

		order := 0
		for _, id := range form.IDs {
			rec, ok := byID[id]
			if !ok {
				return e.String(http.StatusBadRequest,
					fmt.Sprintf("Measurement %s does not belong to this project", id))
			}
			order++
			rec.Set("sort_order", order)
			if err := app.Save(rec); err != nil {
				log.Printf("measurement_reorder: save failed: %v", err)
				return e.String(http.StatusInternalServerError, "Failed to save order")
			}
			delete(byID, id)
		}
		// Anything the client did not mention trails in its previous order.
		for _, rec := range records {
			if _, left := byID[rec.Id]; !left {
				continue
			}
			order++
			rec.Set("sort_order", order)
			if err := app.Save(rec); err != nil {
				log.Printf("measurement_reorder: save failed: %v", err)
				return e.String(http.StatusInternalServerError, "Failed to save order")
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"reordered": order})
	}
}

// HandleMeasurementDelete returns a handler that removes one row.
func HandleMeasurementDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("measurements", e.Request.PathValue("measurementId"))
		if err != nil {
			return e.String(http.StatusNotFound, "Measurement not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("measurement_delete: delete failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to delete measurement")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
