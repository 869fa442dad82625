package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabsheet/services"
)

// HandleMeasurementTemplateDownload returns a handler serving the xlsx
// entry template.
func HandleMeasurementTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateMeasurementTemplate()
		if err != nil {
			log.Printf("measurement_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="Measurement_Template.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleMeasurementValidate returns a handler that parses an uploaded
// .csv or .xlsx measurement file. The result lists every parsed row plus
// warnings for coerced cells; nothing is stored until commit.
func HandleMeasurementValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateMeasurementFile(file, header.Filename)
		if err != nil {
			log.Printf("measurement_validate: %v", err)
			return e.String(http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, result)
	}
}

// importCommitForm is the JSON body for committing reviewed import rows.
type importCommitForm struct {
	Rows []services.MeasurementRow `json:"rows"`
}

// HandleMeasurementImportCommit returns a handler that appends reviewed
// rows to the project.
func HandleMeasurementImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		var form importCommitForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		if len(form.Rows) == 0 {
			return e.String(http.StatusBadRequest, "No rows to import")
		}

		existing, err := findProjectMeasurements(app, projectID)
		if err != nil {
			log.Printf("measurement_import: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		col, err := app.FindCollectionByNameOrId("measurements")
		if err != nil {
			log.Printf("measurement_import: could not find measurements collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		sortOrder := nextSortOrder(existing)
		for i, row := range form.Rows {
			rec := core.NewRecord(col)
			rec.Set("project", projectID)
			rec.Set("sort_order", sortOrder+i)
			if err := saveMeasurement(app, rec, row); err != nil {
				return e.String(http.StatusInternalServerError,
					fmt.Sprintf("Failed to save row %d", i+1))
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"imported": len(form.Rows)})
	}
}

// warningReportForm is the JSON body for downloading a warning report.
type warningReportForm struct {
	Warnings []services.CellWarning `json:"warnings"`
}

// HandleImportWarningReport returns a handler that generates the xlsx
// warning report for an import's coerced cells.
func HandleImportWarningReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form warningReportForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		xlsxBytes, err := services.GenerateWarningReport(form.Warnings)
		if err != nil {
			log.Printf("import_warnings: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate report")
		}

		filename := fmt.Sprintf("Import_Warnings_%d.xlsx", time.Now().Year())
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
