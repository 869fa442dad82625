package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabsheet/services"
)

// buildSheetData fetches a project, computes its batch and returns the
// renderer-ready SheetData. Fails when the project has no owner name:
// exporting is the one action that requires complete metadata.
func buildSheetData(app *pocketbase.PocketBase, projectID string) (services.SheetData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return services.SheetData{}, fmt.Errorf("project not found: %w", err)
	}
	if project.GetString("owner_name") == "" {
		return services.SheetData{}, errMissingOwner
	}

	batch, err := computeBatch(app, projectID)
	if err != nil {
		return services.SheetData{}, err
	}

	createdDate := time.Now().Format("02 Jan 2006")

	meta := services.SheetMeta{
		Title:       project.GetString("name"),
		OwnerName:   project.GetString("owner_name"),
		SiteAddress: project.GetString("site_address"),
		Phone:       project.GetString("phone"),
		CompanyName: os.Getenv("FABSHEET_COMPANY_NAME"),
		CreatedDate: createdDate,
	}
	return services.BuildSheetData(meta, batch), nil
}

var errMissingOwner = fmt.Errorf("project has no owner name")

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleSheetExportExcel returns a handler that generates and downloads
// the cutting-sheet workbook for a project.
func HandleSheetExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		data, err := buildSheetData(app, projectID)
		if err == errMissingOwner {
			return e.String(http.StatusUnprocessableEntity, "Owner name is required before export")
		}
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("CuttingSheet_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleSheetExportPDF returns a handler that generates and downloads the
// cutting-sheet PDF for a project.
func HandleSheetExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		data, err := buildSheetData(app, projectID)
		if err == errMissingOwner {
			return e.String(http.StatusUnprocessableEntity, "Owner name is required before export")
		}
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("CuttingSheet_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
