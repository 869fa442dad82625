// Package handlers exposes the HTTP surface of the application: project
// and measurement CRUD, the compute endpoint, spreadsheet import and the
// cutting-sheet exports. Responses are JSON except for file downloads.
package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// projectResponse is the JSON shape returned for one project.
type projectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerName   string `json:"owner_name"`
	SiteAddress string `json:"site_address"`
	Phone       string `json:"phone"`
	Created     string `json:"created"`
}

func projectToResponse(rec *core.Record) projectResponse {
	created := ""
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		created = dt.Time().Format("02 Jan 2006")
	}
	return projectResponse{
		ID:          rec.Id,
		Name:        rec.GetString("name"),
		OwnerName:   rec.GetString("owner_name"),
		SiteAddress: rec.GetString("site_address"),
		Phone:       rec.GetString("phone"),
		Created:     created,
	}
}

// projectForm is the JSON body accepted when creating or updating a project.
type projectForm struct {
	Name        string `json:"name"`
	OwnerName   string `json:"owner_name"`
	SiteAddress string `json:"site_address"`
	Phone       string `json:"phone"`
}

// HandleProjectList returns a handler that lists all projects.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		items := make([]projectResponse, 0, len(records))
		for _, rec := range records {
			items = append(items, projectToResponse(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"projects": items})
	}
}

// HandleProjectCreate returns a handler that creates a new project.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form projectForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		if form.Name == "" {
			return e.String(http.StatusBadRequest, "Project name is required")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("name", form.Name)
		rec.Set("owner_name", form.OwnerName)
		rec.Set("site_address", form.SiteAddress)
		rec.Set("phone", form.Phone)
		if err := app.Save(rec); err != nil {
			log.Printf("project_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save project")
		}

		return e.JSON(http.StatusCreated, projectToResponse(rec))
	}
}

// HandleProjectUpdate returns a handler that updates a project's metadata.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		var form projectForm
		if err := e.BindBody(&form); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		if form.Name == "" {
			return e.String(http.StatusBadRequest, "Project name is required")
		}

		rec.Set("name", form.Name)
		rec.Set("owner_name", form.OwnerName)
		rec.Set("site_address", form.SiteAddress)
		rec.Set("phone", form.Phone)
		if err := app.Save(rec); err != nil {
			log.Printf("project_update: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save project")
		}

		return e.JSON(http.StatusOK, projectToResponse(rec))
	}
}

// HandleProjectDelete returns a handler that deletes a project and, via
// cascade, its measurements.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("project_delete: delete failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to delete project")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
