package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type measurementDef struct {
	sortOrder int
	serial    string
	heightMM  int
	widthMM   int
	category  string
}

// Seed inserts a demo project with a realistic set of site measurements.
// It is safe to call on every startup because it returns early if any
// project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	measurementsCol, err := app.FindCollectionByNameOrId("measurements")
	if err != nil {
		return fmt.Errorf("seed: could not find measurements collection: %w", err)
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "Sharma Residence")
	project.Set("owner_name", "R. Sharma")
	project.Set("site_address", "14 Lake Road, Bhopal")
	project.Set("phone", "9876543210")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	measurements := []measurementDef{
		{1, "W-101", 1219, 914, "normal"},
		{2, "W-102", 1219, 914, "normal"},
		{3, "W-103", 1000, 600, "kitchen"},
		{4, "W-104", 600, 450, "louver"},
		{5, "W-105", 1500, 1200, "fix"},
		{6, "W-106", 2100, 900, "jina"},
		{7, "W-107", 1372, 1066, "normal"},
	}

	for _, m := range measurements {
		rec := core.NewRecord(measurementsCol)
		rec.Set("project", project.Id)
		rec.Set("sort_order", m.sortOrder)
		rec.Set("serial", m.serial)
		rec.Set("height_mm", m.heightMM)
		rec.Set("width_mm", m.widthMM)
		rec.Set("category", m.category)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save measurement %s: %w", m.serial, err)
		}
	}

	log.Printf("seed: inserted project %q with %d measurements", project.GetString("name"), len(measurements))
	return nil
}
