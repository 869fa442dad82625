package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabsheet/collections"
	"fabsheet/handlers"
)

func main() {
	// Optional .env for FABSHEET_COMPANY_NAME and friends.
	if err := godotenv.Load(); err == nil {
		log.Printf("main: loaded .env")
	}

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectCreate(app))
		se.Router.PUT("/api/projects/{id}", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/api/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Measurement rows ─────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/measurements", handlers.HandleMeasurementList(app))
		se.Router.POST("/api/projects/{projectId}/measurements", handlers.HandleMeasurementAdd(app))
		se.Router.PUT("/api/projects/{projectId}/measurements/reorder", handlers.HandleMeasurementReorder(app))
		se.Router.PUT("/api/measurements/{measurementId}", handlers.HandleMeasurementUpdate(app))
		se.Router.DELETE("/api/measurements/{measurementId}", handlers.HandleMeasurementDelete(app))

		// ── Spreadsheet import ───────────────────────────────────
		se.Router.GET("/api/measurements/template", handlers.HandleMeasurementTemplateDownload(app))
		se.Router.POST("/api/projects/{projectId}/measurements/validate", handlers.HandleMeasurementValidate(app))
		se.Router.POST("/api/projects/{projectId}/measurements/import", handlers.HandleMeasurementImportCommit(app))
		se.Router.POST("/api/measurements/import/warnings", handlers.HandleImportWarningReport(app))

		// ── Cutting sheet ────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/sheet", handlers.HandleSheetCompute(app))
		se.Router.GET("/api/projects/{projectId}/sheet/excel", handlers.HandleSheetExportExcel(app))
		se.Router.GET("/api/projects/{projectId}/sheet/pdf", handlers.HandleSheetExportPDF(app))

		return se.Next()
	})

	app.RootCmd.AddCommand(newConvertCmd())

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
