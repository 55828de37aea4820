package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/handlers"
)

func main() {
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
		// ── Company profile ──────────────────────────────────────
		se.Router.GET("/api/quotationdesk/company", handlers.HandleCompanyView(app))
		se.Router.POST("/api/quotationdesk/company", handlers.HandleCompanySave(app))

		// ── Clients ──────────────────────────────────────────────
		se.Router.GET("/api/quotationdesk/clients", handlers.HandleClientList(app))
		se.Router.POST("/api/quotationdesk/clients", handlers.HandleClientCreate(app))
		se.Router.POST("/api/quotationdesk/clients/{id}", handlers.HandleClientEdit(app))
		se.Router.DELETE("/api/quotationdesk/clients/{id}", handlers.HandleClientDelete(app))

		// ── Quotations ───────────────────────────────────────────
		se.Router.GET("/api/quotationdesk/quotations", handlers.HandleQuotationList(app))
		se.Router.POST("/api/quotationdesk/quotations", handlers.HandleQuotationCreate(app))
		se.Router.GET("/api/quotationdesk/quotations/{id}", handlers.HandleQuotationView(app))
		se.Router.POST("/api/quotationdesk/quotations/{id}", handlers.HandleQuotationEdit(app))
		se.Router.DELETE("/api/quotationdesk/quotations/{id}", handlers.HandleQuotationDelete(app))
		se.Router.POST("/api/quotationdesk/quotations/{id}/status", handlers.HandleQuotationStatus(app))
		se.Router.POST("/api/quotationdesk/quotations/{id}/payment", handlers.HandleQuotationPayment(app))

		// ── Document exports ─────────────────────────────────────
		se.Router.GET("/api/quotationdesk/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app))
		se.Router.GET("/api/quotationdesk/quotations/{id}/export/pdf", handlers.HandleQuotationExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
