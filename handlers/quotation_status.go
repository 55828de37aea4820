package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type statusPayload struct {
	Status string `json:"status"`
}

// HandleQuotationStatus returns a handler that sets a quotation's lifecycle
// status. Any value outside the closed set is rejected outright.
func HandleQuotationStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation id"})
		}

		rec, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		var payload statusPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		status, err := services.ParseStatus(payload.Status)
		if err != nil {
			return apiError(e, err)
		}

		rec.Set("status", string(status))
		if err := app.Save(rec); err != nil {
			log.Printf("quotation_status: could not save %s: %v", quotationID, err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]string{
			"id":     rec.Id,
			"status": string(status),
		})
	}
}
