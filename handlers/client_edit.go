package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// HandleClientEdit returns a handler that updates an existing client.
func HandleClientEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("id")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing client id"})
		}

		rec, err := app.FindRecordById("clients", clientID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "client not found"})
		}

		var payload clientPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return apiError(e, &services.ValidationError{Field: "name", Reason: "must not be empty"})
		}

		rec.Set("name", payload.Name)
		rec.Set("phone", payload.Phone)
		rec.Set("email", payload.Email)
		rec.Set("address", payload.Address)
		if err := app.Save(rec); err != nil {
			log.Printf("client_edit: could not save client %s: %v", clientID, err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]string{"id": rec.Id})
	}
}
