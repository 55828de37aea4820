package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type clientPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// HandleClientCreate returns a handler that creates a client record.
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload clientPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return apiError(e, &services.ValidationError{Field: "name", Reason: "must not be empty"})
		}

		col, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_create: collection missing: %v", err)
			return apiError(e, err)
		}

		rec := core.NewRecord(col)
		rec.Set("name", payload.Name)
		rec.Set("phone", payload.Phone)
		rec.Set("email", payload.Email)
		rec.Set("address", payload.Address)
		if err := app.Save(rec); err != nil {
			log.Printf("client_create: could not save client: %v", err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": rec.Id})
	}
}
