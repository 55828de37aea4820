package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleClientDelete returns a handler that deletes a client. Quotations
// referencing it keep working; the relation just dangles and exports render
// an empty client block.
func HandleClientDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("id")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing client id"})
		}

		rec, err := app.FindRecordById("clients", clientID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "client not found"})
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("client_delete: could not delete client %s: %v", clientID, err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]string{"id": clientID})
	}
}
