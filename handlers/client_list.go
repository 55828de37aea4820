package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type clientSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// HandleClientList returns a handler that serves all clients ordered by
// name. An optional ?q= substring filters on the name.
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if q := e.Request.URL.Query().Get("q"); q != "" {
			filter = "name ~ {:q}"
			params["q"] = q
		}

		records, err := app.FindRecordsByFilter("clients", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("client_list: could not query clients: %v", err)
			return apiError(e, err)
		}

		out := make([]clientSummary, 0, len(records))
		for _, r := range records {
			out = append(out, clientSummary{
				ID:      r.Id,
				Name:    r.GetString("name"),
				Phone:   r.GetString("phone"),
				Email:   r.GetString("email"),
				Address: r.GetString("address"),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}
