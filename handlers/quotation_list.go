package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type quotationSummary struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	Client        string  `json:"client"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Total         float64 `json:"total"`
	AmountPaid    float64 `json:"amount_paid"`
}

// HandleQuotationList returns a handler that serves quotations, newest
// first. Optional ?status= and ?client= parameters filter the result.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}
		if client := e.Request.URL.Query().Get("client"); client != "" {
			filter += " && client = {:client}"
			params["client"] = client
		}

		records, err := app.FindRecordsByFilter("quotations", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("quotation_list: could not query quotations: %v", err)
			return apiError(e, err)
		}

		out := make([]quotationSummary, 0, len(records))
		for _, r := range records {
			out = append(out, quotationSummary{
				ID:            r.Id,
				Number:        r.GetString("number"),
				Client:        r.GetString("client"),
				Date:          r.GetDateTime("date").Time().Format("2006-01-02"),
				Status:        r.GetString("status"),
				PaymentStatus: r.GetString("payment_status"),
				Total:         r.GetFloat("total"),
				AmountPaid:    r.GetFloat("amount_paid"),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}
