package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type clientView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type quotationItemView struct {
	Group       string  `json:"group"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type quotationView struct {
	ID             string              `json:"id"`
	Number         string              `json:"number"`
	Date           string              `json:"date"`
	Client         clientView          `json:"client"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	AmountPaid     float64             `json:"amount_paid"`
	DiscountType   string              `json:"discount_type"`
	DiscountValue  float64             `json:"discount_value"`
	TaxRate        float64             `json:"tax_rate"`
	Shipping       float64             `json:"shipping"`
	Notes          string              `json:"notes"`
	Items          []quotationItemView `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	DiscountAmount float64             `json:"discount_amount"`
	TaxableBase    float64             `json:"taxable_base"`
	TaxAmount      float64             `json:"tax_amount"`
	Total          float64             `json:"total"`
}

// HandleQuotationView returns a handler that serves one quotation with its
// items and freshly computed totals.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation id"})
		}

		q, _, client, err := services.BuildQuotationData(app, quotationID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		totals, err := services.ComputeTotals(q.Items, q.Discount, q.TaxRatePercent, q.Shipping)
		if err != nil {
			return apiError(e, err)
		}

		items := make([]quotationItemView, 0, len(q.Items))
		for i, it := range q.Items {
			items = append(items, quotationItemView{
				Group:       it.Group,
				Qty:         it.Qty.InexactFloat64(),
				Unit:        it.Unit,
				Description: it.Description,
				UnitPrice:   it.UnitPrice.InexactFloat64(),
				LineTotal:   totals.Lines[i].InexactFloat64(),
			})
		}

		return e.JSON(http.StatusOK, quotationView{
			ID:             quotationID,
			Number:         q.Number,
			Date:           q.Date.Format("2006-01-02"),
			Client: clientView{
				Name:    client.Name,
				Phone:   client.Phone,
				Email:   client.Email,
				Address: client.Address,
			},
			Status:         string(q.Status),
			PaymentStatus:  string(q.PaymentStatus),
			AmountPaid:     q.AmountPaid.InexactFloat64(),
			DiscountType:   string(q.Discount.Type),
			DiscountValue:  q.Discount.Value.InexactFloat64(),
			TaxRate:        q.TaxRatePercent.InexactFloat64(),
			Shipping:       q.Shipping.InexactFloat64(),
			Notes:          q.Notes,
			Items:          items,
			Subtotal:       totals.Subtotal.InexactFloat64(),
			DiscountAmount: totals.DiscountAmount.InexactFloat64(),
			TaxableBase:    totals.TaxableBase.InexactFloat64(),
			TaxAmount:      totals.TaxAmount.InexactFloat64(),
			Total:          totals.Total.InexactFloat64(),
		})
	}
}

// HandleQuotationDelete returns a handler that deletes a quotation; its
// items go with it through the cascade relation.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation id"})
		}

		rec, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		if err := app.Delete(rec); err != nil {
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]string{"id": quotationID})
	}
}
