package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotationdesk/services"
)

type paymentPayload struct {
	AmountPaid float64 `json:"amount_paid"`
}

// HandleQuotationPayment returns a handler that records a payment amount.
// The stored amount is clamped at the quotation total and the payment
// status is derived, never set directly.
func HandleQuotationPayment(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation id"})
		}

		rec, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		var payload paymentPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if payload.AmountPaid < 0 {
			return apiError(e, &services.ValidationError{Field: "amount_paid", Reason: "must not be negative"})
		}

		total := decimal.NewFromFloat(rec.GetFloat("total"))
		paid := services.ClampAmountPaid(decimal.NewFromFloat(payload.AmountPaid), total)
		paymentStatus := services.DerivePaymentStatus(paid, total)

		rec.Set("amount_paid", paid.InexactFloat64())
		rec.Set("payment_status", string(paymentStatus))
		if err := app.Save(rec); err != nil {
			log.Printf("quotation_payment: could not save %s: %v", quotationID, err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":             rec.Id,
			"amount_paid":    paid.InexactFloat64(),
			"payment_status": string(paymentStatus),
		})
	}
}
