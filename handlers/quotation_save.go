package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotationdesk/collections"
	"quotationdesk/services"
)

type quotationItemPayload struct {
	Group       string  `json:"group"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
}

type quotationPayload struct {
	Client        string                 `json:"client"`
	Date          string                 `json:"date"` // 2006-01-02, defaults to today
	DiscountType  string                 `json:"discount_type"`
	DiscountValue float64                `json:"discount_value"`
	TaxRate       float64                `json:"tax_rate"`
	Shipping      float64                `json:"shipping"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes"`
	Items         []quotationItemPayload `json:"items"`
}

type quotationSaved struct {
	ID             string  `json:"id"`
	Number         string  `json:"number"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// HandleQuotationCreate returns a handler that creates a quotation with its
// line items. The document number is allocated atomically and the totals
// are computed in the same request, so list views never show stale numbers.
func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload quotationPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		disc, status, totals, err := validateQuotationPayload(&payload)
		if err != nil {
			return apiError(e, err)
		}

		number, err := collections.NextQuotationNumber(app)
		if err != nil {
			log.Printf("quotation_create: could not allocate number: %v", err)
			return apiError(e, err)
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotation_create: collection missing: %v", err)
			return apiError(e, err)
		}

		rec := core.NewRecord(col)
		rec.Set("number", number)
		applyQuotationPayload(rec, &payload, disc, status, totals)
		rec.Set("amount_paid", 0)
		rec.Set("payment_status", string(services.PaymentPending))
		if err := app.Save(rec); err != nil {
			log.Printf("quotation_create: could not save quotation: %v", err)
			return apiError(e, err)
		}

		if err := replaceQuotationItems(app, rec.Id, payload.Items); err != nil {
			log.Printf("quotation_create: could not save items: %v", err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusCreated, quotationSaved{
			ID:             rec.Id,
			Number:         number,
			Subtotal:       totals.Subtotal.InexactFloat64(),
			DiscountAmount: totals.DiscountAmount.InexactFloat64(),
			TaxAmount:      totals.TaxAmount.InexactFloat64(),
			Total:          totals.Total.InexactFloat64(),
		})
	}
}

// HandleQuotationEdit returns a handler that replaces a quotation's fields
// and line items, recomputing totals and re-deriving the payment status
// against the new total.
func HandleQuotationEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation id"})
		}

		rec, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		var payload quotationPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}

		disc, status, totals, err := validateQuotationPayload(&payload)
		if err != nil {
			return apiError(e, err)
		}

		applyQuotationPayload(rec, &payload, disc, status, totals)

		paid := services.ClampAmountPaid(
			decimal.NewFromFloat(rec.GetFloat("amount_paid")), totals.Total)
		rec.Set("amount_paid", paid.InexactFloat64())
		rec.Set("payment_status", string(services.DerivePaymentStatus(paid, totals.Total)))

		if err := app.Save(rec); err != nil {
			log.Printf("quotation_edit: could not save quotation %s: %v", quotationID, err)
			return apiError(e, err)
		}

		if err := replaceQuotationItems(app, rec.Id, payload.Items); err != nil {
			log.Printf("quotation_edit: could not replace items: %v", err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, quotationSaved{
			ID:             rec.Id,
			Number:         rec.GetString("number"),
			Subtotal:       totals.Subtotal.InexactFloat64(),
			DiscountAmount: totals.DiscountAmount.InexactFloat64(),
			TaxAmount:      totals.TaxAmount.InexactFloat64(),
			Total:          totals.Total.InexactFloat64(),
		})
	}
}

// validateQuotationPayload normalizes defaults, validates the closed sets
// and runs the totals calculation once for the whole payload.
func validateQuotationPayload(payload *quotationPayload) (services.Discount, services.Status, services.Totals, error) {
	if payload.DiscountType == "" {
		payload.DiscountType = string(services.DiscountFixed)
	}
	discType, err := services.ParseDiscountType(payload.DiscountType)
	if err != nil {
		return services.Discount{}, "", services.Totals{}, err
	}
	disc := services.Discount{Type: discType, Value: decimal.NewFromFloat(payload.DiscountValue)}

	if payload.Status == "" {
		payload.Status = string(services.StatusDraft)
	}
	status, err := services.ParseStatus(payload.Status)
	if err != nil {
		return services.Discount{}, "", services.Totals{}, err
	}

	if payload.Date == "" {
		payload.Date = time.Now().Format("2006-01-02")
	}

	items := make([]services.LineItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, services.LineItem{
			Group:       it.Group,
			Qty:         decimal.NewFromFloat(it.Qty),
			Unit:        it.Unit,
			Description: it.Description,
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		})
	}

	totals, err := services.ComputeTotals(items, disc,
		decimal.NewFromFloat(payload.TaxRate), decimal.NewFromFloat(payload.Shipping))
	if err != nil {
		return services.Discount{}, "", services.Totals{}, err
	}
	return disc, status, totals, nil
}

// applyQuotationPayload writes the payload fields and denormalized totals
// onto the record.
func applyQuotationPayload(rec *core.Record, payload *quotationPayload, disc services.Discount, status services.Status, totals services.Totals) {
	rec.Set("client", payload.Client)
	rec.Set("date", payload.Date)
	rec.Set("discount_type", string(disc.Type))
	rec.Set("discount_value", payload.DiscountValue)
	rec.Set("tax_rate", payload.TaxRate)
	rec.Set("shipping", payload.Shipping)
	rec.Set("status", string(status))
	rec.Set("notes", payload.Notes)
	rec.Set("subtotal", totals.Subtotal.InexactFloat64())
	rec.Set("discount_amount", totals.DiscountAmount.InexactFloat64())
	rec.Set("tax_amount", totals.TaxAmount.InexactFloat64())
	rec.Set("total", totals.Total.InexactFloat64())
}

// replaceQuotationItems deletes a quotation's stored items and writes the
// payload's items in payload order. sort_order preserves that order for
// every later read.
func replaceQuotationItems(app *pocketbase.PocketBase, quotationID string, items []quotationItemPayload) error {
	existing, err := app.FindRecordsByFilter(
		"quotation_items", "quotation = {:id}", "", 0, 0, map[string]any{"id": quotationID})
	if err == nil {
		for _, r := range existing {
			if err := app.Delete(r); err != nil {
				return err
			}
		}
	}

	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return err
	}
	for i, it := range items {
		r := core.NewRecord(col)
		r.Set("quotation", quotationID)
		r.Set("sort_order", i)
		r.Set("group", it.Group)
		r.Set("qty", it.Qty)
		r.Set("unit", it.Unit)
		r.Set("description", it.Description)
		r.Set("unit_price", it.UnitPrice)
		if err := app.Save(r); err != nil {
			return err
		}
	}
	return nil
}
