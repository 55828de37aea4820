package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// BuildQuotationData assembles everything the plan builder needs from
// PocketBase records: the quotation with its ordered line items, the issuing
// company profile and the referenced client. A missing client degrades to an
// empty one so an export never fails on a dangling relation; a missing
// quotation is an error.
func BuildQuotationData(app *pocketbase.PocketBase, quotationID string) (Quotation, CompanyProfile, Client, error) {
	rec, err := app.FindRecordById("quotations", quotationID)
	if err != nil {
		return Quotation{}, CompanyProfile{}, Client{}, fmt.Errorf("quotation not found: %w", err)
	}

	q := Quotation{
		Number: rec.GetString("number"),
		Date:   rec.GetDateTime("date").Time(),
		Discount: Discount{
			Type:  DiscountType(rec.GetString("discount_type")),
			Value: decimal.NewFromFloat(rec.GetFloat("discount_value")),
		},
		TaxRatePercent: decimal.NewFromFloat(rec.GetFloat("tax_rate")),
		Shipping:       decimal.NewFromFloat(rec.GetFloat("shipping")),
		Status:         Status(rec.GetString("status")),
		Notes:          rec.GetString("notes"),
		AmountPaid:     decimal.NewFromFloat(rec.GetFloat("amount_paid")),
		PaymentStatus:  PaymentStatus(rec.GetString("payment_status")),
	}
	if q.Discount.Type == "" {
		q.Discount.Type = DiscountFixed
	}

	itemRecords, err := app.FindRecordsByFilter(
		"quotation_items",
		"quotation = {:quotationId}",
		"sort_order",
		0,
		0,
		map[string]any{"quotationId": quotationID},
	)
	if err != nil {
		log.Printf("quotation_data: could not fetch items for %s: %v", quotationID, err)
		itemRecords = nil
	}
	for _, item := range itemRecords {
		q.Items = append(q.Items, LineItem{
			Group:       item.GetString("group"),
			Qty:         decimal.NewFromFloat(item.GetFloat("qty")),
			Unit:        item.GetString("unit"),
			Description: item.GetString("description"),
			UnitPrice:   decimal.NewFromFloat(item.GetFloat("unit_price")),
		})
	}

	company := LoadCompanyProfile(app)

	var client Client
	if clientID := rec.GetString("client"); clientID != "" {
		if c, err := app.FindRecordById("clients", clientID); err == nil {
			client = Client{
				Name:    c.GetString("name"),
				Phone:   c.GetString("phone"),
				Email:   c.GetString("email"),
				Address: c.GetString("address"),
			}
		} else {
			log.Printf("quotation_data: could not find client %s: %v", clientID, err)
		}
	}

	return q, company, client, nil
}

// LoadCompanyProfile returns the single issuing-company record, or a zero
// profile when none has been seeded yet.
func LoadCompanyProfile(app *pocketbase.PocketBase) CompanyProfile {
	records, err := app.FindRecordsByFilter("company_profile", "id != ''", "-created", 1, 0)
	if err != nil || len(records) == 0 {
		log.Printf("quotation_data: no company profile record: %v", err)
		return CompanyProfile{}
	}
	r := records[0]
	return CompanyProfile{
		Name:        r.GetString("name"),
		Address:     r.GetString("address"),
		Phone:       r.GetString("phone"),
		Email:       r.GetString("email"),
		SocialLinks: r.GetString("social_links"),
		TaxID:       r.GetString("tax_id"),
		LogoPath:    r.GetString("logo_path"),
	}
}
