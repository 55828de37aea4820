package collections_test

import (
	"testing"

	"quotationdesk/collections"
	"quotationdesk/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify issuing company
	companyCol, _ := app.FindCollectionByNameOrId("company_profile")
	profiles, err := app.FindAllRecords(companyCol)
	if err != nil {
		t.Fatalf("query company_profile error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 company profile, got %d", len(profiles))
	}
	if got := profiles[0].GetString("name"); got != "Cotiz AC - Servicios de Climatización" {
		t.Errorf("company name = %q, want %q", got, "Cotiz AC - Servicios de Climatización")
	}

	// Verify clients
	clientsCol, _ := app.FindCollectionByNameOrId("clients")
	clients, _ := app.FindAllRecords(clientsCol)
	if len(clients) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(clients))
	}

	// Verify quotation was created with a sequence number and totals
	quotationsCol, _ := app.FindCollectionByNameOrId("quotations")
	quotations, _ := app.FindAllRecords(quotationsCol)
	if len(quotations) != 1 {
		t.Fatalf("expected 1 quotation, got %d", len(quotations))
	}
	q := quotations[0]
	if got := q.GetString("number"); got != "COT-00001" {
		t.Errorf("quotation number = %q, want %q", got, "COT-00001")
	}
	if q.GetFloat("total") <= 0 {
		t.Errorf("quotation total = %v, want > 0", q.GetFloat("total"))
	}
	if q.GetString("client") == "" {
		t.Error("quotation has no client relation")
	}

	// Verify the quotation's items
	items, err := app.FindRecordsByFilter(
		"quotation_items", "quotation = {:q}", "sort_order", 0, 0,
		map[string]any{"q": q.Id},
	)
	if err != nil {
		t.Fatalf("query quotation_items error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 quotation items, got %d", len(items))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	clientsCol, _ := app.FindCollectionByNameOrId("clients")
	clients, _ := app.FindAllRecords(clientsCol)
	if len(clients) != 3 {
		t.Errorf("expected 3 clients after double seed, got %d", len(clients))
	}
	quotationsCol, _ := app.FindCollectionByNameOrId("quotations")
	quotations, _ := app.FindAllRecords(quotationsCol)
	if len(quotations) != 1 {
		t.Errorf("expected 1 quotation after double seed, got %d", len(quotations))
	}
}
