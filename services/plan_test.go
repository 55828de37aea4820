package services

import (
	"testing"
	"time"
)

func testCompany() CompanyProfile {
	return CompanyProfile{
		Name:    "Cotiz AC - Servicios de Climatización",
		Address: "Av. Principal #123",
		Phone:   "(555) 123-4567",
		Email:   "contacto@cotizac.com",
	}
}

func testClient() Client {
	return Client{Name: "Juan Pérez", Phone: "555-1111", Email: "juan@test.com"}
}

func testQuotation(items []LineItem) Quotation {
	return Quotation{
		Number:         "COT-00042",
		Date:           time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Items:          items,
		Discount:       fixedDiscount("0"),
		TaxRatePercent: dec("16"),
		Shipping:       dec("0"),
		Status:         StatusDraft,
	}
}

func TestBuildPlan_PadsToMinimumRows(t *testing.T) {
	q := testQuotation([]LineItem{item("1", "100"), item("2", "50")})

	plan, _, err := BuildPlan(q, testCompany(), testClient(), StandardVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(plan.Table.Rows) != 10 {
		t.Fatalf("row count = %d, want 10", len(plan.Table.Rows))
	}
	fillers := 0
	for _, r := range plan.Table.Rows {
		if r.Kind == RowFiller {
			fillers++
		}
	}
	if fillers != 8 {
		t.Errorf("filler count = %d, want 8", fillers)
	}

	if plan.Table.HeaderRow != 10 {
		t.Errorf("HeaderRow = %d, want 10", plan.Table.HeaderRow)
	}
	if plan.Table.FirstRow != 11 || plan.Table.LastRow != 20 {
		t.Errorf("row span = %d..%d, want 11..20", plan.Table.FirstRow, plan.Table.LastRow)
	}
}

func TestBuildPlan_NoPaddingAboveMinimum(t *testing.T) {
	items := make([]LineItem, 7)
	for i := range items {
		items[i] = item("1", "10")
	}
	plan, _, err := BuildPlan(testQuotation(items), testCompany(), testClient(), CompactVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if len(plan.Table.Rows) != 7 {
		t.Errorf("row count = %d, want 7 (no padding above the minimum)", len(plan.Table.Rows))
	}
}

func TestBuildPlan_GroupSeparators(t *testing.T) {
	a1 := item("1", "10")
	a1.Group = "Equipos"
	a2 := item("1", "20")
	a2.Group = "Equipos"
	b := item("1", "30")
	b.Group = "Servicios"

	plan, _, err := BuildPlan(testQuotation([]LineItem{a1, a2, b}), testCompany(), testClient(), ProFormaVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	wantKinds := []RowKind{RowGroupSeparator, RowItem, RowItem, RowGroupSeparator, RowItem}
	for i, want := range wantKinds {
		if plan.Table.Rows[i].Kind != want {
			t.Errorf("row %d kind = %v, want %v", i, plan.Table.Rows[i].Kind, want)
		}
	}
	if plan.Table.Rows[0].Group != "Equipos" || plan.Table.Rows[3].Group != "Servicios" {
		t.Errorf("separator labels = %q, %q", plan.Table.Rows[0].Group, plan.Table.Rows[3].Group)
	}

	// 2 separators + 3 items padded to the 25-row minimum
	if len(plan.Table.Rows) != 25 {
		t.Errorf("row count = %d, want 25", len(plan.Table.Rows))
	}
	if plan.Table.LastRow != 35 {
		t.Errorf("LastRow = %d, want 35", plan.Table.LastRow)
	}
}

func TestBuildPlan_SeparatorReappearsAfterUngroupedItem(t *testing.T) {
	a1 := item("1", "10")
	a1.Group = "Equipos"
	loose := item("1", "20")
	a2 := item("1", "30")
	a2.Group = "Equipos"

	plan, _, err := BuildPlan(testQuotation([]LineItem{a1, loose, a2}), testCompany(), testClient(), ProFormaVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	separators := 0
	for _, r := range plan.Table.Rows {
		if r.Kind == RowGroupSeparator {
			separators++
		}
	}
	if separators != 2 {
		t.Errorf("separator count = %d, want 2 (label resumes after ungrouped item)", separators)
	}
}

func TestBuildPlan_NoSeparatorsWithoutShowGroups(t *testing.T) {
	a := item("1", "10")
	a.Group = "Equipos"
	plan, _, err := BuildPlan(testQuotation([]LineItem{a}), testCompany(), testClient(), StandardVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	for _, r := range plan.Table.Rows {
		if r.Kind == RowGroupSeparator {
			t.Fatal("standard variant must not emit group separators")
		}
	}
}

func TestBuildPlan_ItemsKeepStoredOrder(t *testing.T) {
	first := item("1", "10")
	first.Description = "zzz last alphabetically"
	second := item("1", "20")
	second.Description = "aaa first alphabetically"

	plan, _, err := BuildPlan(testQuotation([]LineItem{first, second}), testCompany(), testClient(), CompactVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	var got []string
	for _, r := range plan.Table.Rows {
		if r.Kind == RowItem {
			got = append(got, r.Item.Description)
		}
	}
	if len(got) != 2 || got[0] != first.Description || got[1] != second.Description {
		t.Errorf("item order = %v, stored order must be preserved", got)
	}
}

func TestBuildPlan_TotalLines(t *testing.T) {
	t.Run("compact hides zero discount and shipping", func(t *testing.T) {
		plan, _, err := BuildPlan(testQuotation([]LineItem{item("1", "100")}), testCompany(), testClient(), CompactVariant())
		if err != nil {
			t.Fatalf("BuildPlan() error = %v", err)
		}
		wantKinds := []TotalKind{TotalSubtotal, TotalTax, TotalGrand}
		if len(plan.TotalLines) != len(wantKinds) {
			t.Fatalf("totals line count = %d, want %d", len(plan.TotalLines), len(wantKinds))
		}
		for i, want := range wantKinds {
			if plan.TotalLines[i].Kind != want {
				t.Errorf("totals line %d kind = %v, want %v", i, plan.TotalLines[i].Kind, want)
			}
		}
	})

	t.Run("compact shows nonzero discount", func(t *testing.T) {
		q := testQuotation([]LineItem{item("1", "100")})
		q.Discount = percentDiscount("10")
		plan, _, err := BuildPlan(q, testCompany(), testClient(), CompactVariant())
		if err != nil {
			t.Fatalf("BuildPlan() error = %v", err)
		}
		kinds := map[TotalKind]bool{}
		for _, l := range plan.TotalLines {
			kinds[l.Kind] = true
		}
		if !kinds[TotalDiscount] || !kinds[TotalTaxableBase] {
			t.Error("nonzero discount must always produce discount and base lines")
		}
	})

	t.Run("standard always carries discount and shipping", func(t *testing.T) {
		plan, _, err := BuildPlan(testQuotation([]LineItem{item("1", "100")}), testCompany(), testClient(), StandardVariant())
		if err != nil {
			t.Fatalf("BuildPlan() error = %v", err)
		}
		wantKinds := []TotalKind{TotalSubtotal, TotalDiscount, TotalTaxableBase, TotalTax, TotalShipping, TotalGrand}
		if len(plan.TotalLines) != len(wantKinds) {
			t.Fatalf("totals line count = %d, want %d", len(plan.TotalLines), len(wantKinds))
		}
		for i, want := range wantKinds {
			if plan.TotalLines[i].Kind != want {
				t.Errorf("totals line %d kind = %v, want %v", i, plan.TotalLines[i].Kind, want)
			}
		}
	})
}

func TestBuildPlan_RejectsInvalidInput(t *testing.T) {
	_, _, err := BuildPlan(testQuotation([]LineItem{item("-1", "100")}), testCompany(), testClient(), StandardVariant())
	if err == nil {
		t.Fatal("expected error for negative quantity, got nil")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestDocumentPlanContactLine(t *testing.T) {
	plan := &DocumentPlan{Company: CompanyProfile{
		Name:  "Test",
		Phone: "555-0000",
		TaxID: "AAP123456789",
	}}
	got := plan.contactLine()
	want := "Tel: 555-0000 | RFC: AAP123456789"
	if got != want {
		t.Errorf("contactLine() = %q, want %q", got, want)
	}
}

func TestFooterText(t *testing.T) {
	if got := footerText(CompanyProfile{Name: "Cotiz AC"}); got != "Cotiz AC | Quedo a sus órdenes" {
		t.Errorf("footerText() = %q", got)
	}
	if got := footerText(CompanyProfile{}); got != "Quedo a sus órdenes" {
		t.Errorf("footerText() with empty company = %q", got)
	}
}
