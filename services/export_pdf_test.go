package services

import (
	"bytes"
	"testing"
)

func renderPrintFor(t *testing.T, q Quotation, variant TemplateVariant) []byte {
	t.Helper()
	plan, totals, err := BuildPlan(q, testCompany(), testClient(), variant)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	data, err := RenderPrint(plan, totals)
	if err != nil {
		t.Fatalf("RenderPrint() error = %v", err)
	}
	return data
}

func TestRenderPrint_ProducesPDF(t *testing.T) {
	q := testQuotation([]LineItem{item("2", "8500"), item("1", "2500")})
	q.Discount = percentDiscount("10")
	q.Notes = "Precios válidos por 15 días."

	data := renderPrintFor(t, q, StandardVariant())
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF, got %q", data[:min(8, len(data))])
	}
}

func TestRenderPrint_AllVariants(t *testing.T) {
	a := item("2", "8500")
	a.Group = "Equipos"
	b := item("1", "2500")
	b.Group = "Servicios"
	q := testQuotation([]LineItem{a, b})

	for _, variant := range []TemplateVariant{CompactVariant(), StandardVariant(), ProFormaVariant()} {
		t.Run(variant.Name, func(t *testing.T) {
			data := renderPrintFor(t, q, variant)
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Fatalf("variant %q did not produce a PDF", variant.Name)
			}
		})
	}
}

func TestRenderPrint_MissingLogoIsNotFatal(t *testing.T) {
	q := testQuotation([]LineItem{item("1", "100")})
	company := testCompany()
	company.LogoPath = "/nonexistent/logo.png"

	plan, totals, err := BuildPlan(q, company, testClient(), CompactVariant())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if _, err := RenderPrint(plan, totals); err != nil {
		t.Fatalf("RenderPrint() with missing logo error = %v", err)
	}
}

func TestRenderPrint_EmptyQuotation(t *testing.T) {
	data := renderPrintFor(t, testQuotation(nil), CompactVariant())
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("empty quotation did not produce a PDF")
	}
}
