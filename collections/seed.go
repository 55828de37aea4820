package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"quotationdesk/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type clientDef struct {
	name    string
	phone   string
	email   string
	address string
}

type itemDef struct {
	sortOrder   int
	group       string
	qty         float64
	unit        string
	description string
	unitPrice   float64
}

type quotationDef struct {
	clientIdx    int // index into the seeded clients
	status       string
	discountType string
	discountVal  float64
	taxRate      float64
	shipping     float64
	notes        string
	items        []itemDef
}

// Seed populates the collections with an issuing company, sample clients
// and one sent quotation. It is safe to call on every startup because it
// returns early if a company profile already exists.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if a company profile already exists ────────
	companyCol, err := app.FindCollectionByNameOrId("company_profile")
	if err != nil {
		return fmt.Errorf("seed: could not find company_profile collection: %w", err)
	}
	existing, err := app.FindAllRecords(companyCol)
	if err != nil {
		return fmt.Errorf("seed: could not query company_profile: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: company_profile is empty – inserting seed data …")

	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: could not find clients collection: %w", err)
	}
	quotationsCol, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("seed: could not find quotations collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quotation_items collection: %w", err)
	}

	// ── company profile ──────────────────────────────────────────────
	company := core.NewRecord(companyCol)
	company.Set("name", "Cotiz AC - Servicios de Climatización")
	company.Set("address", "Av. Principal #123, Col. Centro, Ciudad")
	company.Set("phone", "(555) 123-4567")
	company.Set("email", "contacto@cotizac.com")
	company.Set("social_links", "Facebook: @CotizAC | Instagram: @cotizac_oficial")
	company.Set("tax_id", "AAP123456789")
	if err := app.Save(company); err != nil {
		return fmt.Errorf("seed: save company profile: %w", err)
	}

	// ── clients ──────────────────────────────────────────────────────
	clientDefs := []clientDef{
		{
			name: "Juan Pérez González", phone: "555-1111",
			email: "juan.perez@email.com", address: "Calle Reforma 456, Col. Juárez",
		},
		{
			name: "María López Hernández", phone: "555-2222",
			email: "maria.lopez@email.com", address: "Av. Insurgentes 789, Col. Roma",
		},
		{
			name: "Empresa Construcciones XYZ S.A.", phone: "555-3333",
			email: "contacto@construccionesxyz.com", address: "Boulevard Industrial 321, Parque Industrial",
		},
	}
	clientIDs := make([]string, 0, len(clientDefs))
	for _, d := range clientDefs {
		r := core.NewRecord(clientsCol)
		r.Set("name", d.name)
		r.Set("phone", d.phone)
		r.Set("email", d.email)
		r.Set("address", d.address)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save client %q: %w", d.name, err)
		}
		clientIDs = append(clientIDs, r.Id)
	}

	// ── helper: create quotation with items and denormalized totals ──
	createQuotation := func(d quotationDef) error {
		number, err := NextQuotationNumber(app)
		if err != nil {
			return fmt.Errorf("seed: allocate number: %w", err)
		}

		items := make([]services.LineItem, 0, len(d.items))
		for _, it := range d.items {
			items = append(items, services.LineItem{
				Group:       it.group,
				Qty:         decimal.NewFromFloat(it.qty),
				Unit:        it.unit,
				Description: it.description,
				UnitPrice:   decimal.NewFromFloat(it.unitPrice),
			})
		}
		totals, err := services.ComputeTotals(items, services.Discount{
			Type:  services.DiscountType(d.discountType),
			Value: decimal.NewFromFloat(d.discountVal),
		}, decimal.NewFromFloat(d.taxRate), decimal.NewFromFloat(d.shipping))
		if err != nil {
			return fmt.Errorf("seed: totals for %s: %w", number, err)
		}

		r := core.NewRecord(quotationsCol)
		r.Set("number", number)
		r.Set("client", clientIDs[d.clientIdx])
		r.Set("date", time.Now().Format("2006-01-02"))
		r.Set("discount_type", d.discountType)
		r.Set("discount_value", d.discountVal)
		r.Set("tax_rate", d.taxRate)
		r.Set("shipping", d.shipping)
		r.Set("status", d.status)
		r.Set("payment_status", string(services.PaymentPending))
		r.Set("notes", d.notes)
		r.Set("subtotal", totals.Subtotal.InexactFloat64())
		r.Set("discount_amount", totals.DiscountAmount.InexactFloat64())
		r.Set("tax_amount", totals.TaxAmount.InexactFloat64())
		r.Set("total", totals.Total.InexactFloat64())
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save quotation %s: %w", number, err)
		}

		for _, it := range d.items {
			ir := core.NewRecord(itemsCol)
			ir.Set("quotation", r.Id)
			ir.Set("sort_order", it.sortOrder)
			ir.Set("group", it.group)
			ir.Set("qty", it.qty)
			ir.Set("unit", it.unit)
			ir.Set("description", it.description)
			ir.Set("unit_price", it.unitPrice)
			if err := app.Save(ir); err != nil {
				return fmt.Errorf("seed: save item %q: %w", it.description, err)
			}
		}
		return nil
	}

	// ── sample quotation ─────────────────────────────────────────────
	if err := createQuotation(quotationDef{
		clientIdx:    0,
		status:       string(services.StatusSent),
		discountType: string(services.DiscountFixed),
		taxRate:      16,
		notes:        "Incluye instalación y garantía de 1 año. Tiempo de entrega: 3-5 días hábiles.",
		items: []itemDef{
			{sortOrder: 0, group: "Equipos", qty: 2, unit: "pza", description: "Aire Acondicionado Split 12,000 BTU Inverter - Marca Premium", unitPrice: 8500},
			{sortOrder: 1, group: "Servicios", qty: 2, unit: "srv", description: "Instalación completa de equipo incluye: tubería, cableado, soportes y mano de obra", unitPrice: 2500},
			{sortOrder: 2, group: "Servicios", qty: 1, unit: "srv", description: "Mantenimiento preventivo (cortesía por compra)", unitPrice: 0},
		},
	}); err != nil {
		return err
	}

	log.Println("seed: all seed data inserted successfully (1 company, 3 clients, 1 quotation)")
	return nil
}
