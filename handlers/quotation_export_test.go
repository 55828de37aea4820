package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotationdesk/testhelpers"

	"github.com/xuri/excelize/v2"
)

func exportRequest(t *testing.T, path, quotationID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.SetPathValue("id", quotationID)
	return req
}

func TestHandleQuotationExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Cotiz AC")
	client := testhelpers.CreateTestClient(t, app, "Cliente Export")
	quotation := testhelpers.CreateTestQuotation(t, app, client.Id, "COT-00007")
	testhelpers.CreateTestItem(t, app, quotation.Id, 1, "AC Split", 2, 8500)
	handler := HandleQuotationExportExcel(app)

	rec := httptest.NewRecorder()
	req := exportRequest(t, "/api/quotationdesk/quotations/"+quotation.Id+"/export/excel", quotation.Id)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "COT-00007.xlsx") {
		t.Errorf("Content-Disposition = %q, want filename COT-00007.xlsx", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response body is not a workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList()[0]; got != "Cotización" {
		t.Errorf("sheet = %q, want Cotización", got)
	}
}

func TestHandleQuotationExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Cotiz AC")
	client := testhelpers.CreateTestClient(t, app, "Cliente PDF")
	quotation := testhelpers.CreateTestQuotation(t, app, client.Id, "COT-00008")
	testhelpers.CreateTestItem(t, app, quotation.Id, 1, "Instalación", 1, 2500)
	handler := HandleQuotationExportPDF(app)

	rec := httptest.NewRecorder()
	req := exportRequest(t, "/api/quotationdesk/quotations/"+quotation.Id+"/export/pdf", quotation.Id)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF")
	}
}

func TestHandleQuotationExport_VariantSelection(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Cotiz AC")
	client := testhelpers.CreateTestClient(t, app, "Cliente Variante")
	quotation := testhelpers.CreateTestQuotation(t, app, client.Id, "COT-00009")
	testhelpers.CreateTestItem(t, app, quotation.Id, 1, "Mantenimiento", 1, 800)
	handler := HandleQuotationExportExcel(app)

	t.Run("proforma", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := exportRequest(t, "/api/quotationdesk/quotations/"+quotation.Id+"/export/excel?variant=proforma", quotation.Id)
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("response body is not a workbook: %v", err)
		}
		defer f.Close()
		if got := f.GetSheetList()[0]; got != "Pro-Forma" {
			t.Errorf("sheet = %q, want Pro-Forma", got)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := exportRequest(t, "/api/quotationdesk/quotations/"+quotation.Id+"/export/excel?variant=fancy", quotation.Id)
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown variant, got %d", rec.Code)
		}
	})
}

func TestHandleQuotationExport_UnknownQuotation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationExportExcel(app)

	rec := httptest.NewRecorder()
	req := exportRequest(t, "/api/quotationdesk/quotations/missing/export/excel", "missing")
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuotationExport_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationExportPDF(app)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quotationdesk/quotations//export/pdf", nil)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
