package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotationdesk/testhelpers"
)

func TestHandleQuotationList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	clientA := testhelpers.CreateTestClient(t, app, "Cliente A")
	clientB := testhelpers.CreateTestClient(t, app, "Cliente B")

	q1 := testhelpers.CreateTestQuotation(t, app, clientA.Id, "COT-00001")
	q2 := testhelpers.CreateTestQuotation(t, app, clientB.Id, "COT-00002")
	q2.Set("status", "Sent")
	if err := app.Save(q2); err != nil {
		t.Fatalf("could not mark quotation sent: %v", err)
	}
	_ = q1

	handler := HandleQuotationList(app)
	run := func(t *testing.T, target string) []struct {
		Number string `json:"number"`
		Status string `json:"status"`
	} {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp []struct {
			Number string `json:"number"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		return resp
	}

	t.Run("all", func(t *testing.T) {
		resp := run(t, "/api/quotationdesk/quotations")
		if len(resp) != 2 {
			t.Fatalf("expected 2 quotations, got %d", len(resp))
		}
		seen := map[string]bool{}
		for _, q := range resp {
			seen[q.Number] = true
		}
		if !seen["COT-00001"] || !seen["COT-00002"] {
			t.Errorf("listing missing quotations: %+v", resp)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		resp := run(t, "/api/quotationdesk/quotations?status=Sent")
		if len(resp) != 1 || resp[0].Number != "COT-00002" {
			t.Errorf("filtered result = %+v, want only COT-00002", resp)
		}
	})

	t.Run("client filter", func(t *testing.T) {
		resp := run(t, "/api/quotationdesk/quotations?client="+clientA.Id)
		if len(resp) != 1 || resp[0].Number != "COT-00001" {
			t.Errorf("filtered result = %+v, want only COT-00001", resp)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		resp := run(t, "/api/quotationdesk/quotations?status=Cancelled")
		if len(resp) != 0 {
			t.Errorf("expected empty list, got %d entries", len(resp))
		}
	})
}
