package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// buildExportPlan loads a quotation and assembles its document plan for the
// requested layout variant (standard when the ?variant= parameter is
// absent).
func buildExportPlan(app *pocketbase.PocketBase, e *core.RequestEvent) (*services.DocumentPlan, services.Totals, error) {
	quotationID := e.Request.PathValue("id")
	if quotationID == "" {
		return nil, services.Totals{}, &services.ValidationError{Field: "id", Reason: "missing quotation id"}
	}

	variant, err := services.VariantByName(e.Request.URL.Query().Get("variant"))
	if err != nil {
		return nil, services.Totals{}, err
	}

	q, company, client, err := services.BuildQuotationData(app, quotationID)
	if err != nil {
		return nil, services.Totals{}, err
	}

	return services.BuildPlan(q, company, client, variant)
}

// HandleQuotationExportExcel returns a handler that generates and downloads
// the spreadsheet rendition of a quotation.
func HandleQuotationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		plan, totals, err := buildExportPlan(app, e)
		if err != nil {
			if services.IsValidationError(err) {
				return apiError(e, err)
			}
			log.Printf("export_excel: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		xlsxBytes, err := services.RenderSpreadsheet(plan, totals)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate spreadsheet"})
		}

		filename := fmt.Sprintf("%s.xlsx", sanitizeFilename(plan.Number))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleQuotationExportPDF returns a handler that generates and downloads
// the print rendition of a quotation.
func HandleQuotationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		plan, totals, err := buildExportPlan(app, e)
		if err != nil {
			if services.IsValidationError(err) {
				return apiError(e, err)
			}
			log.Printf("export_pdf: %v", err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}

		pdfBytes, err := services.RenderPrint(plan, totals)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate document"})
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(plan.Number))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}
