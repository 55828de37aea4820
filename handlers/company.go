package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type companyPayload struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	SocialLinks string `json:"social_links"`
	TaxID       string `json:"tax_id"`
	LogoPath    string `json:"logo_path"`
}

// HandleCompanyView returns a handler that serves the issuing company
// profile.
func HandleCompanyView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		company := services.LoadCompanyProfile(app)
		return e.JSON(http.StatusOK, companyPayload{
			Name:        company.Name,
			Address:     company.Address,
			Phone:       company.Phone,
			Email:       company.Email,
			SocialLinks: company.SocialLinks,
			TaxID:       company.TaxID,
			LogoPath:    company.LogoPath,
		})
	}
}

// HandleCompanySave returns a handler that creates or updates the single
// company profile record.
func HandleCompanySave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload companyPayload
		if err := e.BindBody(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		if payload.Name == "" {
			return apiError(e, &services.ValidationError{Field: "name", Reason: "must not be empty"})
		}

		records, err := app.FindRecordsByFilter("company_profile", "id != ''", "-created", 1, 0)
		var rec *core.Record
		if err == nil && len(records) > 0 {
			rec = records[0]
		} else {
			col, err := app.FindCollectionByNameOrId("company_profile")
			if err != nil {
				log.Printf("company_save: collection missing: %v", err)
				return apiError(e, err)
			}
			rec = core.NewRecord(col)
		}

		rec.Set("name", payload.Name)
		rec.Set("address", payload.Address)
		rec.Set("phone", payload.Phone)
		rec.Set("email", payload.Email)
		rec.Set("social_links", payload.SocialLinks)
		rec.Set("tax_id", payload.TaxID)
		rec.Set("logo_path", payload.LogoPath)
		if err := app.Save(rec); err != nil {
			log.Printf("company_save: could not save profile: %v", err)
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, map[string]string{"id": rec.Id})
	}
}
