package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

type faqInput struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	IsEnabled *bool  `json:"is_enabled"`
}

func loadFAQs(app *pocketbase.PocketBase, enabledOnly bool) ([]FAQ, error) {
	filter := "id != ''"
	if enabledOnly {
		filter = "is_enabled = true"
	}
	records, err := app.FindRecordsByFilter(
		utils.CollectionFAQs,
		filter,
		"sort_order",
		0,
		0,
	)
	if err != nil {
		return nil, err
	}
	faqs := make([]FAQ, 0, len(records))
	for _, r := range records {
		faqs = append(faqs, faqFromRecord(r))
	}
	return faqs, nil
}

// handlePublicFAQs serves enabled questions in display order.
func handlePublicFAQs(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		faqs, err := loadFAQs(app, true)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load FAQs")
		}
		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": faqs,
		})
	}
}

func handleAdminListFAQs(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		faqs, err := loadFAQs(app, false)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load FAQs")
		}
		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": faqs,
		})
	}
}

// handleAdminCreateFAQ appends a question at the end of the current
// order.
func handleAdminCreateFAQ(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input faqInput
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}
		input.Question = strings.TrimSpace(input.Question)
		input.Answer = strings.TrimSpace(input.Answer)
		if input.Question == "" {
			return utils.BadRequestResponse(re, "Question is required")
		}
		if input.Answer == "" {
			return utils.BadRequestResponse(re, "Answer is required")
		}

		existing, err := loadFAQs(app, false)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load FAQs")
		}

		collection, err := app.FindCollectionByNameOrId(utils.CollectionFAQs)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to create FAQ")
		}

		record := core.NewRecord(collection)
		record.Set("question", input.Question)
		record.Set("answer", input.Answer)
		record.Set("sort_order", len(existing))
		enabled := true
		if input.IsEnabled != nil {
			enabled = *input.IsEnabled
		}
		record.Set("is_enabled", enabled)

		if err := app.Save(record); err != nil {
			log.Printf("[FAQ] failed to create: %v", err)
			return utils.InternalErrorResponse(re, "Failed to create FAQ")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "faq_create",
			ResourceType: utils.CollectionFAQs,
			ResourceID:   record.Id,
		})

		return utils.DataResponse(re, http.StatusCreated, faqFromRecord(record))
	}
}

func handleAdminUpdateFAQ(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionFAQs, id)
		if err != nil {
			return utils.NotFoundResponse(re, "FAQ not found")
		}

		var input faqInput
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		if q := strings.TrimSpace(input.Question); q != "" {
			record.Set("question", q)
		}
		if a := strings.TrimSpace(input.Answer); a != "" {
			record.Set("answer", a)
		}
		if input.IsEnabled != nil {
			record.Set("is_enabled", *input.IsEnabled)
		}

		if err := app.Save(record); err != nil {
			log.Printf("[FAQ] failed to update %s: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to update FAQ")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "faq_update",
			ResourceType: utils.CollectionFAQs,
			ResourceID:   id,
		})

		return utils.DataResponse(re, http.StatusOK, faqFromRecord(record))
	}
}

func handleAdminDeleteFAQ(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionFAQs, id)
		if err != nil {
			return utils.NotFoundResponse(re, "FAQ not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("[FAQ] failed to delete %s: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to delete FAQ")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "faq_delete",
			ResourceType: utils.CollectionFAQs,
			ResourceID:   id,
		})

		return utils.SuccessResponse(re, "FAQ deleted")
	}
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// handleAdminReorderFAQs takes the full id list in the desired order,
// reassigns positions by index, and writes each item back individually.
func handleAdminReorderFAQs(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input reorderRequest
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}
		if len(input.IDs) == 0 {
			return utils.BadRequestResponse(re, "Ordered id list is required")
		}

		existing, err := loadFAQs(app, false)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load FAQs")
		}
		byID := make(map[string]FAQ, len(existing))
		for _, f := range existing {
			byID[f.ID] = f
		}

		seen := make(map[string]bool, len(input.IDs))
		ordered := make([]FAQ, 0, len(input.IDs))
		for _, id := range input.IDs {
			f, ok := byID[id]
			if !ok {
				return utils.BadRequestResponse(re, "Unknown FAQ id: "+id)
			}
			if seen[id] {
				return utils.BadRequestResponse(re, "Duplicate FAQ id: "+id)
			}
			seen[id] = true
			ordered = append(ordered, f)
		}
		if len(ordered) != len(existing) {
			return utils.BadRequestResponse(re, "Ordered id list must include every FAQ exactly once")
		}

		reordered := assignPositions(ordered)
		if err := persistOrder(re.Request.Context(), &pbFAQStore{app}, reordered); err != nil {
			return utils.InternalErrorResponse(re, "Failed to save FAQ order")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "faq_reorder",
			ResourceType: utils.CollectionFAQs,
		})

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": reordered,
		})
	}
}
