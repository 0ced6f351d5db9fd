package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

type guestbookInput struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func handlePublicGuestbookList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			utils.CollectionGuestbookMessages,
			"id != ''",
			"-created",
			0,
			0,
		)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load guestbook")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, map[string]any{
				"id":      r.Id,
				"name":    r.GetString("name"),
				"message": r.GetString("message"),
				"created": r.GetString("created"),
			})
		}

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}

// handlePublicGuestbookPost accepts a signed message from any visitor.
// Submission is rate limited at the route level.
func handlePublicGuestbookPost(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input guestbookInput
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Message = strings.TrimSpace(input.Message)
		if input.Name == "" {
			return utils.BadRequestResponse(re, "Name is required")
		}
		if len(input.Name) > utils.MaxNameLength {
			return utils.BadRequestResponse(re, "Name is too long")
		}
		if input.Message == "" {
			return utils.BadRequestResponse(re, "Message is required")
		}
		if len(input.Message) > utils.MaxGuestbookLength {
			return utils.BadRequestResponse(re, "Message is too long")
		}

		collection, err := app.FindCollectionByNameOrId(utils.CollectionGuestbookMessages)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to save message")
		}

		record := core.NewRecord(collection)
		record.Set("name", input.Name)
		record.Set("message", input.Message)

		if err := app.Save(record); err != nil {
			log.Printf("[Guestbook] failed to save message: %v", err)
			return utils.InternalErrorResponse(re, "Failed to save message")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "guestbook_post",
			ResourceType: utils.CollectionGuestbookMessages,
			ResourceID:   input.Name,
		})

		return utils.DataResponse(re, http.StatusCreated, map[string]any{
			"id": record.Id,
		})
	}
}

func handleAdminDeleteGuestbookMessage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionGuestbookMessages, id)
		if err != nil {
			return utils.NotFoundResponse(re, "Message not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("[Guestbook] failed to delete %s: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to delete message")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "guestbook_delete",
			ResourceType: utils.CollectionGuestbookMessages,
			ResourceID:   id,
		})

		return utils.SuccessResponse(re, "Message deleted")
	}
}
