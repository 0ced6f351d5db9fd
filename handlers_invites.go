package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

// inviteCodeRetries bounds how many times invite creation retries a
// fresh code after a unique-index collision.
const inviteCodeRetries = 5

type inviteInput struct {
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	MaxPartySize  int    `json:"max_party_size"`
	CustomMessage string `json:"custom_message"`
	ExpiresAt     string `json:"expires_at"`
}

func findInviteByCode(app *pocketbase.PocketBase, code string) (*core.Record, error) {
	return app.FindFirstRecordByFilter(
		utils.CollectionCustomInvites,
		"invite_code = {:code}",
		map[string]any{"code": code},
	)
}

func inviteResponse(record *core.Record, origin string) map[string]any {
	code := record.GetString("invite_code")
	out := map[string]any{
		"id":             record.Id,
		"invite_code":    code,
		"guest_name":     record.GetString("guest_name"),
		"guest_email":    record.GetString("guest_email"),
		"max_party_size": record.GetInt("max_party_size"),
		"custom_message": record.GetString("custom_message"),
		"is_active":      record.GetBool("is_active"),
		"created":        record.GetString("created"),
	}
	if expires := record.GetDateTime("expires_at"); !expires.IsZero() {
		out["expires_at"] = expires.Time().Format(time.RFC3339)
	}
	if origin != "" {
		out["invite_url"] = buildInviteURL(origin, code)
	}
	return out
}

// handleAdminCreateInvite issues a personal invite with a generated
// short code. The code is random, so a collision with an existing row
// is possible but rare; the unique index catches it and we retry with
// a new code.
func handleAdminCreateInvite(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input inviteInput
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		input.GuestName = strings.TrimSpace(input.GuestName)
		input.GuestEmail = utils.NormalizeEmail(input.GuestEmail)
		if input.GuestName == "" {
			return utils.BadRequestResponse(re, "Guest name is required")
		}
		if input.GuestEmail != "" && !utils.IsValidEmail(input.GuestEmail) {
			return utils.BadRequestResponse(re, "Invalid guest email")
		}
		if input.MaxPartySize < 0 || input.MaxPartySize > utils.MaxPartySize {
			return utils.BadRequestResponse(re, "Invalid max party size")
		}
		if input.MaxPartySize == 0 {
			input.MaxPartySize = utils.MinPartySize
		}

		var expiresAt time.Time
		if input.ExpiresAt != "" {
			parsed, err := utils.ParseExpiryDate(input.ExpiresAt)
			if err != nil {
				return utils.BadRequestResponse(re, "Invalid expiry date format")
			}
			expiresAt = parsed
		}

		collection, err := app.FindCollectionByNameOrId(utils.CollectionCustomInvites)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to create invite")
		}

		var record *core.Record
		for attempt := 0; attempt < inviteCodeRetries; attempt++ {
			candidate := core.NewRecord(collection)
			candidate.Set("invite_code", generateInviteCode())
			candidate.Set("guest_name", input.GuestName)
			candidate.Set("guest_email", input.GuestEmail)
			candidate.Set("max_party_size", input.MaxPartySize)
			candidate.Set("custom_message", input.CustomMessage)
			candidate.Set("is_active", true)
			if !expiresAt.IsZero() {
				candidate.Set("expires_at", expiresAt)
			}

			if err = app.Save(candidate); err == nil {
				record = candidate
				break
			}
			log.Printf("[Invites] code collision or save failure (attempt %d): %v", attempt+1, err)
		}
		if record == nil {
			return utils.InternalErrorResponse(re, "Failed to create invite")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "invite_create",
			ResourceType: utils.CollectionCustomInvites,
			ResourceID:   record.GetString("invite_code"),
		})

		return utils.DataResponse(re, http.StatusCreated, inviteResponse(record, getBaseURL()))
	}
}

func handleAdminListInvites(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			utils.CollectionCustomInvites,
			"id != ''",
			"-created",
			0,
			0,
		)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load invites")
		}

		origin := getBaseURL()
		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, inviteResponse(r, origin))
		}

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}

// handleAdminToggleInvite flips is_active. Deactivated invites stay in
// the list so they can be reactivated later.
func handleAdminToggleInvite(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionCustomInvites, id)
		if err != nil {
			return utils.NotFoundResponse(re, "Invite not found")
		}

		record.Set("is_active", !record.GetBool("is_active"))
		if err := app.Save(record); err != nil {
			log.Printf("[Invites] failed to toggle %s: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to update invite")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "invite_toggle",
			ResourceType: utils.CollectionCustomInvites,
			ResourceID:   record.GetString("invite_code"),
		})

		return utils.DataResponse(re, http.StatusOK, inviteResponse(record, getBaseURL()))
	}
}

func handleAdminDeleteInvite(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionCustomInvites, id)
		if err != nil {
			return utils.NotFoundResponse(re, "Invite not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("[Invites] failed to delete %s: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to delete invite")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "invite_delete",
			ResourceType: utils.CollectionCustomInvites,
			ResourceID:   record.GetString("invite_code"),
		})

		return utils.SuccessResponse(re, "Invite deleted")
	}
}

// handleAdminSendInvite emails the invite link to the guest on record.
func handleAdminSendInvite(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		record, err := app.FindRecordById(utils.CollectionCustomInvites, id)
		if err != nil {
			return utils.NotFoundResponse(re, "Invite not found")
		}
		if record.GetString("guest_email") == "" {
			return utils.BadRequestResponse(re, "Invite has no guest email")
		}
		if !record.GetBool("is_active") {
			return utils.BadRequestResponse(re, "Invite is not active")
		}

		if err := sendInviteEmail(app, record); err != nil {
			return utils.InternalErrorResponse(re, "Failed to send invite email")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "invite_send",
			ResourceType: utils.CollectionCustomInvites,
			ResourceID:   record.GetString("invite_code"),
		})

		return utils.SuccessResponse(re, "Invite email sent")
	}
}

// handlePublicInviteLookup resolves an invite code for the RSVP page.
// Unknown codes return 404; inactive or expired ones return 410 so the
// page can show a distinct message.
func handlePublicInviteLookup(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		code := strings.ToUpper(strings.TrimSpace(re.Request.PathValue("code")))
		if code == "" {
			return utils.BadRequestResponse(re, "Missing invite code")
		}

		record, err := findInviteByCode(app, code)
		if err != nil {
			return utils.NotFoundResponse(re, "Invite not found")
		}
		if !record.GetBool("is_active") {
			return utils.GoneResponse(re, "This invite is no longer active")
		}
		if expires := record.GetDateTime("expires_at"); !expires.IsZero() && expires.Time().Before(time.Now()) {
			return utils.GoneResponse(re, "This invite has expired")
		}

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"invite_code":    code,
			"guest_name":     record.GetString("guest_name"),
			"max_party_size": record.GetInt("max_party_size"),
			"custom_message": record.GetString("custom_message"),
		})
	}
}
