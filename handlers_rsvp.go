package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

type rsvpSubmission struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	AttendanceStatus    string `json:"attendance_status"`
	PartySize           int    `json:"party_size"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	InviteCode          string `json:"invite_code"`
}

// handlePublicRSVPSubmit accepts an RSVP from the public site. When an
// invite code accompanies the submission it must reference an active,
// unexpired invite and the party size may not exceed the invite's cap.
func handlePublicRSVPSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input rsvpSubmission
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Email = utils.NormalizeEmail(input.Email)
		input.InviteCode = strings.ToUpper(strings.TrimSpace(input.InviteCode))

		if input.Name == "" {
			return utils.BadRequestResponse(re, "Name is required")
		}
		if len(input.Name) > utils.MaxNameLength {
			return utils.BadRequestResponse(re, "Name is too long")
		}
		if input.Email == "" || !utils.IsValidEmail(input.Email) {
			return utils.BadRequestResponse(re, "A valid email is required")
		}
		switch input.AttendanceStatus {
		case utils.StatusAttending, utils.StatusNotAttending, "":
		default:
			return utils.BadRequestResponse(re, "Invalid attendance status")
		}
		if input.PartySize < utils.MinPartySize {
			input.PartySize = utils.MinPartySize
		}
		if input.PartySize > utils.MaxPartySize {
			return utils.BadRequestResponse(re, "Party size is too large")
		}
		if len(input.DietaryRestrictions) > utils.MaxDietaryLength {
			return utils.BadRequestResponse(re, "Dietary restrictions text is too long")
		}

		if input.InviteCode != "" {
			invite, err := findInviteByCode(app, input.InviteCode)
			if err != nil {
				return utils.NotFoundResponse(re, "Invite not found")
			}
			if !invite.GetBool("is_active") {
				return utils.GoneResponse(re, "This invite is no longer active")
			}
			if expires := invite.GetDateTime("expires_at"); !expires.IsZero() && expires.Time().Before(time.Now()) {
				return utils.GoneResponse(re, "This invite has expired")
			}
			if max := invite.GetInt("max_party_size"); max > 0 && input.PartySize > max {
				return utils.BadRequestResponse(re, "Party size exceeds the invite limit")
			}
		}

		collection, err := app.FindCollectionByNameOrId(utils.CollectionResponses)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to save RSVP")
		}

		record := core.NewRecord(collection)
		record.Set("name", input.Name)
		record.Set("email", input.Email)
		record.Set("attendance_status", input.AttendanceStatus)
		record.Set("party_size", input.PartySize)
		record.Set("dietary_restrictions", input.DietaryRestrictions)
		record.Set("invite_code", input.InviteCode)

		if err := app.Save(record); err != nil {
			log.Printf("[RSVP] failed to save submission from %s: %v", input.Email, err)
			return utils.InternalErrorResponse(re, "Failed to save RSVP")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "rsvp_submit",
			ResourceType: utils.CollectionResponses,
			ResourceID:   input.Email,
		})

		go sendRSVPConfirmation(app, record)

		return utils.DataResponse(re, http.StatusCreated, map[string]any{
			"id": record.Id,
		})
	}
}

// handleAdminListRSVPs refreshes the in-memory guest cache from the
// database and serves its contents.
func handleAdminListRSVPs(app *pocketbase.PocketBase, cache *GuestCache) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		responses, err := loadResponses(app)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load RSVP responses")
		}
		cache.Replace(responses)

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"items": responses,
			"total": len(responses),
		})
	}
}

// handleAdminUpdateRSVP applies an optimistic edit through the guest
// cache. On a persistence failure the cache is already rolled back, so
// the handler only has to report it.
func handleAdminUpdateRSVP(app *pocketbase.PocketBase, cache *GuestCache) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		if id == "" {
			return utils.BadRequestResponse(re, "Missing response id")
		}

		var input rsvpSubmission
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Email = utils.NormalizeEmail(input.Email)
		if input.Name == "" {
			return utils.BadRequestResponse(re, "Name is required")
		}
		if input.Email == "" || !utils.IsValidEmail(input.Email) {
			return utils.BadRequestResponse(re, "A valid email is required")
		}
		switch input.AttendanceStatus {
		case utils.StatusAttending, utils.StatusNotAttending, "":
		default:
			return utils.BadRequestResponse(re, "Invalid attendance status")
		}
		if input.PartySize < utils.MinPartySize {
			input.PartySize = utils.MinPartySize
		}

		if _, ok := cache.Get(id); !ok {
			// Cache may be stale after a restart; rebuild it once.
			responses, err := loadResponses(app)
			if err != nil {
				return utils.InternalErrorResponse(re, "Failed to load RSVP responses")
			}
			cache.Replace(responses)
		}

		current, ok := cache.Get(id)
		if !ok {
			return utils.NotFoundResponse(re, "RSVP response not found")
		}

		updated := current
		updated.Name = input.Name
		updated.Email = input.Email
		updated.AttendanceStatus = input.AttendanceStatus
		updated.PartySize = input.PartySize
		updated.DietaryRestrictions = input.DietaryRestrictions

		if err := cache.Edit(re.Request.Context(), updated); err != nil {
			log.Printf("[Guests] edit %s failed: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to update RSVP response. Please try again.")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "rsvp_update",
			ResourceType: utils.CollectionResponses,
			ResourceID:   id,
		})

		return utils.DataResponse(re, http.StatusOK, updated)
	}
}

func handleAdminDeleteRSVP(app *pocketbase.PocketBase, cache *GuestCache) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		id := re.Request.PathValue("id")
		if id == "" {
			return utils.BadRequestResponse(re, "Missing response id")
		}

		if _, ok := cache.Get(id); !ok {
			responses, err := loadResponses(app)
			if err != nil {
				return utils.InternalErrorResponse(re, "Failed to load RSVP responses")
			}
			cache.Replace(responses)
		}

		if err := cache.Delete(re.Request.Context(), id); err != nil {
			log.Printf("[Guests] delete %s failed: %v", id, err)
			return utils.InternalErrorResponse(re, "Failed to delete RSVP response. Please try again.")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "rsvp_delete",
			ResourceType: utils.CollectionResponses,
			ResourceID:   id,
		})

		return utils.SuccessResponse(re, "RSVP response deleted")
	}
}

// handleAdminStats folds the full response set into dashboard numbers.
func handleAdminStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		responses, err := loadResponses(app)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load RSVP responses")
		}

		stats := computeRSVPStats(responses)

		guestbookCount, err := app.CountRecords(utils.CollectionGuestbookMessages)
		if err != nil {
			guestbookCount = 0
		}
		inviteCount, err := app.CountRecords(utils.CollectionCustomInvites)
		if err != nil {
			inviteCount = 0
		}
		activeInvites, err := app.CountRecords(utils.CollectionCustomInvites,
			dbx.NewExp("is_active = {:active}", dbx.Params{"active": true}))
		if err != nil {
			activeInvites = 0
		}

		return utils.DataResponse(re, http.StatusOK, map[string]any{
			"rsvp":              stats,
			"responseRate":      stats.ResponseRate(),
			"attendanceRate":    stats.AttendanceRate(),
			"guestbookMessages": guestbookCount,
			"customInvites":     inviteCount,
			"activeInvites":     activeInvites,
		})
	}
}
