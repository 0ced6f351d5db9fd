package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/kygo/wedding-site/utils"
)

// settingsTextFields are the admin-editable scalar fields of the
// site_settings record. Unknown keys in a PATCH body are ignored.
var settingsTextFields = []string{
	"names",
	"subtitle",
	"wedding_date",
	"invitation_text",
	"location",
	"itinerary_content",
	"accommodation_content",
	"gift_registry_content",
	"itinerary_message",
	"accommodation_message",
	"gift_registry_message",
	"contact_phone",
	"contact_email",
	"selected_background",
}

var settingsBoolFields = []string{
	"show_countdown",
	"show_rsvp",
	"show_guest_book",
	"show_photo_gallery",
	"show_itinerary",
	"show_gift_registry",
	"show_accommodation",
	"show_contact",
	"show_background_image",
}

func findSettingsRecord(app *pocketbase.PocketBase) (*core.Record, error) {
	return app.FindFirstRecordByFilter(
		utils.CollectionSiteSettings,
		"key = {:key}",
		map[string]any{"key": utils.SettingsKey},
	)
}

func settingsResponse(record *core.Record) map[string]any {
	out := map[string]any{}
	for _, f := range settingsTextFields {
		out[f] = record.GetString(f)
	}
	for _, f := range settingsBoolFields {
		out[f] = record.GetBool(f)
	}

	var gallery, backgrounds []string
	record.UnmarshalJSONField("gallery_images", &gallery)
	record.UnmarshalJSONField("background_images", &backgrounds)
	if gallery == nil {
		gallery = []string{}
	}
	if backgrounds == nil {
		backgrounds = []string{}
	}
	out["gallery_images"] = gallery
	out["background_images"] = backgrounds
	return out
}

// handlePublicSettings serves the site configuration the public pages
// render from.
func handlePublicSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		record, err := findSettingsRecord(app)
		if err != nil {
			return utils.NotFoundResponse(re, "Site settings not found")
		}
		return utils.DataResponse(re, http.StatusOK, settingsResponse(record))
	}
}

// handleAdminUpdateSettings merges the submitted fields into the
// settings record and persists the whole record. Last write wins.
func handleAdminUpdateSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input map[string]any
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}

		record, err := findSettingsRecord(app)
		if err != nil {
			return utils.NotFoundResponse(re, "Site settings not found")
		}

		for _, f := range settingsTextFields {
			if v, ok := input[f]; ok {
				s, ok := v.(string)
				if !ok {
					return utils.BadRequestResponse(re, "Field "+f+" must be a string")
				}
				record.Set(f, strings.TrimSpace(s))
			}
		}
		for _, f := range settingsBoolFields {
			if v, ok := input[f]; ok {
				b, ok := v.(bool)
				if !ok {
					return utils.BadRequestResponse(re, "Field "+f+" must be a boolean")
				}
				record.Set(f, b)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("[Settings] failed to save: %v", err)
			return utils.InternalErrorResponse(re, "Failed to save settings")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "settings_update",
			ResourceType: utils.CollectionSiteSettings,
		})

		return utils.DataResponse(re, http.StatusOK, settingsResponse(record))
	}
}

type imageRequest struct {
	URL string `json:"url"`
}

func imageListOp(app *pocketbase.PocketBase, re *core.RequestEvent, field string, op func(images []string, url string, record *core.Record) ([]string, error)) error {
	var input imageRequest
	if err := re.BindBody(&input); err != nil {
		return utils.BadRequestResponse(re, "Invalid request body")
	}
	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		return utils.BadRequestResponse(re, "Image URL is required")
	}

	record, err := findSettingsRecord(app)
	if err != nil {
		return utils.NotFoundResponse(re, "Site settings not found")
	}

	var images []string
	record.UnmarshalJSONField(field, &images)

	updated, err := op(images, input.URL, record)
	if err != nil {
		return utils.BadRequestResponse(re, err.Error())
	}
	record.Set(field, updated)

	if err := app.Save(record); err != nil {
		log.Printf("[Settings] failed to save %s: %v", field, err)
		return utils.InternalErrorResponse(re, "Failed to save settings")
	}

	utils.LogFromRequest(app, re, utils.AuditEntry{
		Action:       "settings_update",
		ResourceType: utils.CollectionSiteSettings,
		ResourceID:   field,
	})

	return utils.DataResponse(re, http.StatusOK, settingsResponse(record))
}

func handleAdminAddGalleryImage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		return imageListOp(app, re, "gallery_images", func(images []string, url string, _ *core.Record) ([]string, error) {
			return append(images, url), nil
		})
	}
}

func handleAdminRemoveGalleryImage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		return imageListOp(app, re, "gallery_images", func(images []string, url string, _ *core.Record) ([]string, error) {
			return removeString(images, url), nil
		})
	}
}

func handleAdminAddBackgroundImage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		return imageListOp(app, re, "background_images", func(images []string, url string, record *core.Record) ([]string, error) {
			updated := append(images, url)
			if record.GetString("selected_background") == "" {
				record.Set("selected_background", url)
			}
			return updated, nil
		})
	}
}

// handleAdminRemoveBackgroundImage drops a background from the rotation.
// If the removed image was the selected one, selection falls back to the
// first remaining image, or clears when none remain.
func handleAdminRemoveBackgroundImage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		return imageListOp(app, re, "background_images", func(images []string, url string, record *core.Record) ([]string, error) {
			updated := removeString(images, url)
			if record.GetString("selected_background") == url {
				if len(updated) > 0 {
					record.Set("selected_background", updated[0])
				} else {
					record.Set("selected_background", "")
				}
			}
			return updated, nil
		})
	}
}

func handleAdminSelectBackground(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		var input imageRequest
		if err := re.BindBody(&input); err != nil {
			return utils.BadRequestResponse(re, "Invalid request body")
		}
		input.URL = strings.TrimSpace(input.URL)

		record, err := findSettingsRecord(app)
		if err != nil {
			return utils.NotFoundResponse(re, "Site settings not found")
		}

		var backgrounds []string
		record.UnmarshalJSONField("background_images", &backgrounds)
		if input.URL != "" && !containsString(backgrounds, input.URL) {
			return utils.BadRequestResponse(re, "Image is not in the background list")
		}

		record.Set("selected_background", input.URL)
		if err := app.Save(record); err != nil {
			log.Printf("[Settings] failed to save selected background: %v", err)
			return utils.InternalErrorResponse(re, "Failed to save settings")
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "settings_update",
			ResourceType: utils.CollectionSiteSettings,
			ResourceID:   "selected_background",
		})

		return utils.DataResponse(re, http.StatusOK, settingsResponse(record))
	}
}

func removeString(list []string, target string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
