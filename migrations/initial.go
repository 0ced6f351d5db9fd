package migrations

import (
	"encoding/json"
	"log"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		if err := extendUsersCollection(app); err != nil {
			return err
		}
		if err := createResponsesCollection(app); err != nil {
			return err
		}
		if err := createSiteSettingsCollection(app); err != nil {
			return err
		}
		if err := createFAQsCollection(app); err != nil {
			return err
		}
		if err := createCustomInvitesCollection(app); err != nil {
			return err
		}
		return nil
	}, nil)
}

func extendUsersCollection(app core.App) error {
	collection, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		// Users collection should exist by default, just extend it
		return nil
	}

	if !fieldExists(collection, "role") {
		collection.Fields.Add(&core.SelectField{
			Id:        "users_role",
			Name:      "role",
			Required:  false,
			MaxSelect: 1,
			Values:    []string{"admin", "viewer"},
		})
	}

	if !fieldExists(collection, "name") {
		collection.Fields.Add(&core.TextField{
			Id:       "users_name",
			Name:     "name",
			Required: false,
			Max:      200,
		})
	}

	return app.Save(collection)
}

func createResponsesCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("rsvp_responses")
	if existing != nil {
		return nil // Already exists
	}

	collection := core.NewBaseCollection("rsvp_responses")

	collection.Fields.Add(
		&core.TextField{
			Id:       "rsvp_name",
			Name:     "name",
			Required: true,
			Max:      200,
		},
		&core.EmailField{
			Id:       "rsvp_email",
			Name:     "email",
			Required: true,
		},
		&core.SelectField{
			Id:        "rsvp_attendance_status",
			Name:      "attendance_status",
			Required:  false, // absent means pending
			MaxSelect: 1,
			Values:    []string{"attending", "not attending"},
		},
		&core.NumberField{
			Id:       "rsvp_party_size",
			Name:     "party_size",
			Required: true,
			Min:      types.Pointer(1.0),
			OnlyInt:  true,
		},
		&core.TextField{
			Id:       "rsvp_dietary",
			Name:     "dietary_restrictions",
			Required: false,
			Max:      1000,
		},
		&core.AutodateField{
			Id:       "rsvp_created",
			Name:     "created",
			OnCreate: true,
		},
		&core.AutodateField{
			Id:       "rsvp_updated",
			Name:     "updated",
			OnCreate: true,
			OnUpdate: true,
		},
	)

	collection.Indexes = []string{
		"CREATE INDEX idx_rsvp_created ON rsvp_responses (created)",
		"CREATE INDEX idx_rsvp_status ON rsvp_responses (attendance_status)",
	}

	// Visitors submit through the custom endpoint; reads are admin-only
	adminRule := "@request.auth.role = 'admin'"
	collection.ListRule = types.Pointer(adminRule)
	collection.ViewRule = types.Pointer(adminRule)
	collection.CreateRule = nil
	collection.UpdateRule = types.Pointer(adminRule)
	collection.DeleteRule = types.Pointer(adminRule)

	return app.Save(collection)
}

func createSiteSettingsCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("site_settings")
	if existing != nil {
		return nil
	}

	collection := core.NewBaseCollection("site_settings")

	collection.Fields.Add(
		&core.TextField{
			Id:       "set_key",
			Name:     "key",
			Required: true,
			Max:      20,
		},
		&core.TextField{
			Id:       "set_names",
			Name:     "names",
			Required: false,
			Max:      200,
		},
		&core.TextField{
			Id:       "set_subtitle",
			Name:     "subtitle",
			Required: false,
			Max:      200,
		},
		&core.TextField{
			Id:       "set_wedding_date",
			Name:     "wedding_date",
			Required: false,
			Max:      100,
		},
		&core.TextField{
			Id:       "set_invitation_text",
			Name:     "invitation_text",
			Required: false,
			Max:      500,
		},
		&core.TextField{
			Id:       "set_location",
			Name:     "location",
			Required: false,
			Max:      300,
		},
		&core.BoolField{Id: "set_show_countdown", Name: "show_countdown"},
		&core.BoolField{Id: "set_show_rsvp", Name: "show_rsvp"},
		&core.BoolField{Id: "set_show_guest_book", Name: "show_guest_book"},
		&core.BoolField{Id: "set_show_photo_gallery", Name: "show_photo_gallery"},
		&core.BoolField{Id: "set_show_itinerary", Name: "show_itinerary"},
		&core.BoolField{Id: "set_show_gift_registry", Name: "show_gift_registry"},
		&core.BoolField{Id: "set_show_accommodation", Name: "show_accommodation"},
		&core.BoolField{Id: "set_show_contact", Name: "show_contact"},
		&core.BoolField{Id: "set_show_background_image", Name: "show_background_image"},
		&core.JSONField{
			Id:      "set_gallery_images",
			Name:    "gallery_images",
			MaxSize: 50000,
		},
		&core.JSONField{
			Id:      "set_background_images",
			Name:    "background_images",
			MaxSize: 50000,
		},
		&core.URLField{
			Id:   "set_selected_background",
			Name: "selected_background",
		},
		&core.TextField{
			Id:   "set_itinerary_content",
			Name: "itinerary_content",
			Max:  20000,
		},
		&core.TextField{
			Id:   "set_accommodation_content",
			Name: "accommodation_content",
			Max:  20000,
		},
		&core.TextField{
			Id:   "set_gift_registry_content",
			Name: "gift_registry_content",
			Max:  20000,
		},
		&core.TextField{
			Id:   "set_itinerary_message",
			Name: "itinerary_message",
			Max:  1000,
		},
		&core.TextField{
			Id:   "set_accommodation_message",
			Name: "accommodation_message",
			Max:  1000,
		},
		&core.TextField{
			Id:   "set_gift_registry_message",
			Name: "gift_registry_message",
			Max:  1000,
		},
		&core.TextField{
			Id:   "set_contact_phone",
			Name: "contact_phone",
			Max:  50,
		},
		&core.TextField{
			Id:   "set_contact_email",
			Name: "contact_email",
			Max:  200,
		},
		&core.AutodateField{
			Id:       "set_created",
			Name:     "created",
			OnCreate: true,
		},
		&core.AutodateField{
			Id:       "set_updated",
			Name:     "updated",
			OnCreate: true,
			OnUpdate: true,
		},
	)

	// Singleton: exactly one row, keyed "main"
	collection.Indexes = []string{
		"CREATE UNIQUE INDEX idx_site_settings_key ON site_settings (key)",
	}

	// Settings are public read (the site needs them before any auth)
	adminRule := "@request.auth.role = 'admin'"
	collection.ListRule = types.Pointer("")
	collection.ViewRule = types.Pointer("")
	collection.CreateRule = types.Pointer(adminRule)
	collection.UpdateRule = types.Pointer(adminRule)
	collection.DeleteRule = types.Pointer(adminRule)

	if err := app.Save(collection); err != nil {
		return err
	}

	return seedDefaultSettings(app, collection)
}

// seedDefaultSettings creates the singleton settings row with the same
// defaults the site ships with.
func seedDefaultSettings(app core.App, collection *core.Collection) error {
	galleryImages := []string{
		"https://images.unsplash.com/photo-1519741497674-611481863552?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1511285560929-80b456fea0bc?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1465495976277-4387d4b0e4a6?w=800&h=600&fit=crop",
	}
	backgroundImages := []string{
		"https://images.unsplash.com/photo-1519741497674-611481863552?w=1920&h=1080&fit=crop",
		"https://images.unsplash.com/photo-1511285560929-80b456fea0bc?w=1920&h=1080&fit=crop",
		"https://images.unsplash.com/photo-1465495976277-4387d4b0e4a6?w=1920&h=1080&fit=crop",
	}

	galleryJSON, _ := json.Marshal(galleryImages)
	backgroundJSON, _ := json.Marshal(backgroundImages)

	record := core.NewRecord(collection)
	record.Set("key", "main")
	record.Set("names", "Kenia y Gustavo")
	record.Set("subtitle", "NOS CASAMOS")
	record.Set("wedding_date", "21 de noviembre, 2025")
	record.Set("invitation_text", "Te invitamos a celebrar con nosotros")
	record.Set("location", "TBD")
	record.Set("show_countdown", true)
	record.Set("show_rsvp", true)
	record.Set("show_guest_book", true)
	record.Set("show_photo_gallery", true)
	record.Set("show_itinerary", true)
	record.Set("show_gift_registry", true)
	record.Set("show_accommodation", true)
	record.Set("show_contact", true)
	record.Set("show_background_image", true)
	record.Set("gallery_images", string(galleryJSON))
	record.Set("background_images", string(backgroundJSON))
	record.Set("selected_background", backgroundImages[0])
	record.Set("contact_phone", "(555) 123-4567")
	record.Set("contact_email", "info@wedding.com")

	if err := app.Save(record); err != nil {
		return err
	}

	log.Println("[Migration] Seeded site_settings with defaults")
	return nil
}

func createFAQsCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("faqs")
	if existing != nil {
		return nil
	}

	collection := core.NewBaseCollection("faqs")

	collection.Fields.Add(
		&core.TextField{
			Id:       "faq_question",
			Name:     "question",
			Required: true,
			Max:      500,
		},
		&core.TextField{
			Id:       "faq_answer",
			Name:     "answer",
			Required: true,
			Max:      20000, // rich text HTML
		},
		&core.NumberField{
			Id:      "faq_sort_order",
			Name:    "sort_order",
			OnlyInt: true,
		},
		&core.BoolField{
			Id:   "faq_is_enabled",
			Name: "is_enabled",
		},
		&core.AutodateField{
			Id:       "faq_created",
			Name:     "created",
			OnCreate: true,
		},
		&core.AutodateField{
			Id:       "faq_updated",
			Name:     "updated",
			OnCreate: true,
			OnUpdate: true,
		},
	)

	collection.Indexes = []string{
		"CREATE INDEX idx_faqs_sort_order ON faqs (sort_order)",
	}

	adminRule := "@request.auth.role = 'admin'"
	collection.ListRule = types.Pointer("")
	collection.ViewRule = types.Pointer("")
	collection.CreateRule = types.Pointer(adminRule)
	collection.UpdateRule = types.Pointer(adminRule)
	collection.DeleteRule = types.Pointer(adminRule)

	return app.Save(collection)
}

func createCustomInvitesCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("custom_invites")
	if existing != nil {
		return nil
	}

	collection := core.NewBaseCollection("custom_invites")

	collection.Fields.Add(
		&core.TextField{
			Id:       "inv_code",
			Name:     "invite_code",
			Required: true,
			Max:      20,
		},
		&core.TextField{
			Id:       "inv_guest_name",
			Name:     "guest_name",
			Required: true,
			Max:      200,
		},
		&core.EmailField{
			Id:       "inv_guest_email",
			Name:     "guest_email",
			Required: false,
		},
		&core.NumberField{
			Id:       "inv_max_party_size",
			Name:     "max_party_size",
			Required: true,
			Min:      types.Pointer(1.0),
			OnlyInt:  true,
		},
		&core.TextField{
			Id:   "inv_custom_message",
			Name: "custom_message",
			Max:  1000,
		},
		&core.BoolField{
			Id:   "inv_is_active",
			Name: "is_active",
		},
		&core.DateField{
			Id:   "inv_expires_at",
			Name: "expires_at",
		},
		&core.AutodateField{
			Id:       "inv_created",
			Name:     "created",
			OnCreate: true,
		},
		&core.AutodateField{
			Id:       "inv_updated",
			Name:     "updated",
			OnCreate: true,
			OnUpdate: true,
		},
	)

	// The unique index backs the retry-on-conflict loop in the issuer
	collection.Indexes = []string{
		"CREATE UNIQUE INDEX idx_invites_code ON custom_invites (invite_code)",
	}

	adminRule := "@request.auth.role = 'admin'"
	collection.ListRule = types.Pointer(adminRule)
	collection.ViewRule = types.Pointer(adminRule)
	collection.CreateRule = types.Pointer(adminRule)
	collection.UpdateRule = types.Pointer(adminRule)
	collection.DeleteRule = types.Pointer(adminRule)

	return app.Save(collection)
}

func fieldExists(collection *core.Collection, fieldName string) bool {
	for _, f := range collection.Fields {
		if f.GetName() == fieldName {
			return true
		}
	}
	return false
}
