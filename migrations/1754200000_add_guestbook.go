package migrations

import (
	"log"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

// The guest book previously lived only in each visitor's browser storage,
// so messages were invisible to everyone else. This moves it server-side.
func init() {
	m.Register(func(app core.App) error {
		existing, _ := app.FindCollectionByNameOrId("guestbook_messages")
		if existing != nil {
			return nil
		}

		collection := core.NewBaseCollection("guestbook_messages")
		collection.Fields.Add(
			&core.TextField{
				Id:       "gb_name",
				Name:     "name",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Id:       "gb_message",
				Name:     "message",
				Required: true,
				Max:      2000,
			},
			&core.AutodateField{
				Id:       "gb_created",
				Name:     "created",
				OnCreate: true,
			},
		)

		collection.Indexes = []string{
			"CREATE INDEX idx_guestbook_created ON guestbook_messages (created)",
		}

		// Public read; writes go through the rate-limited custom endpoint,
		// deletes are admin moderation
		adminRule := "@request.auth.role = 'admin'"
		collection.ListRule = types.Pointer("")
		collection.ViewRule = types.Pointer("")
		collection.CreateRule = nil
		collection.UpdateRule = nil
		collection.DeleteRule = types.Pointer(adminRule)

		if err := app.Save(collection); err != nil {
			return err
		}

		log.Println("[Migration] Created guestbook_messages collection")
		return nil
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("guestbook_messages")
		if err != nil {
			return nil
		}
		app.Delete(collection)
		return nil
	})
}
