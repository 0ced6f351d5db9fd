package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Links a response to the custom invite code it was submitted through, so
// the dashboard can show which invites converted.
func init() {
	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("rsvp_responses")
		if err != nil {
			return err
		}

		if collection.Fields.GetByName("invite_code") != nil {
			return nil
		}

		collection.Fields.Add(&core.TextField{
			Id:   "rsvp_invite_code",
			Name: "invite_code",
			Max:  20,
		})

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("rsvp_responses")
		if err != nil {
			return nil
		}
		if f := collection.Fields.GetByName("invite_code"); f != nil {
			collection.Fields.RemoveByName("invite_code")
			return app.Save(collection)
		}
		return nil
	})
}
