package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("registrations")

		collection.Fields.Add(
			&core.RelationField{Name: "event", Required: true, MaxSelect: 1, CollectionId: events.Id},
			&core.SelectField{Name: "registration_type", Required: true, MaxSelect: 1, Values: []string{"individual", "team"}},
			&core.TextField{Name: "team_name"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_registrations_event", false, "event", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
