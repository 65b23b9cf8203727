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

		collection := core.NewBaseCollection("past_events")

		collection.Fields.Add(
			&core.RelationField{Name: "event", Required: true, MaxSelect: 1, CollectionId: events.Id},
			&core.JSONField{Name: "photos", MaxSize: 100000},
			&core.JSONField{Name: "winners", MaxSize: 100000},
			&core.TextField{Name: "event_details"},
			&core.JSONField{Name: "feedback", MaxSize: 500000},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_past_events_event", true, "event", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("past_events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
