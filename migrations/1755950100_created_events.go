package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.TextField{Name: "description"},
			&core.TextField{Name: "caption"},
			&core.DateField{Name: "start_date"},
			&core.DateField{Name: "end_date"},
			&core.URLField{Name: "image_url"},
			&core.NumberField{Name: "capacity", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "registered_count", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.SelectField{Name: "registration_type", MaxSelect: 1, Values: []string{"individual", "team"}},
			&core.JSONField{Name: "coordinators", MaxSize: 5000},
			&core.JSONField{Name: "staff", MaxSize: 5000},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// skeleton completion looks events up by name
		collection.AddIndex("idx_events_name", true, "name", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
