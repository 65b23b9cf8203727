package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("participant_profiles")

		collection.Fields.Add(
			&core.TextField{Name: "user_id", Required: true},
			&core.TextField{Name: "name", Required: true},
			&core.TextField{Name: "institution"},
			&core.TextField{Name: "department"},
			&core.TextField{Name: "registration_no"},
			&core.NumberField{Name: "year", OnlyInt: true, Min: types.Pointer(1.0), Max: types.Pointer(6.0)},
			&core.NumberField{Name: "registered_count", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "won_count", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.NumberField{Name: "wishlist_count", OnlyInt: true, Min: types.Pointer(0.0)},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// 1:1 with the identity-provider subject
		collection.AddIndex("idx_participant_profiles_user", true, "user_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("participant_profiles")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
