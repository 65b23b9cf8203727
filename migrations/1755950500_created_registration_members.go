package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		registrations, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("registration_members")

		collection.Fields.Add(
			&core.RelationField{Name: "registration", Required: true, MaxSelect: 1, CollectionId: registrations.Id, CascadeDelete: true},
			// profile id, or a raw account id on legacy rows
			&core.TextField{Name: "participant", Required: true},
			&core.AutodateField{Name: "created", OnCreate: true},
		)

		collection.AddIndex("idx_registration_members_pair", true, "registration, participant", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("registration_members")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
