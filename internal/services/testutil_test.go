package services

import (
	"testing"

	_ "event-hub/migrations"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/stretchr/testify/require"
)

// newTestApp boots an isolated app and applies the collection migrations.
func newTestApp(t *testing.T) *tests.TestApp {
	t.Helper()

	app, err := tests.NewTestApp()
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	_, err = core.NewMigrationsRunner(app, core.AppMigrations).Up()
	require.NoError(t, err)

	return app
}

func createEvent(t *testing.T, app core.App, name string, fields map[string]any) *core.Record {
	t.Helper()

	collection, err := app.FindCollectionByNameOrId("events")
	require.NoError(t, err)

	record := core.NewRecord(collection)
	record.Set("name", name)
	for key, value := range fields {
		record.Set(key, value)
	}
	require.NoError(t, app.Save(record))

	return record
}
