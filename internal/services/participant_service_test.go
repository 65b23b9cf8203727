package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-hub/internal/status"
	"event-hub/models"

	"github.com/go-redis/redismock/v9"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParticipantService(t *testing.T, app core.App) *ParticipantService {
	t.Helper()

	db, _ := redismock.NewClientMock()
	return NewParticipantService(app, NewRegistrantCache(db, time.Minute))
}

func TestParticipantService_RegisterPersistsAllRows(t *testing.T) {
	app := newTestApp(t)
	service := newParticipantService(t, app)

	event := createEvent(t, app, "Robotics", map[string]any{"capacity": 10})

	_, err := service.UpsertProfile(ProfileInput{UserID: "u1", Name: "bob"})
	require.NoError(t, err)
	_, err = service.UpsertProfile(ProfileInput{UserID: "u2", Name: "alice"})
	require.NoError(t, err)

	registration, err := service.Register(context.Background(), RegisterInput{
		EventID:          event.Id,
		UserID:           "u1",
		RegistrationType: models.RegistrationTypeTeam,
		TeamName:         "Alpha",
		Members:          []string{"u2"},
	})
	require.NoError(t, err)

	members, err := app.FindRecordsByFilter(
		"registration_members",
		"registration = {:registration}",
		"", 0, 0,
		dbx.Params{"registration": registration.ID},
	)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	eventRecord, err := app.FindRecordById("events", event.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, eventRecord.GetInt("registered_count"))

	profile, err := service.GetProfile("u2")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.RegisteredCount)

	// a member of the team cannot register again for the same event
	_, err = service.Register(context.Background(), RegisterInput{
		EventID:          event.Id,
		UserID:           "u2",
		RegistrationType: models.RegistrationTypeIndividual,
	})
	assert.ErrorIs(t, err, status.ErrAlreadyRegistered)
}

func TestParticipantService_RegisterRollsBackOnMemberFailure(t *testing.T) {
	app := newTestApp(t)
	service := newParticipantService(t, app)

	event := createEvent(t, app, "Robotics", nil)

	_, err := service.UpsertProfile(ProfileInput{UserID: "u1", Name: "bob"})
	require.NoError(t, err)
	_, err = service.UpsertProfile(ProfileInput{UserID: "u2", Name: "alice"})
	require.NoError(t, err)

	// fail the second member write, after the registration row and the first
	// member row were already saved
	saved := 0
	app.OnRecordCreate("registration_members").BindFunc(func(e *core.RecordEvent) error {
		saved++
		if saved == 2 {
			return errors.New("member write failed")
		}
		return e.Next()
	})

	_, err = service.Register(context.Background(), RegisterInput{
		EventID:          event.Id,
		UserID:           "u1",
		RegistrationType: models.RegistrationTypeTeam,
		TeamName:         "Alpha",
		Members:          []string{"u2"},
	})
	require.Error(t, err)

	registrations, err := app.FindRecordsByFilter(
		"registrations",
		"event = {:event}",
		"", 0, 0,
		dbx.Params{"event": event.Id},
	)
	require.NoError(t, err)
	assert.Empty(t, registrations)

	members, err := app.FindRecordsByFilter("registration_members", "", "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, members)

	eventRecord, err := app.FindRecordById("events", event.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, eventRecord.GetInt("registered_count"))

	profile, err := service.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, profile.RegisteredCount)
}

func TestParticipantService_RegisterEnforcesCapacity(t *testing.T) {
	app := newTestApp(t)
	service := newParticipantService(t, app)

	event := createEvent(t, app, "Robotics", map[string]any{"capacity": 1})

	_, err := service.UpsertProfile(ProfileInput{UserID: "u1", Name: "bob"})
	require.NoError(t, err)
	_, err = service.UpsertProfile(ProfileInput{UserID: "u2", Name: "alice"})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		EventID:          event.Id,
		UserID:           "u1",
		RegistrationType: models.RegistrationTypeIndividual,
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		EventID:          event.Id,
		UserID:           "u2",
		RegistrationType: models.RegistrationTypeIndividual,
	})
	assert.ErrorIs(t, err, status.ErrEventFull)
}
