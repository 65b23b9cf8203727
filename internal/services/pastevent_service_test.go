package services

import (
	"testing"

	"event-hub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWonEvents_TeamWin(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", Title: "Robotics", RegistrationType: models.RegistrationTypeTeam, TeamName: "Alpha"},
	}
	winners := map[string]models.Winners{
		"e1": {Team: []string{"Alpha"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	require.Len(t, won, 1)
	assert.Equal(t, "e1", won[0].EventID)
	assert.Equal(t, models.WonAsTeam, won[0].WonAs)
	assert.Equal(t, "Alpha", won[0].TeamName)
}

func TestResolveWonEvents_TeamWinFromFlatList(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", RegistrationType: models.RegistrationTypeTeam, TeamName: "Alpha"},
	}
	winners := map[string]models.Winners{
		"e1": {Flat: []string{"Alpha"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	require.Len(t, won, 1)
	assert.Equal(t, models.WonAsTeam, won[0].WonAs)
}

func TestResolveWonEvents_IndividualWin(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", Title: "Chess", RegistrationType: models.RegistrationTypeIndividual},
	}
	winners := map[string]models.Winners{
		"e1": {Flat: []string{"bob"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	require.Len(t, won, 1)
	assert.Equal(t, models.WonAsIndividual, won[0].WonAs)
	assert.Empty(t, won[0].TeamName)
}

func TestResolveWonEvents_IndividualWinFromSplitList(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", RegistrationType: models.RegistrationTypeIndividual},
	}
	winners := map[string]models.Winners{
		"e1": {Individual: []string{"bob"}, Team: []string{"Alpha"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	require.Len(t, won, 1)
	assert.Equal(t, models.WonAsIndividual, won[0].WonAs)
}

func TestResolveWonEvents_NoMatch(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", RegistrationType: models.RegistrationTypeIndividual},
		{EventID: "e2", RegistrationType: models.RegistrationTypeTeam, TeamName: "Beta"},
	}
	winners := map[string]models.Winners{
		"e1": {Flat: []string{"alice"}},
		"e2": {Team: []string{"Alpha"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	assert.Empty(t, won)
}

func TestResolveWonEvents_SkipsEventsWithoutRecords(t *testing.T) {
	registrations := []RegisteredFor{
		{EventID: "e1", RegistrationType: models.RegistrationTypeIndividual},
	}

	won := ResolveWonEvents("bob", registrations, map[string]models.Winners{})

	assert.Empty(t, won)
}

func TestResolveWonEvents_TeamNameDoesNotMatchIndividually(t *testing.T) {
	// a display name that happens to equal a winning team name must not
	// count as an individual win for a team registration, and vice versa
	registrations := []RegisteredFor{
		{EventID: "e1", RegistrationType: models.RegistrationTypeIndividual},
	}
	winners := map[string]models.Winners{
		"e1": {Team: []string{"bob"}},
	}

	won := ResolveWonEvents("bob", registrations, winners)

	assert.Empty(t, won)
}
