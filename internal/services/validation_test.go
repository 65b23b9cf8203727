package services

import (
	"context"
	"testing"

	"event-hub/internal/status"

	"github.com/stretchr/testify/assert"
)

// Validation paths reject before any store call, so a nil app is fine here.

func TestAccessService_Submit_MissingFields(t *testing.T) {
	service := NewAccessService(nil)

	_, err := service.Submit("", "Tech Fest")
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = service.Submit("admin1", "")
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestAccessService_Decide_InvalidStatus(t *testing.T) {
	service := NewAccessService(nil)

	for _, decision := range []string{"", "pending", "maybe", "APPROVED"} {
		_, _, err := service.Decide("req1", decision)
		assert.ErrorIs(t, err, status.ErrInvalidInput, "decision=%q", decision)
	}
}

func TestEventService_Create_MissingRequiredFields(t *testing.T) {
	service := NewEventService(nil)

	inputs := []EventInput{
		{Description: "d", StartDate: "2025-09-01 09:00:00.000Z", EndDate: "2025-09-02 18:00:00.000Z"},
		{Name: "n", StartDate: "2025-09-01 09:00:00.000Z", EndDate: "2025-09-02 18:00:00.000Z"},
		{Name: "n", Description: "d", EndDate: "2025-09-02 18:00:00.000Z"},
		{Name: "n", Description: "d", StartDate: "2025-09-01 09:00:00.000Z"},
	}

	for i, input := range inputs {
		_, err := service.Create(input)
		assert.ErrorIs(t, err, status.ErrInvalidInput, "case %d", i)
	}
}

func TestWishlistService_EmptyPair(t *testing.T) {
	service := NewWishlistService(nil)

	_, err := service.Add("", "u1")
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	err = service.Remove("e1", "")
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = service.Check("", "")
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestParticipantService_UpsertProfile_YearBounds(t *testing.T) {
	service := NewParticipantService(nil, nil)

	for _, year := range []int{-1, 7, 42} {
		_, err := service.UpsertProfile(ProfileInput{UserID: "u1", Name: "bob", Year: year})
		assert.ErrorIs(t, err, status.ErrInvalidInput, "year=%d", year)
	}
}

func TestParticipantService_Register_Validation(t *testing.T) {
	service := NewParticipantService(nil, nil)
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{UserID: "u1", RegistrationType: "individual"})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = service.Register(ctx, RegisterInput{EventID: "e1", UserID: "u1", RegistrationType: "squad"})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	// team entries need a team name
	_, err = service.Register(ctx, RegisterInput{EventID: "e1", UserID: "u1", RegistrationType: "team"})
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	// individual entries carry no extra members
	_, err = service.Register(ctx, RegisterInput{EventID: "e1", UserID: "u1", RegistrationType: "individual", Members: []string{"u2"}})
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestPastEventService_AddFeedback_MissingFields(t *testing.T) {
	service := NewPastEventService(nil)

	_, err := service.AddFeedback("", "p1", "great event")
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = service.AddFeedback("e1", "", "great event")
	assert.ErrorIs(t, err, status.ErrInvalidInput)

	_, err = service.AddFeedback("e1", "p1", "")
	assert.ErrorIs(t, err, status.ErrInvalidInput)
}
