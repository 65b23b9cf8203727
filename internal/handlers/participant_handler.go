package handlers

import (
	"net/http"

	"event-hub/internal/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type ParticipantHandler struct {
	app                *pocketbase.PocketBase
	participantService *services.ParticipantService
	pastEventService   *services.PastEventService
}

func NewParticipantHandler(app *pocketbase.PocketBase, participantService *services.ParticipantService, pastEventService *services.PastEventService) *ParticipantHandler {
	return &ParticipantHandler{
		app:                app,
		participantService: participantService,
		pastEventService:   pastEventService,
	}
}

// GetProfile - fetch the profile for an account id
func (h *ParticipantHandler) GetProfile(e *core.RequestEvent) error {
	userID := e.Request.URL.Query().Get("user_id")
	if userID == "" {
		return apis.NewBadRequestError("user_id is required", nil)
	}

	profile, err := h.participantService.GetProfile(userID)
	if err != nil {
		return translateError("get profile", err)
	}

	return e.JSON(http.StatusOK, profile)
}

// UpsertProfile - lazy create on first submission, update in place after
func (h *ParticipantHandler) UpsertProfile(e *core.RequestEvent) error {
	var input services.ProfileInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	profile, err := h.participantService.UpsertProfile(input)
	if err != nil {
		return translateError("upsert profile", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"profile": profile,
	})
}

// CheckRegistration - registration standing for one event and participant
func (h *ParticipantHandler) CheckRegistration(e *core.RequestEvent) error {
	eventID := e.Request.URL.Query().Get("event_id")
	userID := e.Request.URL.Query().Get("participant_id")
	if eventID == "" || userID == "" {
		return apis.NewBadRequestError("event_id and participant_id are required", nil)
	}

	standing, err := h.participantService.CheckRegistration(eventID, userID)
	if err != nil {
		return translateError("check registration", err)
	}

	return e.JSON(http.StatusOK, standing)
}

// Register - create a registration with its members
func (h *ParticipantHandler) Register(e *core.RequestEvent) error {
	var input services.RegisterInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	registration, err := h.participantService.Register(e.Request.Context(), input)
	if err != nil {
		return translateError("register", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"registration": registration,
	})
}

// RegisteredEvents - summary projection of the participant's registrations
func (h *ParticipantHandler) RegisteredEvents(e *core.RequestEvent) error {
	userID := e.Request.URL.Query().Get("user_id")
	if userID == "" {
		return apis.NewBadRequestError("user_id is required", nil)
	}

	events, err := h.participantService.RegisteredEvents(userID)
	if err != nil {
		return translateError("registered events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// WishlistedEvents - summary projection of the participant's wishlist
func (h *ParticipantHandler) WishlistedEvents(e *core.RequestEvent) error {
	userID := e.Request.URL.Query().Get("user_id")
	if userID == "" {
		return apis.NewBadRequestError("user_id is required", nil)
	}

	events, err := h.participantService.WishlistedEvents(userID)
	if err != nil {
		return translateError("wishlisted events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// WonEvents - events the participant won, annotated team vs individual
func (h *ParticipantHandler) WonEvents(e *core.RequestEvent) error {
	userID := e.Request.URL.Query().Get("user_id")
	if userID == "" {
		return apis.NewBadRequestError("user_id is required", nil)
	}

	events, err := h.pastEventService.WonEvents(userID)
	if err != nil {
		return translateError("won events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// RegisteredUsers - everyone registered for an event, via the registrants cache
func (h *ParticipantHandler) RegisteredUsers(e *core.RequestEvent) error {
	eventID := e.Request.URL.Query().Get("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	registrants, err := h.participantService.RegisteredUsers(e.Request.Context(), eventID)
	if err != nil {
		return translateError("registered users", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"registrants": registrants,
		"total":       len(registrants),
	})
}
