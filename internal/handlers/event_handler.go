package handlers

import (
	"net/http"

	"event-hub/internal/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	app              *pocketbase.PocketBase
	eventService     *services.EventService
	pastEventService *services.PastEventService
}

func NewEventHandler(app *pocketbase.PocketBase, eventService *services.EventService, pastEventService *services.PastEventService) *EventHandler {
	return &EventHandler{
		app:              app,
		eventService:     eventService,
		pastEventService: pastEventService,
	}
}

// List - all events, or only the ones an admin has approved access to
func (h *EventHandler) List(e *core.RequestEvent) error {
	adminUserID := e.Request.URL.Query().Get("adminId")

	events, err := h.eventService.List(adminUserID)
	if err != nil {
		return translateError("list events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// Create - validate and insert an event, completing a same-named skeleton
// row when one exists
func (h *EventHandler) Create(e *core.RequestEvent) error {
	var input services.EventInput
	if err := e.BindBody(&input); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.eventService.Create(input)
	if err != nil {
		return translateError("create event", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"event":   event,
	})
}

// Stats - live/upcoming/past aggregation over all events
func (h *EventHandler) Stats(e *core.RequestEvent) error {
	stats, err := h.eventService.Stats()
	if err != nil {
		return translateError("event stats", err)
	}

	return e.JSON(http.StatusOK, stats)
}

// RegistrationInfo - capacity standing for one event
func (h *EventHandler) RegistrationInfo(e *core.RequestEvent) error {
	eventID := e.Request.URL.Query().Get("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	info, err := h.eventService.RegistrationInfo(eventID)
	if err != nil {
		return translateError("registration info", err)
	}

	return e.JSON(http.StatusOK, info)
}

// MigrationStatus - how many concluded events already have a past-event record
func (h *EventHandler) MigrationStatus(e *core.RequestEvent) error {
	report, err := h.eventService.MigrationStatus()
	if err != nil {
		return translateError("migration status", err)
	}

	return e.JSON(http.StatusOK, report)
}

// MigratePastEvents - insert bare past-event records for newly concluded events
func (h *EventHandler) MigratePastEvents(e *core.RequestEvent) error {
	report, err := h.eventService.MigratePastEvents()
	if err != nil {
		return translateError("migrate past events", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"report":  report,
	})
}

// PastEventDetails - photos, winners, details and feedback of a concluded event
func (h *EventHandler) PastEventDetails(e *core.RequestEvent) error {
	eventID := e.Request.URL.Query().Get("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	details, err := h.pastEventService.GetDetails(eventID)
	if err != nil {
		return translateError("past event details", err)
	}

	return e.JSON(http.StatusOK, details)
}

// SavePastEventDetails - partial upsert of the past-event record
func (h *EventHandler) SavePastEventDetails(e *core.RequestEvent) error {
	var req struct {
		EventID string `json:"event_id"`
		services.PastEventInput
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.EventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	details, err := h.pastEventService.SaveDetails(req.EventID, req.PastEventInput)
	if err != nil {
		return translateError("save past event details", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"details": details,
	})
}

// AddFeedback - one feedback entry per registered participant, later
// submissions overwrite
func (h *EventHandler) AddFeedback(e *core.RequestEvent) error {
	var req struct {
		EventID       string `json:"event_id"`
		ParticipantID string `json:"participant_id"`
		Feedback      string `json:"feedback"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	entry, err := h.pastEventService.AddFeedback(req.EventID, req.ParticipantID, req.Feedback)
	if err != nil {
		return translateError("add feedback", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"feedback": entry,
	})
}
