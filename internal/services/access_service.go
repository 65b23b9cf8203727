package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"event-hub/internal/status"
	"event-hub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// AccessService manages the admin access-request workflow: submission,
// approval/rejection, and the skeleton-event lifetime that gates creation
// rights.
type AccessService struct {
	app core.App
}

func NewAccessService(app core.App) *AccessService {
	return &AccessService{app: app}
}

// Submit creates a pending access request. At most one pending request per
// admin is allowed at a time.
func (s *AccessService) Submit(adminUserID, eventName string) (models.AccessRequest, error) {
	if adminUserID == "" || eventName == "" {
		return models.AccessRequest{}, status.ErrInvalidInput
	}

	existing, err := s.app.FindFirstRecordByFilter(
		"access_requests",
		"admin_user_id = {:admin} && status = 'pending'",
		dbx.Params{"admin": adminUserID},
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.AccessRequest{}, fmt.Errorf("find pending request: %w", err)
	}
	if existing != nil {
		return models.AccessRequest{}, status.ErrPendingExists
	}

	collection, err := s.app.FindCollectionByNameOrId("access_requests")
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("find access_requests collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("admin_user_id", adminUserID)
	record.Set("event_name", eventName)
	record.Set("status", models.RequestStatusPending)

	if err := s.app.Save(record); err != nil {
		return models.AccessRequest{}, fmt.Errorf("save access request: %w", err)
	}

	return accessRequestFromRecord(record), nil
}

// List returns requests newest first, optionally filtered by status.
func (s *AccessService) List(statusFilter string) ([]models.AccessRequest, error) {
	filter := ""
	params := dbx.Params{}
	if statusFilter != "" {
		filter = "status = {:status}"
		params["status"] = statusFilter
	}

	records, err := s.app.FindRecordsByFilter("access_requests", filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}

	requests := make([]models.AccessRequest, len(records))
	for i, record := range records {
		requests[i] = accessRequestFromRecord(record)
	}
	return requests, nil
}

// Get returns a single request by id.
func (s *AccessService) Get(requestID string) (models.AccessRequest, error) {
	record, err := s.app.FindRecordById("access_requests", requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccessRequest{}, status.ErrRequestNotFound
	}
	if err != nil {
		return models.AccessRequest{}, fmt.Errorf("find access request: %w", err)
	}
	return accessRequestFromRecord(record), nil
}

// Decide moves a pending request to approved or rejected. Approval also
// creates a skeleton event named after the request's target if none exists;
// that side effect never fails the decision — a failure comes back as a
// warning string instead.
func (s *AccessService) Decide(requestID, decision string) (models.AccessRequest, string, error) {
	if decision != models.RequestStatusApproved && decision != models.RequestStatusRejected {
		return models.AccessRequest{}, "", status.ErrInvalidInput
	}

	record, err := s.app.FindRecordById("access_requests", requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccessRequest{}, "", status.ErrRequestNotFound
	}
	if err != nil {
		return models.AccessRequest{}, "", fmt.Errorf("find access request: %w", err)
	}

	if record.GetString("status") != models.RequestStatusPending {
		return models.AccessRequest{}, "", status.ErrAlreadyDecided
	}

	record.Set("status", decision)
	record.Set("decided_at", types.NowDateTime())

	if err := s.app.Save(record); err != nil {
		return models.AccessRequest{}, "", fmt.Errorf("save decision: %w", err)
	}

	warning := ""
	if decision == models.RequestStatusApproved {
		if err := s.ensureSkeletonEvent(record.GetString("event_name")); err != nil {
			slog.Warn("skeleton event creation failed after approval",
				"request_id", requestID,
				"event_name", record.GetString("event_name"),
				"error", err,
			)
			warning = "request approved, but the placeholder event could not be created"
		}
	}

	return accessRequestFromRecord(record), warning, nil
}

// ensureSkeletonEvent inserts a bare event row holding only the name, unless
// an event with that name already exists.
func (s *AccessService) ensureSkeletonEvent(eventName string) error {
	_, err := s.app.FindFirstRecordByFilter("events", "name = {:name}", dbx.Params{"name": eventName})
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("find event by name: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return fmt.Errorf("find events collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", eventName)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save skeleton event: %w", err)
	}
	return nil
}

// AccessResult is the outcome of a skeleton-access check.
type AccessResult struct {
	HasAccess bool   `json:"has_access"`
	EventName string `json:"event_name,omitempty"`
	EventID   string `json:"event_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// CheckAccess looks up the admin's most recent approved request and grants
// access only while the named event is still a skeleton, i.e. nobody has
// populated its description and dates yet.
func (s *AccessService) CheckAccess(adminUserID string) (AccessResult, error) {
	if adminUserID == "" {
		return AccessResult{}, status.ErrInvalidInput
	}

	records, err := s.app.FindRecordsByFilter(
		"access_requests",
		"admin_user_id = {:admin} && status = 'approved'",
		"-created",
		1,
		0,
		dbx.Params{"admin": adminUserID},
	)
	if err != nil {
		return AccessResult{}, fmt.Errorf("find approved requests: %w", err)
	}
	if len(records) == 0 {
		return AccessResult{Reason: "no approved request"}, nil
	}

	eventName := records[0].GetString("event_name")

	eventRecord, err := s.app.FindFirstRecordByFilter("events", "name = {:name}", dbx.Params{"name": eventName})
	if errors.Is(err, sql.ErrNoRows) {
		return AccessResult{EventName: eventName, Reason: "event no longer exists"}, nil
	}
	if err != nil {
		return AccessResult{}, fmt.Errorf("find event by name: %w", err)
	}

	event := eventFromRecord(eventRecord)
	if !event.IsSkeleton() {
		return AccessResult{EventName: eventName, EventID: event.ID, Reason: "event already populated"}, nil
	}

	return AccessResult{HasAccess: true, EventName: eventName, EventID: event.ID}, nil
}

// Latest returns the admin's most recently submitted request regardless of
// status, or nil when they never submitted one.
func (s *AccessService) Latest(adminUserID string) (*models.AccessRequest, error) {
	if adminUserID == "" {
		return nil, status.ErrInvalidInput
	}

	records, err := s.app.FindRecordsByFilter(
		"access_requests",
		"admin_user_id = {:admin}",
		"-created",
		1,
		0,
		dbx.Params{"admin": adminUserID},
	)
	if err != nil {
		return nil, fmt.Errorf("find latest request: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	request := accessRequestFromRecord(records[0])
	return &request, nil
}
