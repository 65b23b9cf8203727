package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"event-hub/internal/status"
	"event-hub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// EventService owns event CRUD, the live/upcoming/past aggregation, and the
// migration of concluded events into the past-events collection.
type EventService struct {
	app core.App
}

func NewEventService(app core.App) *EventService {
	return &EventService{app: app}
}

// List returns all events by ascending start date. With an admin filter it
// returns only the events that admin has approved access requests for,
// newest first; an admin with no approvals gets an empty list, not an error.
func (s *EventService) List(adminUserID string) ([]models.Event, error) {
	if adminUserID == "" {
		records, err := s.app.FindRecordsByFilter("events", "", "start_date", 0, 0)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		return eventsFromRecords(records), nil
	}

	approved, err := s.app.FindRecordsByFilter(
		"access_requests",
		"admin_user_id = {:admin} && status = 'approved'",
		"-created",
		0,
		0,
		dbx.Params{"admin": adminUserID},
	)
	if err != nil {
		return nil, fmt.Errorf("find approved requests: %w", err)
	}
	if len(approved) == 0 {
		return []models.Event{}, nil
	}

	filter := ""
	params := dbx.Params{}
	for i, request := range approved {
		key := fmt.Sprintf("name%d", i)
		if filter != "" {
			filter += " || "
		}
		filter += fmt.Sprintf("name = {:%s}", key)
		params[key] = request.GetString("event_name")
	}

	records, err := s.app.FindRecordsByFilter("events", filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list admin events: %w", err)
	}
	return eventsFromRecords(records), nil
}

func eventsFromRecords(records []*core.Record) []models.Event {
	events := make([]models.Event, len(records))
	for i, record := range records {
		events[i] = eventFromRecord(record)
	}
	return events
}

// Get returns one event by id.
func (s *EventService) Get(eventID string) (models.Event, error) {
	record, err := s.app.FindRecordById("events", eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, status.ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("find event: %w", err)
	}
	return eventFromRecord(record), nil
}

type EventInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Caption          string   `json:"caption"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	ImageURL         string   `json:"image_url"`
	Capacity         *float64 `json:"capacity"`
	RegistrationType string   `json:"registration_type"`
	Coordinators     []string `json:"coordinators"`
	Staff            []string `json:"staff"`
}

// normalizeCount coerces a client-supplied numeric field to a non-negative
// integer, or nil when it is absent or not finite.
func normalizeCount(value *float64) *int {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	n := int(*value)
	if n < 0 {
		return nil
	}
	return &n
}

// Create validates the input and inserts a new event. When an approved
// access request already pre-created a skeleton row with the same name, that
// row is completed in place instead. The completion is a single conditional
// UPDATE keyed on the skeleton predicate, so two concurrent creations cannot
// both claim the same skeleton.
func (s *EventService) Create(input EventInput) (models.Event, error) {
	if input.Name == "" || input.Description == "" || input.StartDate == "" || input.EndDate == "" {
		return models.Event{}, status.ErrInvalidInput
	}

	startDate, err := types.ParseDateTime(input.StartDate)
	if err != nil {
		return models.Event{}, status.ErrInvalidInput
	}
	endDate, err := types.ParseDateTime(input.EndDate)
	if err != nil {
		return models.Event{}, status.ErrInvalidInput
	}

	capacity := 0
	if n := normalizeCount(input.Capacity); n != nil {
		capacity = *n
	}

	claimed, err := s.completeSkeleton(input, startDate, endDate, capacity)
	if err != nil {
		return models.Event{}, err
	}
	if claimed {
		record, err := s.app.FindFirstRecordByFilter("events", "name = {:name}", dbx.Params{"name": input.Name})
		if err != nil {
			return models.Event{}, fmt.Errorf("reload completed skeleton: %w", err)
		}
		return eventFromRecord(record), nil
	}

	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return models.Event{}, fmt.Errorf("find events collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", input.Name)
	record.Set("description", input.Description)
	record.Set("caption", input.Caption)
	record.Set("start_date", startDate)
	record.Set("end_date", endDate)
	record.Set("image_url", input.ImageURL)
	record.Set("capacity", capacity)
	record.Set("registered_count", 0)
	record.Set("registration_type", input.RegistrationType)
	record.Set("coordinators", input.Coordinators)
	record.Set("staff", input.Staff)

	if err := s.app.Save(record); err != nil {
		return models.Event{}, fmt.Errorf("save event: %w", err)
	}
	return eventFromRecord(record), nil
}

// completeSkeleton claims a same-named skeleton row with one compare-and-swap
// style UPDATE: the WHERE clause re-checks the skeleton predicate, so the
// update either fills the bare row or touches nothing.
func (s *EventService) completeSkeleton(input EventInput, startDate, endDate types.DateTime, capacity int) (bool, error) {
	coordinators, err := json.Marshal(input.Coordinators)
	if err != nil {
		return false, fmt.Errorf("encode coordinators: %w", err)
	}
	staff, err := json.Marshal(input.Staff)
	if err != nil {
		return false, fmt.Errorf("encode staff: %w", err)
	}

	result, err := s.app.DB().
		Update("events", dbx.Params{
			"description":       input.Description,
			"caption":           input.Caption,
			"start_date":        startDate.String(),
			"end_date":          endDate.String(),
			"image_url":         input.ImageURL,
			"capacity":          capacity,
			"registration_type": input.RegistrationType,
			"coordinators":      string(coordinators),
			"staff":             string(staff),
			"updated":           types.NowDateTime().String(),
		}, dbx.And(
			dbx.HashExp{"name": input.Name},
			dbx.NewExp("(description = '' OR description IS NULL)"),
			dbx.NewExp("(start_date = '' OR start_date IS NULL)"),
			dbx.NewExp("(end_date = '' OR end_date IS NULL)"),
		)).
		Execute()
	if err != nil {
		return false, fmt.Errorf("complete skeleton event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return rows > 0, nil
}

// BuildRegistrationInfo computes available capacity. An unset capacity
// (stored as zero) yields null available spots and never reads as full.
func BuildRegistrationInfo(event models.Event) models.RegistrationInfo {
	info := models.RegistrationInfo{
		EventID:         event.ID,
		RegisteredCount: event.RegisteredCount,
	}
	if event.Capacity > 0 {
		capacity := event.Capacity
		available := capacity - event.RegisteredCount
		info.Capacity = &capacity
		info.AvailableSpots = &available
		info.IsFull = available <= 0
	}
	return info
}

// RegistrationInfo reports the capacity standing of one event.
func (s *EventService) RegistrationInfo(eventID string) (models.RegistrationInfo, error) {
	event, err := s.Get(eventID)
	if err != nil {
		return models.RegistrationInfo{}, err
	}
	return BuildRegistrationInfo(event), nil
}

type eventBucket int

const (
	bucketNone eventBucket = iota
	bucketLive
	bucketUpcoming
	bucketPast
)

// classifyEvent places an event against now. A missing bound is open-ended:
// start only means upcoming until the start passes, end only means past once
// the end passes, and an event with neither date lands in no bucket at all.
func classifyEvent(now time.Time, start, end *time.Time) eventBucket {
	switch {
	case start != nil && end != nil:
		if now.Before(*start) {
			return bucketUpcoming
		}
		if now.After(*end) {
			return bucketPast
		}
		return bucketLive
	case start != nil:
		if start.After(now) {
			return bucketUpcoming
		}
		return bucketPast
	case end != nil:
		if end.Before(now) {
			return bucketPast
		}
		return bucketNone
	default:
		return bucketNone
	}
}

// BuildEventStats classifies every event once and sums registration counts.
func BuildEventStats(now time.Time, events []models.Event) models.EventStats {
	stats := models.EventStats{TotalEvents: len(events)}
	for _, event := range events {
		stats.TotalRegistered += event.RegisteredCount
		switch classifyEvent(now, event.StartDate, event.EndDate) {
		case bucketLive:
			stats.LiveEvents++
		case bucketUpcoming:
			stats.UpcomingEvents++
		case bucketPast:
			stats.PastEvents++
		}
	}
	return stats
}

// Stats scans all events and aggregates the live/upcoming/past counts.
func (s *EventService) Stats() (models.EventStats, error) {
	records, err := s.app.FindRecordsByFilter("events", "", "", 0, 0)
	if err != nil {
		return models.EventStats{}, fmt.Errorf("scan events: %w", err)
	}
	return BuildEventStats(time.Now().UTC(), eventsFromRecords(records)), nil
}

// MigrationReport summarizes one past-events migration run.
type MigrationReport struct {
	Scanned int `json:"scanned"`
	Added   int `json:"added"`
}

// MigratePastEvents inserts a bare past-event record for every event whose
// end date lies strictly before now and that has no record yet. Running it
// again on an unchanged event set adds nothing.
func (s *EventService) MigratePastEvents() (MigrationReport, error) {
	now := types.NowDateTime().String()

	records, err := s.app.FindRecordsByFilter(
		"events",
		"end_date != '' && end_date < {:now}",
		"",
		0,
		0,
		dbx.Params{"now": now},
	)
	if err != nil {
		return MigrationReport{}, fmt.Errorf("find ended events: %w", err)
	}

	report := MigrationReport{Scanned: len(records)}
	if len(records) == 0 {
		return report, nil
	}

	collection, err := s.app.FindCollectionByNameOrId("past_events")
	if err != nil {
		return MigrationReport{}, fmt.Errorf("find past_events collection: %w", err)
	}

	for _, eventRecord := range records {
		_, err := s.app.FindFirstRecordByFilter("past_events", "event = {:event}", dbx.Params{"event": eventRecord.Id})
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return MigrationReport{}, fmt.Errorf("check past event record: %w", err)
		}

		record := core.NewRecord(collection)
		record.Set("event", eventRecord.Id)
		record.Set("photos", []string{})
		record.Set("feedback", []models.FeedbackEntry{})

		if err := s.app.Save(record); err != nil {
			return MigrationReport{}, fmt.Errorf("save past event record: %w", err)
		}
		report.Added++
	}

	return report, nil
}

// MigrationStatus reports how many concluded events exist and how many of
// them already carry a past-event record.
func (s *EventService) MigrationStatus() (map[string]any, error) {
	now := types.NowDateTime().String()

	records, err := s.app.FindRecordsByFilter(
		"events",
		"end_date != '' && end_date < {:now}",
		"",
		0,
		0,
		dbx.Params{"now": now},
	)
	if err != nil {
		return nil, fmt.Errorf("find ended events: %w", err)
	}

	migrated := 0
	for _, eventRecord := range records {
		if _, err := s.app.FindFirstRecordByFilter("past_events", "event = {:event}", dbx.Params{"event": eventRecord.Id}); err == nil {
			migrated++
		}
	}

	return map[string]any{
		"ended_events": len(records),
		"migrated":     migrated,
		"pending":      len(records) - migrated,
	}, nil
}
