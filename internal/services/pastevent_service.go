package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"event-hub/internal/status"
	"event-hub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// PastEventService owns the post-conclusion annex of an event: photos,
// winners, free-text details, and participant feedback, plus the winner
// membership resolution.
type PastEventService struct {
	app core.App
}

func NewPastEventService(app core.App) *PastEventService {
	return &PastEventService{app: app}
}

func (s *PastEventService) findRecord(eventID string) (*core.Record, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"past_events",
		"event = {:event}",
		dbx.Params{"event": eventID},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find past event record: %w", err)
	}
	return record, nil
}

// GetDetails returns the past-event annex. A missing record is not an
// error: it simply means the event has not concluded, reported through
// IsPastEvent. Undecodable stored values degrade to empty, never to a
// failed request.
func (s *PastEventService) GetDetails(eventID string) (models.PastEventRecord, error) {
	if eventID == "" {
		return models.PastEventRecord{}, status.ErrInvalidInput
	}

	record, err := s.findRecord(eventID)
	if err != nil {
		return models.PastEventRecord{}, err
	}
	if record == nil {
		return models.PastEventRecord{EventID: eventID, IsPastEvent: false}, nil
	}

	return s.decodeRecord(eventID, record), nil
}

func (s *PastEventService) decodeRecord(eventID string, record *core.Record) models.PastEventRecord {
	details := models.PastEventRecord{
		EventID:      eventID,
		IsPastEvent:  true,
		EventDetails: record.GetString("event_details"),
	}

	photos, err := models.DecodePhotos(jsonFieldRaw(record, "photos"))
	if err != nil {
		slog.Warn("undecodable photos value", "event_id", eventID, "error", err)
	}
	details.Photos = photos

	winners, err := models.DecodeWinners(jsonFieldRaw(record, "winners"))
	if err != nil {
		slog.Warn("undecodable winners value", "event_id", eventID, "error", err)
	}
	details.Winners = winners

	feedback, err := models.DecodeFeedback(jsonFieldRaw(record, "feedback"))
	if err != nil {
		slog.Warn("undecodable feedback value", "event_id", eventID, "error", err)
	}
	details.Feedback = feedback

	return details
}

type PastEventInput struct {
	Photos       *json.RawMessage `json:"photos"`
	Winners      *json.RawMessage `json:"winners"`
	EventDetails *string          `json:"event_details"`
}

// SaveDetails upserts the past-event record. Only supplied fields are
// written; absent fields keep their stored value.
func (s *PastEventService) SaveDetails(eventID string, input PastEventInput) (models.PastEventRecord, error) {
	if eventID == "" {
		return models.PastEventRecord{}, status.ErrInvalidInput
	}

	if _, err := s.app.FindRecordById("events", eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PastEventRecord{}, status.ErrEventNotFound
		}
		return models.PastEventRecord{}, fmt.Errorf("find event: %w", err)
	}

	record, err := s.findRecord(eventID)
	if err != nil {
		return models.PastEventRecord{}, err
	}
	if record == nil {
		collection, err := s.app.FindCollectionByNameOrId("past_events")
		if err != nil {
			return models.PastEventRecord{}, fmt.Errorf("find past_events collection: %w", err)
		}
		record = core.NewRecord(collection)
		record.Set("event", eventID)
	}

	if input.Photos != nil {
		record.Set("photos", types.JSONRaw(*input.Photos))
	}
	if input.Winners != nil {
		record.Set("winners", types.JSONRaw(*input.Winners))
	}
	if input.EventDetails != nil {
		record.Set("event_details", *input.EventDetails)
	}

	if err := s.app.Save(record); err != nil {
		return models.PastEventRecord{}, fmt.Errorf("save past event record: %w", err)
	}

	return s.decodeRecord(eventID, record), nil
}

// AddFeedback records one feedback entry per participant per event; a later
// submission by the same participant overwrites the earlier one. Only
// confirmed registrants may leave feedback.
func (s *PastEventService) AddFeedback(eventID, participantID, text string) (models.FeedbackEntry, error) {
	if eventID == "" || participantID == "" || text == "" {
		return models.FeedbackEntry{}, status.ErrInvalidInput
	}

	registered, err := s.isRegistered(eventID, participantID)
	if err != nil {
		return models.FeedbackEntry{}, err
	}
	if !registered {
		return models.FeedbackEntry{}, status.ErrNotRegistered
	}

	entry := models.FeedbackEntry{
		ParticipantID: participantID,
		Feedback:      text,
		SubmittedAt:   types.NowDateTime().String(),
	}

	record, err := s.findRecord(eventID)
	if err != nil {
		return models.FeedbackEntry{}, err
	}
	if record == nil {
		collection, err := s.app.FindCollectionByNameOrId("past_events")
		if err != nil {
			return models.FeedbackEntry{}, fmt.Errorf("find past_events collection: %w", err)
		}
		record = core.NewRecord(collection)
		record.Set("event", eventID)
		record.Set("feedback", []models.FeedbackEntry{entry})
	} else {
		feedback, err := models.DecodeFeedback(jsonFieldRaw(record, "feedback"))
		if err != nil {
			slog.Warn("undecodable feedback value, resetting list", "event_id", eventID, "error", err)
			feedback = nil
		}
		record.Set("feedback", models.MergeFeedback(feedback, entry))
	}

	if err := s.app.Save(record); err != nil {
		return models.FeedbackEntry{}, fmt.Errorf("save feedback: %w", err)
	}

	return entry, nil
}

// isRegistered walks the registration to member chain for the participant,
// matching either the profile id or a legacy raw account id.
func (s *PastEventService) isRegistered(eventID, participantID string) (bool, error) {
	count := 0
	err := s.app.DB().
		Select("count(*)").
		From("registration_members m").
		InnerJoin("registrations r", dbx.NewExp("r.id = m.registration")).
		Where(dbx.And(
			dbx.HashExp{"r.event": eventID},
			dbx.HashExp{"m.participant": participantID},
		)).
		Row(&count)
	if err != nil {
		return false, fmt.Errorf("check registration membership: %w", err)
	}
	return count > 0, nil
}

// RegisteredFor describes one registration a participant belongs to, as
// input to the winner resolution.
type RegisteredFor struct {
	EventID          string
	Title            string
	RegistrationType string
	TeamName         string
}

// ResolveWonEvents matches a participant's registrations against decoded
// winner lists. Team entries win when the team name appears in the flat list
// or the team sub-list; individual entries win when the display name appears
// in the flat list or the individual sub-list.
func ResolveWonEvents(displayName string, registrations []RegisteredFor, winnersByEvent map[string]models.Winners) []models.WonEvent {
	won := []models.WonEvent{}
	for _, registration := range registrations {
		winners, ok := winnersByEvent[registration.EventID]
		if !ok || winners.IsEmpty() {
			continue
		}

		switch registration.RegistrationType {
		case models.RegistrationTypeTeam:
			if winners.HasTeam(registration.TeamName) {
				won = append(won, models.WonEvent{
					EventID:  registration.EventID,
					Title:    registration.Title,
					WonAs:    models.WonAsTeam,
					TeamName: registration.TeamName,
				})
			}
		default:
			if winners.HasIndividual(displayName) {
				won = append(won, models.WonEvent{
					EventID: registration.EventID,
					Title:   registration.Title,
					WonAs:   models.WonAsIndividual,
				})
			}
		}
	}
	return won
}

type registeredForRow struct {
	EventID          string `db:"event_id"`
	Title            string `db:"title"`
	RegistrationType string `db:"registration_type"`
	TeamName         string `db:"team_name"`
}

// WonEvents resolves which of the participant's registered events they won,
// annotated with how the win was earned.
func (s *PastEventService) WonEvents(userID string) ([]models.WonEvent, error) {
	if userID == "" {
		return nil, status.ErrInvalidInput
	}

	profile, err := s.app.FindFirstRecordByFilter(
		"participant_profiles",
		"user_id = {:user}",
		dbx.Params{"user": userID},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	rows := []registeredForRow{}
	err = s.app.DB().
		Select(
			"e.id AS event_id",
			"e.name AS title",
			"r.registration_type",
			"r.team_name",
		).
		From("registration_members m").
		InnerJoin("registrations r", dbx.NewExp("r.id = m.registration")).
		InnerJoin("events e", dbx.NewExp("e.id = r.event")).
		Where(dbx.Or(
			dbx.HashExp{"m.participant": profile.Id},
			dbx.HashExp{"m.participant": userID},
		)).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}

	registrations := make([]RegisteredFor, len(rows))
	winnersByEvent := map[string]models.Winners{}
	for i, row := range rows {
		registrations[i] = RegisteredFor{
			EventID:          row.EventID,
			Title:            row.Title,
			RegistrationType: row.RegistrationType,
			TeamName:         row.TeamName,
		}

		record, err := s.findRecord(row.EventID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}

		winners, err := models.DecodeWinners(jsonFieldRaw(record, "winners"))
		if err != nil {
			slog.Warn("undecodable winners value", "event_id", row.EventID, "error", err)
			continue
		}
		winnersByEvent[row.EventID] = winners
	}

	return ResolveWonEvents(profile.GetString("name"), registrations, winnersByEvent), nil
}
