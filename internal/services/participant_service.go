package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"event-hub/internal/status"
	"event-hub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// ParticipantService resolves account ids to profiles and serves the
// participant-facing projections: registered, wishlisted, and registrant
// listings.
type ParticipantService struct {
	app   core.App
	cache *RegistrantCache
}

func NewParticipantService(app core.App, cache *RegistrantCache) *ParticipantService {
	return &ParticipantService{app: app, cache: cache}
}

// findProfileByUserID resolves the 1:1 account-id to profile mapping.
func (s *ParticipantService) findProfileByUserID(userID string) (*core.Record, error) {
	record, err := s.app.FindFirstRecordByFilter(
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
	return record, nil
}

// GetProfile returns the participant profile for an account id.
func (s *ParticipantService) GetProfile(userID string) (models.ParticipantProfile, error) {
	if userID == "" {
		return models.ParticipantProfile{}, status.ErrInvalidInput
	}
	record, err := s.findProfileByUserID(userID)
	if err != nil {
		return models.ParticipantProfile{}, err
	}
	return profileFromRecord(record), nil
}

type ProfileInput struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Department     string `json:"department"`
	RegistrationNo string `json:"registration_no"`
	Year           int    `json:"year"`
}

// UpsertProfile creates the profile on first submission and updates it in
// place afterwards. Year is bounded to 1-6.
func (s *ParticipantService) UpsertProfile(input ProfileInput) (models.ParticipantProfile, error) {
	if input.UserID == "" || input.Name == "" {
		return models.ParticipantProfile{}, status.ErrInvalidInput
	}
	if input.Year != 0 && (input.Year < 1 || input.Year > 6) {
		return models.ParticipantProfile{}, status.ErrInvalidInput
	}

	record, err := s.findProfileByUserID(input.UserID)
	if errors.Is(err, status.ErrProfileNotFound) {
		collection, err := s.app.FindCollectionByNameOrId("participant_profiles")
		if err != nil {
			return models.ParticipantProfile{}, fmt.Errorf("find participant_profiles collection: %w", err)
		}
		record = core.NewRecord(collection)
		record.Set("user_id", input.UserID)
	} else if err != nil {
		return models.ParticipantProfile{}, err
	}

	record.Set("name", input.Name)
	record.Set("institution", input.Institution)
	record.Set("department", input.Department)
	record.Set("registration_no", input.RegistrationNo)
	if input.Year != 0 {
		record.Set("year", input.Year)
	}

	if err := s.app.Save(record); err != nil {
		return models.ParticipantProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profileFromRecord(record), nil
}

// CheckRegistration reports the participant's standing for one event,
// distinguishing a missing registration record from a record the participant
// is simply not a member of. Legacy member rows may hold the raw account id
// instead of the profile id, so both are matched.
func (s *ParticipantService) CheckRegistration(eventID, userID string) (models.RegistrationStatus, error) {
	if eventID == "" || userID == "" {
		return models.RegistrationStatus{}, status.ErrInvalidInput
	}

	profile, err := s.findProfileByUserID(userID)
	if err != nil {
		return models.RegistrationStatus{}, err
	}

	registrations, err := s.app.FindRecordsByFilter(
		"registrations",
		"event = {:event}",
		"",
		0,
		0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return models.RegistrationStatus{}, fmt.Errorf("find registrations: %w", err)
	}
	if len(registrations) == 0 {
		return models.RegistrationStatus{}, nil
	}

	result := models.RegistrationStatus{HasRecord: true}
	for _, registration := range registrations {
		member, err := s.app.FindFirstRecordByFilter(
			"registration_members",
			"registration = {:registration} && (participant = {:profile} || participant = {:user})",
			dbx.Params{"registration": registration.Id, "profile": profile.Id, "user": userID},
		)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return models.RegistrationStatus{}, fmt.Errorf("find registration member: %w", err)
		}
		if member != nil {
			result.IsRegistered = true
			result.RegistrationID = registration.Id
			result.TeamName = registration.GetString("team_name")
			break
		}
	}

	return result, nil
}

type RegisterInput struct {
	EventID          string   `json:"event_id"`
	UserID           string   `json:"user_id"`
	RegistrationType string   `json:"registration_type"`
	TeamName         string   `json:"team_name"`
	Members          []string `json:"members"` // additional account ids for team entries
}

// Register creates a registration with its member rows, enforcing capacity
// and duplicate membership, and bumps the running counters. The writes run in
// a single transaction, so a failed member or counter write leaves nothing
// behind.
func (s *ParticipantService) Register(ctx context.Context, input RegisterInput) (models.Registration, error) {
	if input.EventID == "" || input.UserID == "" {
		return models.Registration{}, status.ErrInvalidInput
	}
	if input.RegistrationType != models.RegistrationTypeIndividual && input.RegistrationType != models.RegistrationTypeTeam {
		return models.Registration{}, status.ErrInvalidInput
	}
	if input.RegistrationType == models.RegistrationTypeTeam && input.TeamName == "" {
		return models.Registration{}, status.ErrInvalidInput
	}
	if input.RegistrationType == models.RegistrationTypeIndividual && len(input.Members) > 0 {
		return models.Registration{}, status.ErrInvalidInput
	}

	eventRecord, err := s.app.FindRecordById("events", input.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Registration{}, status.ErrEventNotFound
	}
	if err != nil {
		return models.Registration{}, fmt.Errorf("find event: %w", err)
	}

	// resolve every member to a profile up front
	memberIDs := append([]string{input.UserID}, input.Members...)
	profiles := make([]*core.Record, 0, len(memberIDs))
	seen := map[string]bool{}
	for _, accountID := range memberIDs {
		if seen[accountID] {
			continue
		}
		seen[accountID] = true

		profile, err := s.findProfileByUserID(accountID)
		if err != nil {
			return models.Registration{}, err
		}
		profiles = append(profiles, profile)
	}

	for _, profile := range profiles {
		standing, err := s.CheckRegistration(input.EventID, profile.GetString("user_id"))
		if err != nil {
			return models.Registration{}, err
		}
		if standing.IsRegistered {
			return models.Registration{}, status.ErrAlreadyRegistered
		}
	}

	capacity := eventRecord.GetInt("capacity")
	registered := eventRecord.GetInt("registered_count")
	if capacity > 0 && registered+len(profiles) > capacity {
		return models.Registration{}, status.ErrEventFull
	}

	var registration *core.Record

	err = s.app.RunInTransaction(func(txApp core.App) error {
		registrationsCol, err := txApp.FindCollectionByNameOrId("registrations")
		if err != nil {
			return fmt.Errorf("find registrations collection: %w", err)
		}
		membersCol, err := txApp.FindCollectionByNameOrId("registration_members")
		if err != nil {
			return fmt.Errorf("find registration_members collection: %w", err)
		}

		registration = core.NewRecord(registrationsCol)
		registration.Set("event", input.EventID)
		registration.Set("registration_type", input.RegistrationType)
		registration.Set("team_name", input.TeamName)

		if err := txApp.Save(registration); err != nil {
			return fmt.Errorf("save registration: %w", err)
		}

		for _, profile := range profiles {
			member := core.NewRecord(membersCol)
			member.Set("registration", registration.Id)
			member.Set("participant", profile.Id)
			if err := txApp.Save(member); err != nil {
				return fmt.Errorf("save registration member: %w", err)
			}

			profile.Set("registered_count", profile.GetInt("registered_count")+1)
			if err := txApp.Save(profile); err != nil {
				return fmt.Errorf("update profile registered count: %w", err)
			}
		}

		eventRecord.Set("registered_count", registered+len(profiles))
		if err := txApp.Save(eventRecord); err != nil {
			return fmt.Errorf("update event registered count: %w", err)
		}

		return nil
	})
	if err != nil {
		return models.Registration{}, err
	}

	s.cache.Invalidate(ctx, input.EventID)

	return models.Registration{
		ID:               registration.Id,
		EventID:          input.EventID,
		RegistrationType: input.RegistrationType,
		TeamName:         input.TeamName,
	}, nil
}

type eventSummaryRow struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	StartDate       string `db:"start_date"`
	EndDate         string `db:"end_date"`
	Description     string `db:"description"`
	Caption         string `db:"caption"`
	ImageURL        string `db:"image_url"`
	Capacity        int    `db:"capacity"`
	RegisteredCount int    `db:"registered_count"`
	WishlistedAt    string `db:"wishlisted_at"`
}

func (r eventSummaryRow) toSummary() models.EventSummary {
	return models.EventSummary{
		ID:              r.ID,
		Title:           r.Title,
		StartDate:       parseDatePtr(r.StartDate),
		EndDate:         parseDatePtr(r.EndDate),
		Description:     r.Description,
		Caption:         r.Caption,
		ImageURL:        r.ImageURL,
		Capacity:        r.Capacity,
		RegisteredCount: r.RegisteredCount,
		WishlistedAt:    parseDatePtr(r.WishlistedAt),
	}
}

// RegisteredEvents lists the events the participant is a member of, in the
// fixed summary projection.
func (s *ParticipantService) RegisteredEvents(userID string) ([]models.EventSummary, error) {
	if userID == "" {
		return nil, status.ErrInvalidInput
	}

	profile, err := s.findProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	rows := []eventSummaryRow{}
	err = s.app.DB().
		Select(
			"e.id",
			"e.name AS title",
			"e.start_date",
			"e.end_date",
			"e.description",
			"e.caption",
			"e.image_url",
			"e.capacity",
			"e.registered_count",
		).
		From("registration_members m").
		InnerJoin("registrations r", dbx.NewExp("r.id = m.registration")).
		InnerJoin("events e", dbx.NewExp("e.id = r.event")).
		Where(dbx.Or(
			dbx.HashExp{"m.participant": profile.Id},
			dbx.HashExp{"m.participant": userID},
		)).
		OrderBy("e.start_date ASC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("query registered events: %w", err)
	}

	summaries := make([]models.EventSummary, len(rows))
	for i, row := range rows {
		summaries[i] = row.toSummary()
	}
	return summaries, nil
}

// WishlistedEvents lists the participant's wishlisted events with the
// wishlist timestamp attached.
func (s *ParticipantService) WishlistedEvents(userID string) ([]models.EventSummary, error) {
	if userID == "" {
		return nil, status.ErrInvalidInput
	}

	if _, err := s.findProfileByUserID(userID); err != nil {
		return nil, err
	}

	rows := []eventSummaryRow{}
	err := s.app.DB().
		Select(
			"e.id",
			"e.name AS title",
			"e.start_date",
			"e.end_date",
			"e.description",
			"e.caption",
			"e.image_url",
			"e.capacity",
			"e.registered_count",
			"w.created AS wishlisted_at",
		).
		From("wishlist w").
		InnerJoin("events e", dbx.NewExp("e.id = w.event")).
		Where(dbx.HashExp{"w.user_id": userID}).
		OrderBy("w.created DESC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("query wishlisted events: %w", err)
	}

	summaries := make([]models.EventSummary, len(rows))
	for i, row := range rows {
		summaries[i] = row.toSummary()
	}
	return summaries, nil
}

type registrantRow struct {
	ProfileID      string `db:"profile_id"`
	Name           string `db:"name"`
	Institution    string `db:"institution"`
	Department     string `db:"department"`
	RegistrationNo string `db:"registration_no"`
	TeamName       string `db:"team_name"`
}

// RegisteredUsers lists everyone registered for an event. Results are served
// from the registrants cache when fresh; the cache is refilled on miss and
// invalidated whenever a registration for the event changes.
func (s *ParticipantService) RegisteredUsers(ctx context.Context, eventID string) ([]models.Registrant, error) {
	if eventID == "" {
		return nil, status.ErrInvalidInput
	}

	if _, err := s.app.FindRecordById("events", eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	if registrants, ok := s.cache.Get(ctx, eventID); ok {
		return registrants, nil
	}

	rows := []registrantRow{}
	err := s.app.DB().
		Select(
			"p.id AS profile_id",
			"p.name",
			"p.institution",
			"p.department",
			"p.registration_no",
			"r.team_name",
		).
		From("registration_members m").
		InnerJoin("registrations r", dbx.NewExp("r.id = m.registration")).
		InnerJoin("participant_profiles p", dbx.NewExp("p.id = m.participant")).
		Where(dbx.HashExp{"r.event": eventID}).
		OrderBy("p.name ASC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("query registrants: %w", err)
	}

	registrants := make([]models.Registrant, len(rows))
	for i, row := range rows {
		registrants[i] = models.Registrant{
			ProfileID:      row.ProfileID,
			Name:           row.Name,
			Institution:    row.Institution,
			Department:     row.Department,
			RegistrationNo: row.RegistrationNo,
			TeamName:       row.TeamName,
		}
	}

	s.cache.Set(ctx, eventID, registrants)

	return registrants, nil
}
