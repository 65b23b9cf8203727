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
)

// WishlistService manages the (event, user) wishlist pairs and keeps the
// profile wishlist counter in step.
type WishlistService struct {
	app core.App
}

func NewWishlistService(app core.App) *WishlistService {
	return &WishlistService{app: app}
}

// Add inserts a wishlist entry. The pair is unique; adding an existing pair
// is a conflict.
func (s *WishlistService) Add(eventID, userID string) (models.WishlistEntry, error) {
	if eventID == "" || userID == "" {
		return models.WishlistEntry{}, status.ErrInvalidInput
	}

	if _, err := s.app.FindRecordById("events", eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WishlistEntry{}, status.ErrEventNotFound
		}
		return models.WishlistEntry{}, fmt.Errorf("find event: %w", err)
	}

	existing, err := s.findEntry(eventID, userID)
	if err != nil {
		return models.WishlistEntry{}, err
	}
	if existing != nil {
		return models.WishlistEntry{}, status.ErrAlreadyWishlisted
	}

	collection, err := s.app.FindCollectionByNameOrId("wishlist")
	if err != nil {
		return models.WishlistEntry{}, fmt.Errorf("find wishlist collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("event", eventID)
	record.Set("user_id", userID)

	if err := s.app.Save(record); err != nil {
		return models.WishlistEntry{}, fmt.Errorf("save wishlist entry: %w", err)
	}

	s.adjustProfileCounter(userID, 1)

	return wishlistEntryFromRecord(record), nil
}

// Remove deletes the entry for the pair, or reports it missing.
func (s *WishlistService) Remove(eventID, userID string) error {
	if eventID == "" || userID == "" {
		return status.ErrInvalidInput
	}

	record, err := s.findEntry(eventID, userID)
	if err != nil {
		return err
	}
	if record == nil {
		return status.ErrWishlistNotFound
	}

	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}

	s.adjustProfileCounter(userID, -1)

	return nil
}

// Check is a pure existence query; a missing pair is false, not an error.
func (s *WishlistService) Check(eventID, userID string) (bool, error) {
	if eventID == "" || userID == "" {
		return false, status.ErrInvalidInput
	}

	record, err := s.findEntry(eventID, userID)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

func (s *WishlistService) findEntry(eventID, userID string) (*core.Record, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"wishlist",
		"event = {:event} && user_id = {:user}",
		dbx.Params{"event": eventID, "user": userID},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find wishlist entry: %w", err)
	}
	return record, nil
}

// adjustProfileCounter bumps the profile's running wishlist count. Users
// without a profile yet simply have no counter to maintain; a failed bump is
// logged and swallowed since the wishlist write already succeeded.
func (s *WishlistService) adjustProfileCounter(userID string, delta int) {
	record, err := s.app.FindFirstRecordByFilter(
		"participant_profiles",
		"user_id = {:user}",
		dbx.Params{"user": userID},
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("wishlist counter lookup failed", "user_id", userID, "error", err)
		}
		return
	}

	count := record.GetInt("wishlist_count") + delta
	if count < 0 {
		count = 0
	}
	record.Set("wishlist_count", count)

	if err := s.app.Save(record); err != nil {
		slog.Warn("wishlist counter update failed", "user_id", userID, "error", err)
	}
}
