package models

import (
	"time"
)

type Event struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Caption          string     `json:"caption"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	ImageURL         string     `json:"image_url"`
	Capacity         int        `json:"capacity"`
	RegisteredCount  int        `json:"registered_count"`
	RegistrationType string     `json:"registration_type"` // individual, team
	Coordinators     []string   `json:"coordinators"`
	Staff            []string   `json:"staff"`
}

// IsSkeleton reports whether the event is still the bare row created when an
// access request was approved: name only, description and both dates empty.
func (e Event) IsSkeleton() bool {
	return e.Description == "" && e.StartDate == nil && e.EndDate == nil
}

// EventSummary is the fixed projection returned by the per-participant event
// listings (registered, wishlisted).
type EventSummary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Description     string     `json:"description"`
	Caption         string     `json:"caption"`
	ImageURL        string     `json:"image_url"`
	Capacity        int        `json:"capacity"`
	RegisteredCount int        `json:"registered_count"`
	WishlistedAt    *time.Time `json:"wishlisted_at,omitempty"`
}

type EventStats struct {
	TotalEvents     int `json:"total_events"`
	LiveEvents      int `json:"live_events"`
	UpcomingEvents  int `json:"upcoming_events"`
	PastEvents      int `json:"past_events"`
	TotalRegistered int `json:"total_registered"`
}

type RegistrationInfo struct {
	EventID         string `json:"event_id"`
	Capacity        *int   `json:"capacity"`
	RegisteredCount int    `json:"registered_count"`
	AvailableSpots  *int   `json:"available_spots"`
	IsFull          bool   `json:"is_full"`
}
