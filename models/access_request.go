package models

import (
	"time"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AccessRequest maps an admin identity to an approval state for
// event-creation rights. A request is created pending and transitions exactly
// once to approved or rejected.
type AccessRequest struct {
	ID          string     `json:"id"`
	AdminUserID string     `json:"admin_user_id"`
	EventName   string     `json:"event_name"`
	Status      string     `json:"status"` // pending, approved, rejected
	RequestedAt time.Time  `json:"requested_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}
