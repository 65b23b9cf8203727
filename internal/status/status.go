package status

import "errors"

var (
	ErrInvalidInput      = errors.New("request: missing or malformed field")
	ErrPendingExists     = errors.New("access request: pending request already exists")
	ErrAlreadyDecided    = errors.New("access request: request already decided")
	ErrRequestNotFound   = errors.New("access request: request not found")
	ErrEventNotFound     = errors.New("event: event not found")
	ErrProfileNotFound   = errors.New("participant: profile not found")
	ErrAlreadyWishlisted = errors.New("wishlist: entry already exists")
	ErrWishlistNotFound  = errors.New("wishlist: entry not found")
	ErrAlreadyRegistered = errors.New("registration: participant already registered")
	ErrEventFull         = errors.New("registration: event has no available spots")
	ErrNotRegistered     = errors.New("registration: participant is not registered")
)
