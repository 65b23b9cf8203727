package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"event-hub/internal/status"
	"event-hub/monitoring"

	"github.com/pocketbase/pocketbase/apis"
)

// translateError maps service errors onto the response taxonomy: invalid
// input 400, forbidden 403, missing 404, uniqueness/state violations 409,
// and everything else a logged 500 that never leaks the raw store failure.
func translateError(action string, err error) error {
	switch {
	case errors.Is(err, status.ErrInvalidInput):
		return apis.NewBadRequestError("Missing or invalid field", err)
	case errors.Is(err, status.ErrNotRegistered):
		return apis.NewForbiddenError("Only registered participants may do this", err)
	case errors.Is(err, status.ErrEventNotFound),
		errors.Is(err, status.ErrProfileNotFound),
		errors.Is(err, status.ErrRequestNotFound),
		errors.Is(err, status.ErrWishlistNotFound):
		return apis.NewNotFoundError(err.Error(), err)
	case errors.Is(err, status.ErrPendingExists),
		errors.Is(err, status.ErrAlreadyDecided),
		errors.Is(err, status.ErrAlreadyWishlisted),
		errors.Is(err, status.ErrAlreadyRegistered),
		errors.Is(err, status.ErrEventFull):
		return apis.NewApiError(http.StatusConflict, err.Error(), err)
	default:
		slog.Error("store operation failed", "action", action, "error", err)
		monitoring.TrackStoreError(action)
		return apis.NewApiError(http.StatusInternalServerError, "The data store is unavailable", nil)
	}
}
