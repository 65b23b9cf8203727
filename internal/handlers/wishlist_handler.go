package handlers

import (
	"net/http"

	"event-hub/internal/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type WishlistHandler struct {
	app             *pocketbase.PocketBase
	wishlistService *services.WishlistService
}

func NewWishlistHandler(app *pocketbase.PocketBase, wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		app:             app,
		wishlistService: wishlistService,
	}
}

type wishlistRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// Add - insert a wishlist pair, conflict when it already exists
func (h *WishlistHandler) Add(e *core.RequestEvent) error {
	var req wishlistRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	entry, err := h.wishlistService.Add(req.EventID, req.UserID)
	if err != nil {
		return translateError("wishlist add", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"entry":   entry,
	})
}

// Check - pure existence query, absence is false not an error
func (h *WishlistHandler) Check(e *core.RequestEvent) error {
	var req wishlistRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	wishlisted, err := h.wishlistService.Check(req.EventID, req.UserID)
	if err != nil {
		return translateError("wishlist check", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"wishlisted": wishlisted,
	})
}

// Remove - delete the pair, not found when it never existed
func (h *WishlistHandler) Remove(e *core.RequestEvent) error {
	var req wishlistRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.wishlistService.Remove(req.EventID, req.UserID); err != nil {
		return translateError("wishlist remove", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
	})
}
