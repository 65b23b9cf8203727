package handlers

import (
	"net/http"

	"event-hub/internal/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AccessHandler struct {
	app           *pocketbase.PocketBase
	accessService *services.AccessService
}

func NewAccessHandler(app *pocketbase.PocketBase, accessService *services.AccessService) *AccessHandler {
	return &AccessHandler{
		app:           app,
		accessService: accessService,
	}
}

// Submit - create a pending access request for an admin
func (h *AccessHandler) Submit(e *core.RequestEvent) error {
	var req struct {
		AdminUserID string `json:"admin_user_id"`
		EventName   string `json:"event_name"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	request, err := h.accessService.Submit(req.AdminUserID, req.EventName)
	if err != nil {
		return translateError("submit access request", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"request": request,
	})
}

// List - list access requests, optionally filtered by status
func (h *AccessHandler) List(e *core.RequestEvent) error {
	statusFilter := e.Request.URL.Query().Get("status")

	requests, err := h.accessService.List(statusFilter)
	if err != nil {
		return translateError("list access requests", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"requests": requests,
		"total":    len(requests),
	})
}

// Get - fetch a single access request
func (h *AccessHandler) Get(e *core.RequestEvent) error {
	requestID := e.Request.PathValue("id")
	if requestID == "" {
		return apis.NewBadRequestError("Request ID is required", nil)
	}

	request, err := h.accessService.Get(requestID)
	if err != nil {
		return translateError("get access request", err)
	}

	return e.JSON(http.StatusOK, request)
}

// Decide - approve or reject a pending request
func (h *AccessHandler) Decide(e *core.RequestEvent) error {
	requestID := e.Request.PathValue("id")
	if requestID == "" {
		return apis.NewBadRequestError("Request ID is required", nil)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	request, warning, err := h.accessService.Decide(requestID, req.Status)
	if err != nil {
		return translateError("decide access request", err)
	}

	response := map[string]any{
		"success": true,
		"request": request,
	}
	if warning != "" {
		response["warning"] = warning
	}

	return e.JSON(http.StatusOK, response)
}

// CheckAccess - report whether the admin still holds skeleton access
func (h *AccessHandler) CheckAccess(e *core.RequestEvent) error {
	adminUserID := e.Request.URL.Query().Get("adminUserId")
	if adminUserID == "" {
		return apis.NewBadRequestError("adminUserId is required", nil)
	}

	result, err := h.accessService.CheckAccess(adminUserID)
	if err != nil {
		return translateError("check access", err)
	}

	return e.JSON(http.StatusOK, result)
}

// MyLatest - fetch the admin's most recent request regardless of status
func (h *AccessHandler) MyLatest(e *core.RequestEvent) error {
	adminUserID := e.Request.URL.Query().Get("adminUserId")
	if adminUserID == "" {
		return apis.NewBadRequestError("adminUserId is required", nil)
	}

	request, err := h.accessService.Latest(adminUserID)
	if err != nil {
		return translateError("latest access request", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"request": request,
	})
}
