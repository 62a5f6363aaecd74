package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spotmatch_server/apperrors"
	"spotmatch_server/middleware"
	"spotmatch_server/models"
	"spotmatch_server/services"
)

// PresenceController struct
type PresenceController struct {
	PresenceService *services.PresenceService
	ProfileService  *services.UserProfileService
}

// NewPresenceController initializes the controller
func NewPresenceController(presenceService *services.PresenceService, profileService *services.UserProfileService) *PresenceController {
	return &PresenceController{PresenceService: presenceService, ProfileService: profileService}
}

// HandleCheckIn - check the caller in at a venue
func (c *PresenceController) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	var request models.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, apperrors.InvalidArg("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	venue, err := c.PresenceService.CheckIn(ctx, userID, request)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venue":   venue,
	})
}

// HandleCheckOut - clear the caller's check-in; a no-op if absent
func (c *PresenceController) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	if err := c.PresenceService.CheckOut(ctx, userID); err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// HandleGetPresence - report where the caller is currently checked in
func (c *PresenceController) HandleGetPresence(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	profile, err := c.ProfileService.GetUserProfile(ctx, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	var presence *models.Presence
	if profile != nil {
		presence = profile.Presence
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"presence": presence,
	})
}

// HandleExpireStale - run a stale-presence sweep on demand. The scheduler
// in main drives the periodic sweeps; this endpoint exists for operations.
func (c *PresenceController) HandleExpireStale(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	result, err := c.PresenceService.ExpireStale(ctx, time.Now().UTC())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
