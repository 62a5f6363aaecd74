package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"spotmatch_server/apperrors"
	"spotmatch_server/middleware"
	"spotmatch_server/services"
)

// UserProfileController struct
type UserProfileController struct {
	ProfileService *services.UserProfileService
}

// NewUserProfileController initializes the controller
func NewUserProfileController(profileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{ProfileService: profileService}
}

// HandleGetOwnProfile - fetch the caller's profile
func (c *UserProfileController) HandleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
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
	if profile == nil {
		WriteError(w, apperrors.NotFound("profile not found"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// HandleUpdateNotifications - flip the caller's notification preference
func (c *UserProfileController) HandleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	var request struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, apperrors.InvalidArg("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	if err := c.ProfileService.UpdateNotificationPreference(ctx, userID, request.Enabled); err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
