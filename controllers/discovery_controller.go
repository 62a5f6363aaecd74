package controllers

import (
	"context"
	"net/http"

	"spotmatch_server/apperrors"
	"spotmatch_server/middleware"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// DiscoveryController struct
type DiscoveryController struct {
	DiscoveryService *services.DiscoveryService
}

// NewDiscoveryController initializes the controller
func NewDiscoveryController(discoveryService *services.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: discoveryService}
}

// HandleNearbyUsers - list other users at the caller's current venue
func (c *DiscoveryController) HandleNearbyUsers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	venueID, err := c.DiscoveryService.CurrentVenueFor(ctx, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	users, err := c.DiscoveryService.ListUsersAtVenue(ctx, venueID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venueId": venueID,
		"users":   users,
	})
}

// HandleUsersAtVenue - list other users at a specific venue
func (c *DiscoveryController) HandleUsersAtVenue(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	venueID := mux.Vars(r)["venueId"]

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	users, err := c.DiscoveryService.ListUsersAtVenue(ctx, venueID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venueId": venueID,
		"users":   users,
	})
}
