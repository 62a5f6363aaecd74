package controllers

import (
	"context"
	"net/http"

	"spotmatch_server/apperrors"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// VenueController struct
type VenueController struct {
	VenueService *services.VenueService
}

// NewVenueController initializes the controller
func NewVenueController(venueService *services.VenueService) *VenueController {
	return &VenueController{VenueService: venueService}
}

// HandleGetVenue - fetch one venue with its live occupant count
func (c *VenueController) HandleGetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	venue, err := c.VenueService.GetVenue(ctx, venueID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if venue == nil {
		WriteError(w, apperrors.NotFound("venue not found"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venue":   venue,
	})
}

// HandleListVenues - list all known venues
func (c *VenueController) HandleListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	venues, err := c.VenueService.ListVenues(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venues":  venues,
	})
}
