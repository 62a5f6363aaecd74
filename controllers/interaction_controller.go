package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"spotmatch_server/apperrors"
	"spotmatch_server/middleware"
	"spotmatch_server/models"
	"spotmatch_server/services"
)

// InteractionController struct
type InteractionController struct {
	InteractionService *services.InteractionService
}

// NewInteractionController initializes the controller
func NewInteractionController(service *services.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: service}
}

// HandleAction - like or pass on another user at a venue
func (c *InteractionController) HandleAction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	var request models.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, apperrors.InvalidArg("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	result, err := c.InteractionService.ProcessAction(ctx, userID, request.TargetUserID, request.VenueID, request.Action)
	if err != nil {
		WriteError(w, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"isMatch": result.IsMatch,
	}
	if result.MatchID != "" {
		response["matchId"] = result.MatchID
	}
	WriteJSON(w, http.StatusOK, response)
}

// HandleUnlike - retract a like, tearing down the match if one existed
func (c *InteractionController) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	var request models.UnlikeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, apperrors.InvalidArg("invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	if err := c.InteractionService.Unlike(ctx, userID, request.TargetUserID); err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// HandleGetLikes - pending likes received by the caller
func (c *InteractionController) HandleGetLikes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	likes, err := c.InteractionService.GetLikesReceived(ctx, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"likes":   likes,
	})
}

// HandleGetMatches - the caller's current matches
func (c *InteractionController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	matches, err := c.InteractionService.GetMatches(ctx, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": matches,
	})
}
