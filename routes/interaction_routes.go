package routes

import (
	"spotmatch_server/controllers"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up routes for like/match operations under /interactions
func RegisterInteractionRoutes(r *mux.Router, interactionService *services.InteractionService) {
	controller := controllers.NewInteractionController(interactionService)

	interactionRouter := r.PathPrefix("/interactions").Subrouter()
	interactionRouter.HandleFunc("/action", controller.HandleAction).Methods("POST")
	interactionRouter.HandleFunc("/unlike", controller.HandleUnlike).Methods("POST")
	interactionRouter.HandleFunc("/likes", controller.HandleGetLikes).Methods("GET")
	interactionRouter.HandleFunc("/matches", controller.HandleGetMatches).Methods("GET")
}
