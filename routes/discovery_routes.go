package routes

import (
	"spotmatch_server/controllers"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up routes for who-is-here queries under /discovery
func RegisterDiscoveryRoutes(r *mux.Router, discoveryService *services.DiscoveryService) {
	controller := controllers.NewDiscoveryController(discoveryService)

	discoveryRouter := r.PathPrefix("/discovery").Subrouter()
	discoveryRouter.HandleFunc("", controller.HandleNearbyUsers).Methods("GET")
	discoveryRouter.HandleFunc("/{venueId}", controller.HandleUsersAtVenue).Methods("GET")
}
