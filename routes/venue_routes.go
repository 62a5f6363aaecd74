package routes

import (
	"spotmatch_server/controllers"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterVenueRoutes sets up routes for venue lookups under /venues
func RegisterVenueRoutes(r *mux.Router, venueService *services.VenueService) {
	controller := controllers.NewVenueController(venueService)

	venueRouter := r.PathPrefix("/venues").Subrouter()
	venueRouter.HandleFunc("", controller.HandleListVenues).Methods("GET")
	venueRouter.HandleFunc("/{venueId}", controller.HandleGetVenue).Methods("GET")
}
