package routes

import (
	"spotmatch_server/controllers"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterPresenceRoutes sets up routes for check-in/checkout operations under /presence
func RegisterPresenceRoutes(r *mux.Router, presenceService *services.PresenceService, profileService *services.UserProfileService) {
	controller := controllers.NewPresenceController(presenceService, profileService)

	presenceRouter := r.PathPrefix("/presence").Subrouter()
	presenceRouter.HandleFunc("/checkin", controller.HandleCheckIn).Methods("POST")
	presenceRouter.HandleFunc("/checkout", controller.HandleCheckOut).Methods("POST")
	presenceRouter.HandleFunc("/me", controller.HandleGetPresence).Methods("GET")
	presenceRouter.HandleFunc("/expire", controller.HandleExpireStale).Methods("POST")
}
