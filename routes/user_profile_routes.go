package routes

import (
	"spotmatch_server/controllers"
	"spotmatch_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /profile
func RegisterUserProfileRoutes(r *mux.Router, profileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(profileService)

	profileRouter := r.PathPrefix("/profile").Subrouter()
	profileRouter.HandleFunc("/me", controller.HandleGetOwnProfile).Methods("GET")
	profileRouter.HandleFunc("/notifications", controller.HandleUpdateNotifications).Methods("PATCH")
}
