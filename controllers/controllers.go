package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"spotmatch_server/apperrors"
)

// RequestTimeout bounds every store-touching request. Once it fires the
// caller sees a failure and must not assume the operation completed.
const RequestTimeout = 30 * time.Second

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// WriteError maps a service error onto an HTTP status and body. Typed
// errors produce actionable messages; anything else is an internal error
// and the details stay in the logs.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Printf("❌ Internal error: %v", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeInvalidArgument, apperrors.CodeTooFar:
		status = http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInternal:
		log.Printf("❌ Internal error: %v", err)
		WriteJSON(w, status, map[string]string{"error": "Something went wrong"})
		return
	}

	body := map[string]interface{}{
		"error":   string(appErr.Code),
		"message": appErr.Message,
	}
	if appErr.Code == apperrors.CodeTooFar {
		body["distance"] = appErr.Distance
	}
	WriteJSON(w, status, body)
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the SpotMatch API"})
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
