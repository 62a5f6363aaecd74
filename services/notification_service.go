package services

import (
	"context"
	"log"
)

// Broadcaster is the slice of the socket.io server the services need for
// fan-out. Keeping it an interface lets tests record emits.
type Broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// UserRoom is the socket.io room a user's devices join for notifications.
func UserRoom(userID string) string {
	return "user:" + userID
}

// VenueRoom is the socket.io room clients join to watch a venue's occupancy.
func VenueRoom(venueID string) string {
	return "venue:" + venueID
}

// NotificationService decides whether an event becomes a notification and
// hands it to the realtime layer. Delivery is best-effort throughout:
// nothing here returns an error, because a lost notification must never
// unwind the operation that triggered it.
type NotificationService struct {
	Profiles *UserProfileService
	Events   Broadcaster // optional; nil disables delivery
}

// NotifyMatchCreated tells recipientID they just matched with otherID.
func (ns *NotificationService) NotifyMatchCreated(ctx context.Context, recipientID, otherID, matchID string) {
	ns.dispatch(ctx, recipientID, map[string]interface{}{
		"type":    "match_created",
		"title":   "It's a match!",
		"body":    "You matched with someone at your venue. Say hi!",
		"matchId": matchID,
		"userId":  otherID,
	})
}

// NotifyMatchUndone tells recipientID that otherID retracted their like and
// the match is gone.
func (ns *NotificationService) NotifyMatchUndone(ctx context.Context, recipientID, otherID string) {
	ns.dispatch(ctx, recipientID, map[string]interface{}{
		"type":   "match_undone",
		"title":  "Match removed",
		"body":   "One of your matches is no longer available.",
		"userId": otherID,
	})
}

func (ns *NotificationService) dispatch(ctx context.Context, recipientID string, payload map[string]interface{}) {
	profile, err := ns.Profiles.GetUserProfile(ctx, recipientID)
	if err != nil {
		log.Printf("⚠️ Skipping notification for %s, profile lookup failed: %v", recipientID, err)
		return
	}
	if profile == nil || !profile.NotificationsEnabled {
		log.Printf("🔕 Notifications disabled for %s, suppressing %v", recipientID, payload["type"])
		return
	}
	if ns.Events == nil {
		return
	}

	ns.Events.BroadcastToRoom("/", UserRoom(recipientID), "notification", payload)
	log.Printf("🔔 Sent %v notification to %s", payload["type"], recipientID)
}
