package models

// CheckInRequest is the body of POST /api/presence/checkin. The claimed
// coordinates are optional; when present both must be supplied and the
// check-in is rejected if they put the caller too far from the venue.
type CheckInRequest struct {
	VenueLatitude    float64  `json:"venueLatitude"`
	VenueLongitude   float64  `json:"venueLongitude"`
	Name             string   `json:"name"`
	Address          string   `json:"address,omitempty"`
	ClaimedLatitude  *float64 `json:"claimedLatitude,omitempty"`
	ClaimedLongitude *float64 `json:"claimedLongitude,omitempty"`
}

// ActionRequest is the body of POST /api/interactions/action.
type ActionRequest struct {
	TargetUserID string `json:"targetUserId"`
	VenueID      string `json:"venueId"`
	Action       string `json:"action"` // like, pass
}

// UnlikeRequest is the body of POST /api/interactions/unlike.
type UnlikeRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// ActionResult reports the outcome of a like/pass action.
type ActionResult struct {
	IsMatch bool   `json:"isMatch"`
	MatchID string `json:"matchId,omitempty"`
}

// ExpiryResult reports what a stale-presence sweep did.
type ExpiryResult struct {
	ExpiredCount  int `json:"expiredCount"`
	VenuesTouched int `json:"venuesTouched"`
}
