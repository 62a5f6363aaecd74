package models

// ✅ Interaction actions
const (
	ActionLike = "like"
	ActionPass = "pass"
)

// ✅ Match statuses
const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)

// ✅ Input limits for check-in requests
const (
	MaxVenueNameLength = 200
	MaxAddressLength   = 500
	MaxVenueIDLength   = 100
)
