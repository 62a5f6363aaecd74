package models

type Venue struct {
	VenueID      string  `dynamodbav:"venueId" json:"venueId"` // "%.6f_%.6f" of lat/lon
	Name         string  `dynamodbav:"name" json:"name"`
	Address      string  `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Latitude     float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude    float64 `dynamodbav:"longitude" json:"longitude"`
	ActiveCount  int     `dynamodbav:"activeCount" json:"activeCount"`
	LastActivity string  `dynamodbav:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt    string  `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// VenuesTable is the DynamoDB table name for venues
const VenuesTable = "Venues"
