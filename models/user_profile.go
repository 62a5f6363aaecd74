package models

// Presence records a user's current check-in. A user has at most one; it is
// replaced when they check in somewhere else and removed on checkout or
// expiry.
type Presence struct {
	VenueID     string  `dynamodbav:"venueId" json:"venueId"`
	VenueName   string  `dynamodbav:"venueName" json:"venueName"`
	CheckedInAt string  `dynamodbav:"checkedInAt" json:"checkedInAt"` // RFC3339
	Latitude    float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude   float64 `dynamodbav:"longitude" json:"longitude"`
}

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID               string    `dynamodbav:"userId" json:"userId"`
	Name                 string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Bio                  string    `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Gender               string    `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Age                  int       `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Photos               []string  `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	NotificationsEnabled bool      `dynamodbav:"notificationsEnabled" json:"notificationsEnabled"`
	Presence             *Presence `dynamodbav:"presence,omitempty" json:"presence,omitempty"`
	CreatedAt            string    `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// PublicProfile is the projection of a UserProfile shown to other users at
// the same venue.
type PublicProfile struct {
	UserID      string `json:"userId"`
	Name        string `json:"name,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         int    `json:"age,omitempty"`
	Photo       string `json:"photo,omitempty"`
	CheckedInAt string `json:"checkedInAt,omitempty"`
}

// Public projects the profile down to the attributes other users may see.
func (p UserProfile) Public() PublicProfile {
	pub := PublicProfile{
		UserID: p.UserID,
		Name:   p.Name,
		Gender: p.Gender,
		Age:    p.Age,
	}
	if len(p.Photos) > 0 {
		pub.Photo = p.Photos[0]
	}
	if p.Presence != nil {
		pub.CheckedInAt = p.Presence.CheckedInAt
	}
	return pub
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
