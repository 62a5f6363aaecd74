package models

type Match struct {
	MatchID             string `dynamodbav:"matchId" json:"matchId"`
	User1ID             string `dynamodbav:"user1Id" json:"user1Id"`
	User2ID             string `dynamodbav:"user2Id" json:"user2Id"`
	VenueID             string `dynamodbav:"venueId" json:"venueId"` // where the second like was sent
	Status              string `dynamodbav:"status" json:"status"`   // active, archived
	MatchedAt           string `dynamodbav:"matchedAt" json:"matchedAt"`
	ConversationStarted bool   `dynamodbav:"conversationStarted" json:"conversationStarted"`
	FirstMessageBy      string `dynamodbav:"firstMessageBy,omitempty" json:"firstMessageBy,omitempty"`
	LastActivity        string `dynamodbav:"lastActivity,omitempty" json:"lastActivity,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
