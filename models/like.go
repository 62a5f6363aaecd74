package models

type Like struct {
	LikerID   string  `dynamodbav:"likerId" json:"likerId"` // ✅ Partition Key
	LikedID   string  `dynamodbav:"likedId" json:"likedId"` // ✅ Sort Key, also GSI partition
	LikeID    string  `dynamodbav:"likeId" json:"likeId"`
	VenueID   string  `dynamodbav:"venueId" json:"venueId"`
	IsMatch   bool    `dynamodbav:"isMatch" json:"isMatch"`
	MatchID   *string `dynamodbav:"matchId,omitempty" json:"matchId,omitempty"` // set when matched
	CreatedAt string  `dynamodbav:"createdAt" json:"createdAt"`
}

// LikesTable is the DynamoDB table name for directed like edges
const LikesTable = "Likes"

// LikedIDIndex is the GSI for querying likes received by a user
const LikedIDIndex = "likedId-index"
