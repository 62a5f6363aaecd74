package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"spotmatch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo Store
}

// GetUserProfile retrieves a user profile by ID. A missing profile is
// reported as nil, not an error.
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// EnsureProfile returns the user's profile, creating a default row first if
// none exists yet. Check-in calls this so a user who has never filled in a
// profile can still appear at a venue.
func (ups *UserProfileService) EnsureProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := ups.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	defaultProfile := models.UserProfile{
		UserID:               userID,
		NotificationsEnabled: true,
		CreatedAt:            time.Now().UTC().Format(time.RFC3339),
	}
	err = ups.Dynamo.PutItemIfAbsent(ctx, models.UserProfilesTable, defaultProfile, "userId")
	if err != nil && !errors.Is(err, ErrConditionFailed) {
		return nil, fmt.Errorf("failed to create default profile for %s: %w", userID, err)
	}
	if errors.Is(err, ErrConditionFailed) {
		// Lost the race to a concurrent create; the row exists now.
		return ups.GetUserProfile(ctx, userID)
	}

	log.Printf("✅ Created default profile for %s", userID)
	return &defaultProfile, nil
}

// UpdateNotificationPreference flips the recipient preference flag that the
// notification dispatcher consults.
func (ups *UserProfileService) UpdateNotificationPreference(ctx context.Context, userID string, enabled bool) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	_, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable,
		"SET notificationsEnabled = :enabled",
		key,
		map[string]types.AttributeValue{
			":enabled": &types.AttributeValueMemberBOOL{Value: enabled},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification preference: %w", err)
	}
	return nil
}
