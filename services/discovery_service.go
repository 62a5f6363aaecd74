package services

import (
	"context"
	"fmt"
	"time"

	"spotmatch_server/apperrors"
	"spotmatch_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DiscoveryService answers "who else is here right now". It reads the
// presence data the PresenceService maintains; check-ins past the TTL that
// the sweep has not reaped yet are filtered out rather than shown.
type DiscoveryService struct {
	Dynamo   Store
	Profiles *UserProfileService

	TTL time.Duration // 0 means DefaultPresenceTTL
}

func (ds *DiscoveryService) ttl() time.Duration {
	if ds.TTL > 0 {
		return ds.TTL
	}
	return DefaultPresenceTTL
}

// CurrentVenueFor resolves the venue the caller is checked in at.
func (ds *DiscoveryService) CurrentVenueFor(ctx context.Context, userID string) (string, error) {
	profile, err := ds.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil || profile.Presence == nil {
		return "", apperrors.NotFound("you are not checked in anywhere")
	}
	return profile.Presence.VenueID, nil
}

// ListUsersAtVenue returns the public projections of everyone currently
// checked in at the venue, excluding the caller. Order is storage order;
// there is no pagination, which is fine at per-venue crowd sizes.
func (ds *DiscoveryService) ListUsersAtVenue(ctx context.Context, venueID, excludeUserID string) ([]models.PublicProfile, error) {
	if venueID == "" {
		return nil, apperrors.InvalidArg("venueId is required")
	}

	var users []models.UserProfile
	err := ds.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable,
		"presence.venueId = :venueId AND userId <> :self",
		map[string]types.AttributeValue{
			":venueId": &types.AttributeValueMemberS{Value: venueID},
			":self":    &types.AttributeValueMemberS{Value: excludeUserID},
		}, nil, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users at venue %s: %w", venueID, err)
	}

	now := time.Now().UTC()
	ttl := ds.ttl()

	profiles := make([]models.PublicProfile, 0, len(users))
	for _, user := range users {
		if user.Presence == nil {
			continue
		}
		if isStale(user.Presence.CheckedInAt, now, ttl) {
			continue
		}
		profiles = append(profiles, user.Public())
	}
	return profiles, nil
}
