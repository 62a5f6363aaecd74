package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"spotmatch_server/apperrors"
	"spotmatch_server/models"
	"spotmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// DefaultPresenceTTL is how long a check-in stays live without activity.
	DefaultPresenceTTL = 30 * time.Minute
	// DefaultMaxCheckInDistanceMeters is the proximity limit when the caller
	// supplies their own coordinates.
	DefaultMaxCheckInDistanceMeters = 100.0
)

// PresenceService owns the single check-in each user may hold and keeps the
// venue occupant counters in step as users arrive, move and leave.
type PresenceService struct {
	Dynamo   Store
	Venues   *VenueService
	Profiles *UserProfileService

	TTL                      time.Duration // 0 means DefaultPresenceTTL
	MaxCheckInDistanceMeters float64       // 0 means DefaultMaxCheckInDistanceMeters
}

func (ps *PresenceService) ttl() time.Duration {
	if ps.TTL > 0 {
		return ps.TTL
	}
	return DefaultPresenceTTL
}

func (ps *PresenceService) maxDistance() float64 {
	if ps.MaxCheckInDistanceMeters > 0 {
		return ps.MaxCheckInDistanceMeters
	}
	return DefaultMaxCheckInDistanceMeters
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func validateCheckIn(req models.CheckInRequest) error {
	if req.VenueLatitude < -90 || req.VenueLatitude > 90 {
		return apperrors.InvalidArg("venue latitude must be between -90 and 90")
	}
	if req.VenueLongitude < -180 || req.VenueLongitude > 180 {
		return apperrors.InvalidArg("venue longitude must be between -180 and 180")
	}
	if req.Name == "" {
		return apperrors.InvalidArg("venue name is required")
	}
	if len(req.Name) > models.MaxVenueNameLength {
		return apperrors.InvalidArg("venue name is too long")
	}
	if len(req.Address) > models.MaxAddressLength {
		return apperrors.InvalidArg("venue address is too long")
	}
	if (req.ClaimedLatitude == nil) != (req.ClaimedLongitude == nil) {
		return apperrors.InvalidArg("claimed coordinates must include both latitude and longitude")
	}
	return nil
}

// CheckIn places the user at the venue described by the request, replacing
// any previous check-in. The old venue's decrement, the new venue's
// increment and the presence write go through a single transaction so a
// crash cannot strand a count.
//
// The proximity check runs only when the caller volunteers its own
// coordinates; the claim is not verified against anything server-side.
func (ps *PresenceService) CheckIn(ctx context.Context, userID string, req models.CheckInRequest) (*models.Venue, error) {
	if err := validateCheckIn(req); err != nil {
		return nil, err
	}

	if req.ClaimedLatitude != nil && req.ClaimedLongitude != nil {
		distance := utils.CalculateDistance(*req.ClaimedLatitude, *req.ClaimedLongitude, req.VenueLatitude, req.VenueLongitude)
		if distance > ps.maxDistance() {
			return nil, apperrors.TooFar(distance,
				fmt.Sprintf("You are %.0f meters from this venue; get within %.0f meters to check in", distance, ps.maxDistance()))
		}
	}

	profile, err := ps.Profiles.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	venueID := utils.VenueIDFor(req.VenueLatitude, req.VenueLongitude)
	if _, err := ps.Venues.GetOrCreateVenue(ctx, venueID, req.Name, req.Address, req.VenueLatitude, req.VenueLongitude); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	presence := models.Presence{
		VenueID:     venueID,
		VenueName:   req.Name,
		CheckedInAt: now,
		Latitude:    req.VenueLatitude,
		Longitude:   req.VenueLongitude,
	}
	presenceAttr, err := attributevalue.Marshal(presence)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presence: %w", err)
	}

	prior := profile.Presence

	// Re-checking in at the current venue just refreshes the timestamp;
	// the occupant count does not move.
	if prior != nil && prior.VenueID == venueID {
		if _, err := ps.Dynamo.UpdateItem(ctx, models.UserProfilesTable,
			"SET presence = :presence", userKey(userID),
			map[string]types.AttributeValue{":presence": presenceAttr}, nil,
		); err != nil {
			return nil, fmt.Errorf("failed to refresh presence: %w", err)
		}
		return ps.Venues.GetVenue(ctx, venueID)
	}

	items := make([]types.TransactWriteItem, 0, 3)
	if prior != nil {
		items = append(items, occupancyDeltaItem(prior.VenueID, -1, now))
	}
	items = append(items, occupancyDeltaItem(venueID, 1, now))
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName:        aws.String(models.UserProfilesTable),
			Key:              userKey(userID),
			UpdateExpression: aws.String("SET presence = :presence"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":presence": presenceAttr,
			},
		},
	})

	if err := ps.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return nil, fmt.Errorf("check-in transaction failed: %w", err)
	}

	if prior != nil {
		if _, err := ps.Venues.SettleOccupancy(ctx, prior.VenueID); err != nil {
			log.Printf("⚠️ Failed to settle occupancy for %s after venue switch: %v", prior.VenueID, err)
		}
	}

	venue, err := ps.Venues.SettleOccupancy(ctx, venueID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ %s checked in at %s (%s), %d there now", userID, req.Name, venueID, venue.ActiveCount)
	return venue, nil
}

// CheckOut clears the user's presence and releases their spot at the venue.
// Checking out while not checked in anywhere is a no-op.
func (ps *PresenceService) CheckOut(ctx context.Context, userID string) error {
	profile, err := ps.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil || profile.Presence == nil {
		return nil
	}

	venueID := profile.Presence.VenueID
	now := time.Now().UTC().Format(time.RFC3339)

	items := []types.TransactWriteItem{
		occupancyDeltaItem(venueID, -1, now),
		{
			// Conditional on the presence still pointing at the venue we
			// read, so a concurrent checkout or venue switch cannot
			// decrement the same spot twice.
			Update: &types.Update{
				TableName:           aws.String(models.UserProfilesTable),
				Key:                 userKey(userID),
				UpdateExpression:    aws.String("REMOVE presence"),
				ConditionExpression: aws.String("presence.venueId = :venueId"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":venueId": &types.AttributeValueMemberS{Value: venueID},
				},
			},
		},
	}
	if err := ps.Dynamo.TransactWriteItems(ctx, items); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// Presence moved under us; whoever moved it owns the count.
			return nil
		}
		return fmt.Errorf("checkout transaction failed: %w", err)
	}

	if _, err := ps.Venues.SettleOccupancy(ctx, venueID); err != nil {
		log.Printf("⚠️ Failed to settle occupancy for %s after checkout: %v", venueID, err)
	}

	log.Printf("✅ %s checked out of %s", userID, venueID)
	return nil
}

// ExpireStale sweeps all live check-ins and clears the ones older than the
// TTL (or missing a timestamp entirely). Per-venue decrements are tallied
// during the sweep and applied once per venue afterwards. Individual
// failures are logged and skipped so one bad row cannot stall the sweep.
//
// The clear is conditional on the check-in timestamp still being the value
// the sweep saw, so a user re-checking in mid-sweep is never expired.
func (ps *PresenceService) ExpireStale(ctx context.Context, now time.Time) (models.ExpiryResult, error) {
	var result models.ExpiryResult

	var users []models.UserProfile
	err := ps.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable,
		"attribute_exists(presence)", nil, nil, &users)
	if err != nil {
		return result, fmt.Errorf("failed to scan for live check-ins: %w", err)
	}

	ttl := ps.ttl()
	venueDeltas := make(map[string]int)

	for _, user := range users {
		if user.Presence == nil {
			continue
		}
		if !isStale(user.Presence.CheckedInAt, now, ttl) {
			continue
		}

		_, err := ps.Dynamo.UpdateItemWithCondition(ctx, models.UserProfilesTable,
			"REMOVE presence",
			"presence.checkedInAt = :orig",
			userKey(user.UserID),
			map[string]types.AttributeValue{
				":orig": &types.AttributeValueMemberS{Value: user.Presence.CheckedInAt},
			}, nil,
		)
		if errors.Is(err, ErrConditionFailed) {
			// Re-checked in while we were scanning; leave them be.
			continue
		}
		if err != nil {
			log.Printf("⚠️ Failed to expire presence for %s: %v", user.UserID, err)
			continue
		}

		result.ExpiredCount++
		venueDeltas[user.Presence.VenueID]++
	}

	for venueID, count := range venueDeltas {
		if _, err := ps.Venues.ApplyOccupancyDelta(ctx, venueID, -count); err != nil {
			log.Printf("⚠️ Failed to settle occupancy for %s after expiry: %v", venueID, err)
			continue
		}
		result.VenuesTouched++
	}

	if result.ExpiredCount > 0 {
		log.Printf("🧹 Expired %d stale check-ins across %d venues", result.ExpiredCount, result.VenuesTouched)
	}
	return result, nil
}

func isStale(checkedInAt string, now time.Time, ttl time.Duration) bool {
	if checkedInAt == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, checkedInAt)
	if err != nil {
		return true
	}
	return now.Sub(t) > ttl
}

// occupancyDeltaItem builds the transactional form of a venue occupancy
// change. Transactions cannot clamp, so callers settle the venue afterwards.
func occupancyDeltaItem(venueID string, delta int, now string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:        aws.String(models.VenuesTable),
			Key:              venueKey(venueID),
			UpdateExpression: aws.String("ADD activeCount :delta SET lastActivity = :now"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
				":now":   &types.AttributeValueMemberS{Value: now},
			},
		},
	}
}
