package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"spotmatch_server/models"
	"spotmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// VenueService is the registry of venues keyed by their coordinate-derived
// ID. It owns the active occupant counter on each venue row.
type VenueService struct {
	Dynamo Store
	Events Broadcaster // optional; nil disables fan-out
}

func venueKey(venueID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"venueId": &types.AttributeValueMemberS{Value: venueID},
	}
}

// GetVenue retrieves a venue by ID, nil if it does not exist.
func (vs *VenueService) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	item, err := vs.Dynamo.GetItem(ctx, models.VenuesTable, venueKey(venueID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var venue models.Venue
	if err := attributevalue.UnmarshalMap(item, &venue); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue: %w", err)
	}
	return &venue, nil
}

// GetOrCreateVenue returns the venue with the given ID, creating it with a
// zero occupant count on first check-in. Venues are never deleted; a count
// of zero just means nobody is there right now.
func (vs *VenueService) GetOrCreateVenue(ctx context.Context, venueID, name, address string, lat, lon float64) (*models.Venue, error) {
	venue, err := vs.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue != nil {
		return venue, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	newVenue := models.Venue{
		VenueID:      venueID,
		Name:         name,
		Address:      address,
		Latitude:     lat,
		Longitude:    lon,
		ActiveCount:  0,
		LastActivity: now,
		CreatedAt:    now,
	}

	err = vs.Dynamo.PutItemIfAbsent(ctx, models.VenuesTable, newVenue, "venueId")
	if errors.Is(err, ErrConditionFailed) {
		// A concurrent check-in created it first; use that row.
		return vs.GetVenue(ctx, venueID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create venue %s: %w", venueID, err)
	}

	log.Printf("✅ Created venue %s (%s)", venueID, name)
	return &newVenue, nil
}

// IncrementOccupancy atomically bumps a venue's occupant count by one and
// refreshes its last activity timestamp.
func (vs *VenueService) IncrementOccupancy(ctx context.Context, venueID string) (*models.Venue, error) {
	return vs.applyDelta(ctx, venueID, 1)
}

// DecrementOccupancy atomically drops a venue's occupant count by one,
// flooring at zero.
func (vs *VenueService) DecrementOccupancy(ctx context.Context, venueID string) (*models.Venue, error) {
	return vs.applyDelta(ctx, venueID, -1)
}

// ApplyOccupancyDelta applies an accumulated occupancy change in a single
// write. The expiry sweep uses it to settle one venue's worth of expired
// check-ins at once.
func (vs *VenueService) ApplyOccupancyDelta(ctx context.Context, venueID string, delta int) (*models.Venue, error) {
	return vs.applyDelta(ctx, venueID, delta)
}

func (vs *VenueService) applyDelta(ctx context.Context, venueID string, delta int) (*models.Venue, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	attrs, err := vs.Dynamo.UpdateItem(ctx, models.VenuesTable,
		"ADD activeCount :delta SET lastActivity = :now",
		venueKey(venueID),
		map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
			":now":   &types.AttributeValueMemberS{Value: now},
		}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply occupancy delta to %s: %w", venueID, err)
	}

	if utils.ExtractInt(attrs, "activeCount") < 0 {
		clamped, err := vs.clampOccupancy(ctx, venueID)
		if err != nil {
			return nil, err
		}
		vs.emitOccupancy(*clamped)
		return clamped, nil
	}

	var venue models.Venue
	if err := attributevalue.UnmarshalMap(attrs, &venue); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue: %w", err)
	}

	vs.emitOccupancy(venue)
	return &venue, nil
}

// SettleOccupancy re-reads a venue after a transactional count change,
// re-floors a negative count at zero and emits the occupancy event the
// transaction path could not emit itself.
func (vs *VenueService) SettleOccupancy(ctx context.Context, venueID string) (*models.Venue, error) {
	venue, err := vs.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s not found", venueID)
	}

	if venue.ActiveCount < 0 {
		venue, err = vs.clampOccupancy(ctx, venueID)
		if err != nil {
			return nil, err
		}
	}

	vs.emitOccupancy(*venue)
	return venue, nil
}

// clampOccupancy rewrites a negative occupant count back to zero. A
// negative count means a decrement raced something else; the miscount is
// logged before it is floored.
func (vs *VenueService) clampOccupancy(ctx context.Context, venueID string) (*models.Venue, error) {
	log.Printf("⚠️ Venue %s occupant count went negative, flooring at zero", venueID)

	attrs, err := vs.Dynamo.UpdateItem(ctx, models.VenuesTable,
		"SET activeCount = :zero",
		venueKey(venueID),
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to floor occupancy for %s: %w", venueID, err)
	}

	var venue models.Venue
	if err := attributevalue.UnmarshalMap(attrs, &venue); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue: %w", err)
	}
	return &venue, nil
}

func (vs *VenueService) emitOccupancy(venue models.Venue) {
	if vs.Events == nil {
		return
	}
	vs.Events.BroadcastToRoom("/", VenueRoom(venue.VenueID), "venue:occupancy", map[string]interface{}{
		"venueId":     venue.VenueID,
		"activeCount": venue.ActiveCount,
	})
}

// ListVenues returns all known venues. Backs the client's venue browse
// screen; fine at current scale, no pagination.
func (vs *VenueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := vs.Dynamo.ScanWithFilter(ctx, models.VenuesTable, "", nil, nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}
