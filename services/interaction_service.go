package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"spotmatch_server/apperrors"
	"spotmatch_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// InteractionService records directed likes and maintains the match
// invariant: a Match row exists exactly when both directions of a like
// exist with isMatch set. The three writes that establish (or tear down) a
// match go through one transaction so the store can never show a half-made
// match.
type InteractionService struct {
	Dynamo   Store
	Notifier *NotificationService
}

func likeKey(likerID, likedID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"likerId": &types.AttributeValueMemberS{Value: likerID},
		"likedId": &types.AttributeValueMemberS{Value: likedID},
	}
}

func matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

func (is *InteractionService) getLike(ctx context.Context, likerID, likedID string) (*models.Like, error) {
	item, err := is.Dynamo.GetItem(ctx, models.LikesTable, likeKey(likerID, likedID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var like models.Like
	if err := attributevalue.UnmarshalMap(item, &like); err != nil {
		return nil, fmt.Errorf("failed to unmarshal like: %w", err)
	}
	return &like, nil
}

func likeState(like *models.Like) models.ActionResult {
	result := models.ActionResult{IsMatch: like.IsMatch}
	if like.MatchID != nil {
		result.MatchID = *like.MatchID
	}
	return result
}

func validateAction(fromID, toID, venueID, action string) error {
	if toID == "" {
		return apperrors.InvalidArg("targetUserId is required")
	}
	if toID == fromID {
		return apperrors.InvalidArg("you cannot like yourself")
	}
	if venueID == "" {
		return apperrors.InvalidArg("venueId is required")
	}
	if len(venueID) > models.MaxVenueIDLength {
		return apperrors.InvalidArg("venueId is too long")
	}
	if action != models.ActionLike && action != models.ActionPass {
		return apperrors.InvalidArg("action must be like or pass")
	}
	return nil
}

// ProcessAction handles a like or pass from one user toward another. A pass
// is accepted and does nothing. A like either records a one-way edge or,
// when the reverse edge already exists, upgrades both edges and creates the
// match in a single transaction.
func (is *InteractionService) ProcessAction(ctx context.Context, fromID, toID, venueID, action string) (models.ActionResult, error) {
	if err := validateAction(fromID, toID, venueID, action); err != nil {
		return models.ActionResult{}, err
	}

	if action == models.ActionPass {
		return models.ActionResult{IsMatch: false}, nil
	}

	// At most one like per ordered pair: a repeat like is answered with the
	// current state rather than a second edge.
	forward, err := is.getLike(ctx, fromID, toID)
	if err != nil {
		return models.ActionResult{}, err
	}
	if forward != nil {
		return likeState(forward), nil
	}

	reverse, err := is.getLike(ctx, toID, fromID)
	if err != nil {
		return models.ActionResult{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if reverse == nil {
		like := models.Like{
			LikerID:   fromID,
			LikedID:   toID,
			LikeID:    uuid.NewString(),
			VenueID:   venueID,
			IsMatch:   false,
			CreatedAt: now,
		}
		if err := is.Dynamo.PutItem(ctx, models.LikesTable, like); err != nil {
			return models.ActionResult{}, fmt.Errorf("failed to record like: %w", err)
		}
		log.Printf("💖 %s liked %s at %s", fromID, toID, venueID)
		return models.ActionResult{IsMatch: false}, nil
	}

	// Mutual like: upgrade the reverse edge, write the forward edge and the
	// match row all-or-nothing.
	matchID := uuid.NewString()

	forwardLike := models.Like{
		LikerID:   fromID,
		LikedID:   toID,
		LikeID:    uuid.NewString(),
		VenueID:   venueID,
		IsMatch:   true,
		MatchID:   &matchID,
		CreatedAt: now,
	}
	forwardItem, err := attributevalue.MarshalMap(forwardLike)
	if err != nil {
		return models.ActionResult{}, fmt.Errorf("failed to marshal like: %w", err)
	}

	match := models.Match{
		MatchID:   matchID,
		User1ID:   fromID,
		User2ID:   toID,
		VenueID:   venueID,
		Status:    models.MatchStatusActive,
		MatchedAt: now,
	}
	matchItem, err := attributevalue.MarshalMap(match)
	if err != nil {
		return models.ActionResult{}, fmt.Errorf("failed to marshal match: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:        aws.String(models.LikesTable),
				Key:              likeKey(toID, fromID),
				UpdateExpression: aws.String("SET isMatch = :true, matchId = :matchId"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":    &types.AttributeValueMemberBOOL{Value: true},
					":matchId": &types.AttributeValueMemberS{Value: matchID},
				},
			},
		},
		{
			// The forward edge must still be absent at commit time. Without
			// this, two racing likes for the same pair could both observe
			// the snapshot above and create two matches.
			Put: &types.Put{
				TableName:           aws.String(models.LikesTable),
				Item:                forwardItem,
				ConditionExpression: aws.String("attribute_not_exists(likerId)"),
			},
		},
		{
			Put: &types.Put{
				TableName: aws.String(models.MatchesTable),
				Item:      matchItem,
			},
		},
	}
	if err := is.Dynamo.TransactWriteItems(ctx, items); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// A concurrent call committed the forward edge first; report the
			// state it left, same as a repeat like.
			current, getErr := is.getLike(ctx, fromID, toID)
			if getErr != nil {
				return models.ActionResult{}, getErr
			}
			if current != nil {
				return likeState(current), nil
			}
		}
		return models.ActionResult{}, fmt.Errorf("match transaction failed: %w", err)
	}

	log.Printf("🎉 Match created: %s ❤️ %s (%s)", fromID, toID, matchID)

	// Best-effort; a failed notification never unwinds the match.
	if is.Notifier != nil {
		is.Notifier.NotifyMatchCreated(ctx, toID, fromID, matchID)
	}

	return models.ActionResult{IsMatch: true, MatchID: matchID}, nil
}

// Unlike retracts a previously sent like. Retracting half of a match tears
// the whole match down: forward edge deleted, reverse edge demoted, match
// row deleted, all in one transaction.
func (is *InteractionService) Unlike(ctx context.Context, fromID, toID string) error {
	if toID == "" {
		return apperrors.InvalidArg("targetUserId is required")
	}

	forward, err := is.getLike(ctx, fromID, toID)
	if err != nil {
		return err
	}
	if forward == nil {
		return apperrors.NotFound("no like to remove")
	}

	if !forward.IsMatch {
		if err := is.Dynamo.DeleteItem(ctx, models.LikesTable, likeKey(fromID, toID)); err != nil {
			return fmt.Errorf("failed to remove like: %w", err)
		}
		log.Printf("💔 %s unliked %s", fromID, toID)
		return nil
	}

	items := []types.TransactWriteItem{
		{
			Delete: &types.Delete{
				TableName: aws.String(models.LikesTable),
				Key:       likeKey(fromID, toID),
			},
		},
		{
			Update: &types.Update{
				TableName:        aws.String(models.LikesTable),
				Key:              likeKey(toID, fromID),
				UpdateExpression: aws.String("SET isMatch = :false REMOVE matchId"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":false": &types.AttributeValueMemberBOOL{Value: false},
				},
			},
		},
	}
	if forward.MatchID != nil {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(models.MatchesTable),
				Key:       matchKey(*forward.MatchID),
			},
		})
	}
	if err := is.Dynamo.TransactWriteItems(ctx, items); err != nil {
		return fmt.Errorf("unmatch transaction failed: %w", err)
	}

	log.Printf("💔 %s unmatched %s", fromID, toID)

	if is.Notifier != nil {
		is.Notifier.NotifyMatchUndone(ctx, toID, fromID)
	}
	return nil
}

// GetLikesReceived returns the pending (not yet matched) likes sent to a
// user.
func (is *InteractionService) GetLikesReceived(ctx context.Context, userID string) ([]models.Like, error) {
	keyCondition := "likedId = :me"
	expressionValues := map[string]types.AttributeValue{
		":me": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := is.Dynamo.QueryItemsWithIndex(ctx, models.LikesTable, models.LikedIDIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes for %s: %w", userID, err)
	}

	var likes []models.Like
	if err := attributevalue.UnmarshalListOfMaps(items, &likes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal likes: %w", err)
	}

	pending := make([]models.Like, 0, len(likes))
	for _, like := range likes {
		if !like.IsMatch {
			pending = append(pending, like)
		}
	}
	return pending, nil
}

// GetMatches returns the user's current matches by following their matched
// like edges to the match rows.
func (is *InteractionService) GetMatches(ctx context.Context, userID string) ([]models.Match, error) {
	keyCondition := "likerId = :me"
	expressionValues := map[string]types.AttributeValue{
		":me": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := is.Dynamo.QueryItems(ctx, models.LikesTable, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes sent by %s: %w", userID, err)
	}

	var likes []models.Like
	if err := attributevalue.UnmarshalListOfMaps(items, &likes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal likes: %w", err)
	}

	var matches []models.Match
	for _, like := range likes {
		if !like.IsMatch || like.MatchID == nil {
			continue
		}
		item, err := is.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(*like.MatchID))
		if err != nil {
			log.Printf("⚠️ Failed to fetch match %s: %v", *like.MatchID, err)
			continue
		}
		if item == nil {
			continue
		}
		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			log.Printf("⚠️ Failed to unmarshal match %s: %v", *like.MatchID, err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}
