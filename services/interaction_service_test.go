package services

import (
	"context"
	"strings"
	"testing"

	"spotmatch_server/apperrors"
	"spotmatch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func likeAttrs(t *testing.T, like models.Like) map[string]types.AttributeValue {
	t.Helper()
	attrs, err := attributevalue.MarshalMap(like)
	if err != nil {
		t.Fatalf("failed to marshal like: %v", err)
	}
	return attrs
}

// likeStore answers getLike lookups keyed by the liker in the request.
func likeStore(t *testing.T, likes map[string]models.Like) func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	return func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
		if table != models.LikesTable {
			return nil, nil
		}
		likerID := key["likerId"].(*types.AttributeValueMemberS).Value
		like, ok := likes[likerID]
		if !ok {
			return nil, nil
		}
		return likeAttrs(t, like), nil
	}
}

func TestProcessActionValidation(t *testing.T) {
	cases := []struct {
		name                 string
		from, to, venue, act string
	}{
		{"missing target", "a", "", "v1", models.ActionLike},
		{"self like", "a", "a", "v1", models.ActionLike},
		{"missing venue", "a", "b", "", models.ActionLike},
		{"venue id too long", "a", "b", strings.Repeat("v", 101), models.ActionLike},
		{"unknown action", "a", "b", "v1", "superlike"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{}
			is := &InteractionService{Dynamo: store}

			_, err := is.ProcessAction(context.Background(), tc.from, tc.to, tc.venue, tc.act)
			if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestPassIsANoOp(t *testing.T) {
	store := &stubStore{}
	is := &InteractionService{Dynamo: store}

	result, err := is.ProcessAction(context.Background(), "a", "b", "v1", models.ActionPass)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsMatch {
		t.Error("a pass can never match")
	}
	if len(store.puts) != 0 || len(store.transacts) != 0 || len(store.updates) != 0 {
		t.Error("a pass must not write anything")
	}
}

func TestFirstLikeCreatesOneEdge(t *testing.T) {
	store := &stubStore{getItemFn: likeStore(t, nil)}
	is := &InteractionService{Dynamo: store}

	result, err := is.ProcessAction(context.Background(), "a", "b", "v1", models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsMatch {
		t.Error("a one-way like is not a match")
	}

	if len(store.puts) != 1 {
		t.Fatalf("expected one like row, got %d puts", len(store.puts))
	}
	like := store.puts[0].item.(models.Like)
	if like.LikerID != "a" || like.LikedID != "b" || like.IsMatch {
		t.Errorf("unexpected like row: %+v", like)
	}
	if len(store.transacts) != 0 {
		t.Error("no transaction should run for a one-way like")
	}
}

func TestMutualLikeCreatesMatchAtomically(t *testing.T) {
	// B already liked A; now A likes B back.
	store := &stubStore{getItemFn: likeStore(t, map[string]models.Like{
		"b": {LikerID: "b", LikedID: "a", LikeID: "l1", VenueID: "v1", IsMatch: false},
	})}
	is := &InteractionService{Dynamo: store}

	result, err := is.ProcessAction(context.Background(), "a", "b", "v1", models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsMatch {
		t.Fatal("mutual likes must match")
	}
	if result.MatchID == "" {
		t.Error("a match must carry its id")
	}

	if len(store.transacts) != 1 {
		t.Fatalf("expected a single transaction, got %d", len(store.transacts))
	}
	items := store.transacts[0]
	if len(items) != 3 {
		t.Fatalf("match creation is reverse-edge update + forward put + match put, got %d items", len(items))
	}

	reverseUpdate := items[0].Update
	if reverseUpdate == nil || !strings.Contains(*reverseUpdate.UpdateExpression, "SET isMatch = :true") {
		t.Error("expected the reverse edge upgraded in the transaction")
	}
	if reverseUpdate.Key["likerId"].(*types.AttributeValueMemberS).Value != "b" {
		t.Error("the reverse edge belongs to the first liker")
	}
	if items[1].Put == nil || items[2].Put == nil {
		t.Error("expected the forward like and the match row as puts")
	}
	forwardPut := items[1].Put
	if forwardPut.ConditionExpression == nil || !strings.Contains(*forwardPut.ConditionExpression, "attribute_not_exists(likerId)") {
		t.Error("the forward like put must be conditional on the edge still being absent")
	}

	if len(store.puts) != 0 {
		t.Error("the forward like must ride the transaction, not a separate put")
	}
}

func TestMutualLikeLosesRaceToConcurrentLike(t *testing.T) {
	// Both callers read the same snapshot (forward absent, reverse pending)
	// before either committed. The loser's transaction fails its condition
	// and must answer with the winner's match, not create a second one.
	winnerMatchID := "m-winner"
	forwardReads := 0
	store := &stubStore{
		transactErr: ErrConditionFailed,
		getItemFn: func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			likerID := key["likerId"].(*types.AttributeValueMemberS).Value
			if likerID == "a" {
				forwardReads++
				if forwardReads == 1 {
					return nil, nil // snapshot before the winner committed
				}
				return likeAttrs(t, models.Like{
					LikerID: "a", LikedID: "b", LikeID: "l2", VenueID: "v1",
					IsMatch: true, MatchID: &winnerMatchID,
				}), nil
			}
			return likeAttrs(t, models.Like{
				LikerID: "b", LikedID: "a", LikeID: "l1", VenueID: "v1", IsMatch: false,
			}), nil
		},
	}
	is := &InteractionService{Dynamo: store}

	result, err := is.ProcessAction(context.Background(), "a", "b", "v1", models.ActionLike)
	if err != nil {
		t.Fatalf("losing the race is not an error: %v", err)
	}
	if !result.IsMatch || result.MatchID != winnerMatchID {
		t.Errorf("expected the winner's match reported, got %+v", result)
	}

	if len(store.transacts) != 1 {
		t.Fatalf("the loser must not retry the transaction, got %d attempts", len(store.transacts))
	}
	if len(store.puts) != 0 {
		t.Error("the loser must not write a second match")
	}
}

func TestRepeatLikeIsIdempotent(t *testing.T) {
	matchID := "m1"
	store := &stubStore{getItemFn: likeStore(t, map[string]models.Like{
		"a": {LikerID: "a", LikedID: "b", LikeID: "l1", VenueID: "v1", IsMatch: true, MatchID: &matchID},
	})}
	is := &InteractionService{Dynamo: store}

	result, err := is.ProcessAction(context.Background(), "a", "b", "v1", models.ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsMatch || result.MatchID != "m1" {
		t.Errorf("repeat like should report current state, got %+v", result)
	}
	if len(store.puts) != 0 || len(store.transacts) != 0 {
		t.Error("repeat like must not write")
	}
}

func TestUnlikeWithoutLike(t *testing.T) {
	store := &stubStore{getItemFn: likeStore(t, nil)}
	is := &InteractionService{Dynamo: store}

	err := is.Unlike(context.Background(), "a", "b")
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestUnlikeOneWayLike(t *testing.T) {
	store := &stubStore{getItemFn: likeStore(t, map[string]models.Like{
		"a": {LikerID: "a", LikedID: "b", LikeID: "l1", VenueID: "v1", IsMatch: false},
	})}
	is := &InteractionService{Dynamo: store}

	if err := is.Unlike(context.Background(), "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deletes) != 1 {
		t.Fatalf("expected one delete, got %d", len(store.deletes))
	}
	if len(store.transacts) != 0 {
		t.Error("removing a one-way like needs no transaction")
	}
}

func TestUnlikeTearsDownMatch(t *testing.T) {
	matchID := "m1"
	store := &stubStore{getItemFn: likeStore(t, map[string]models.Like{
		"a": {LikerID: "a", LikedID: "b", LikeID: "l1", VenueID: "v1", IsMatch: true, MatchID: &matchID},
	})}
	is := &InteractionService{Dynamo: store}

	if err := is.Unlike(context.Background(), "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.transacts) != 1 {
		t.Fatalf("expected the teardown in one transaction, got %d", len(store.transacts))
	}
	items := store.transacts[0]
	if len(items) != 3 {
		t.Fatalf("teardown is forward delete + reverse demotion + match delete, got %d items", len(items))
	}
	if items[0].Delete == nil {
		t.Error("expected the forward like deleted")
	}
	if items[1].Update == nil || !strings.Contains(*items[1].Update.UpdateExpression, "SET isMatch = :false") {
		t.Error("expected the reverse like demoted")
	}
	if items[2].Delete == nil || *items[2].Delete.TableName != models.MatchesTable {
		t.Error("expected the match row deleted")
	}
}

func TestGetLikesReceivedFiltersMatched(t *testing.T) {
	matchID := "m1"
	store := &stubStore{
		queryIndexFn: func(table, index, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
			if index != models.LikedIDIndex {
				t.Errorf("expected query on %s, got %s", models.LikedIDIndex, index)
			}
			return []map[string]types.AttributeValue{
				likeAttrs(t, models.Like{LikerID: "b", LikedID: "a", IsMatch: false}),
				likeAttrs(t, models.Like{LikerID: "c", LikedID: "a", IsMatch: true, MatchID: &matchID}),
			}, nil
		},
	}
	is := &InteractionService{Dynamo: store}

	likes, err := is.GetLikesReceived(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(likes) != 1 || likes[0].LikerID != "b" {
		t.Errorf("expected only the pending like, got %+v", likes)
	}
}
