package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestExtractInt(t *testing.T) {
	cases := []struct {
		name string
		item map[string]types.AttributeValue
		want int
	}{
		{"present", map[string]types.AttributeValue{
			"activeCount": &types.AttributeValueMemberN{Value: "7"},
		}, 7},
		{"negative", map[string]types.AttributeValue{
			"activeCount": &types.AttributeValueMemberN{Value: "-2"},
		}, -2},
		{"missing", map[string]types.AttributeValue{}, 0},
		{"wrong type", map[string]types.AttributeValue{
			"activeCount": &types.AttributeValueMemberS{Value: "7"},
		}, 0},
		{"not a number", map[string]types.AttributeValue{
			"activeCount": &types.AttributeValueMemberN{Value: "seven"},
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractInt(tc.item, "activeCount"); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
