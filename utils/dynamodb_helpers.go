package utils

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractInt reads a numeric attribute straight out of a DynamoDB attribute
// map. Missing, mistyped or non-numeric attributes read as zero.
func ExtractInt(item map[string]types.AttributeValue, field string) int {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberN); ok {
			if n, err := strconv.Atoi(v.Value); err == nil {
				return n
			}
		}
	}
	return 0
}
