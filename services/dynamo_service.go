package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConditionFailed is returned by conditional writes when the condition
// did not hold. Callers treat it as "somebody else got there first".
var ErrConditionFailed = errors.New("conditional check failed")

// Store is the storage surface the services depend on. *DynamoService is
// the production implementation; tests substitute stubs.
type Store interface {
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	PutItem(ctx context.Context, tableName string, item interface{}) error
	PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error
	UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
	UpdateItemWithCondition(ctx context.Context, tableName, updateExpression, conditionExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
	DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error
	QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error)
	QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error)
	ScanWithFilter(ctx context.Context, tableName, filterExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, result interface{}) error
	TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error
}

type DynamoService struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves an item from DynamoDB. A missing item is not an error;
// it is reported as a nil map.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}
	return output.Item, nil
}

func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// PutItemIfAbsent writes an item only if no item with the same key exists.
// Returns ErrConditionFailed when the row was already there.
func (ds *DynamoService) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	condition := fmt.Sprintf("attribute_not_exists(%s)", keyAttr)
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &tableName,
		Item:                marshaledItem,
		ConditionExpression: &condition,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrConditionFailed
		}
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

func (ds *DynamoService) UpdateItem(
	ctx context.Context,
	tableName, updateExpression string,
	key, expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	if len(key) == 0 {
		return nil, errors.New("update failed: key cannot be empty")
	}
	if updateExpression == "" {
		return nil, errors.New("update failed: updateExpression cannot be empty")
	}

	// REMOVE expressions legitimately carry no values
	var expAttrValues map[string]types.AttributeValue
	if len(expressionAttributeValues) > 0 {
		expAttrValues = expressionAttributeValues
	}

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ExpressionAttributeValues: expAttrValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item in table '%s': %w", tableName, err)
	}

	if output.Attributes == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return output.Attributes, nil
}

// UpdateItemWithCondition is UpdateItem guarded by a condition expression.
// Returns ErrConditionFailed when the condition did not hold.
func (ds *DynamoService) UpdateItemWithCondition(
	ctx context.Context,
	tableName, updateExpression, conditionExpression string,
	key, expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	var expAttrValues map[string]types.AttributeValue
	if len(expressionAttributeValues) > 0 {
		expAttrValues = expressionAttributeValues
	}

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ConditionExpression:       &conditionExpression,
		ExpressionAttributeValues: expAttrValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrConditionFailed
		}
		return nil, fmt.Errorf("failed to update item in table '%s': %w", tableName, err)
	}

	if output.Attributes == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return output.Attributes, nil
}

// DeleteItem removes an item from DynamoDB
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", tableName, err)
	}
	return nil
}

// QueryItems queries items from DynamoDB using a KeyConditionExpression
func (ds *DynamoService) QueryItems(
	ctx context.Context,
	tableName, keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
) ([]map[string]types.AttributeValue, error) {
	output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		Limit:                     &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query items from table '%s': %w", tableName, err)
	}
	return output.Items, nil
}

// QueryItemsWithIndex queries items from DynamoDB using a Global Secondary Index (GSI)
func (ds *DynamoService) QueryItemsWithIndex(
	ctx context.Context,
	tableName, indexName, keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
) ([]map[string]types.AttributeValue, error) {
	log.Printf("🔍 Querying GSI: %s in table: %s", indexName, tableName)
	output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &tableName,
		IndexName:                 &indexName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		Limit:                     &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query GSI '%s': %w", indexName, err)
	}
	return output.Items, nil
}

// ScanWithFilter performs a full scan of a table with a filter expression
// and unmarshals the matching items into result, which must be a pointer to
// a slice of structs.
func (ds *DynamoService) ScanWithFilter(
	ctx context.Context,
	tableName, filterExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	result interface{},
) error {
	scanInput := &dynamodb.ScanInput{
		TableName: &tableName,
	}
	if filterExpression != "" {
		scanInput.FilterExpression = aws.String(filterExpression)
	}
	if len(expressionAttributeValues) > 0 {
		scanInput.ExpressionAttributeValues = expressionAttributeValues
	}
	if len(expressionAttributeNames) > 0 {
		scanInput.ExpressionAttributeNames = expressionAttributeNames
	}

	var items []map[string]types.AttributeValue
	for {
		output, err := ds.Client.Scan(ctx, scanInput)
		if err != nil {
			return fmt.Errorf("failed to scan table '%s': %w", tableName, err)
		}
		items = append(items, output.Items...)
		if output.LastEvaluatedKey == nil {
			break
		}
		scanInput.ExclusiveStartKey = output.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// TransactWriteItems executes up to 25 writes as a single all-or-nothing
// transaction. A transaction canceled because one of its condition
// expressions did not hold is reported as ErrConditionFailed, like the
// single-item conditional writes.
func (ds *DynamoService) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := ds.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return ErrConditionFailed
				}
			}
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
