package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type updateCall struct {
	table      string
	expression string
	condition  string
	key        map[string]types.AttributeValue
	values     map[string]types.AttributeValue
}

type putCall struct {
	table string
	item  interface{}
}

type deleteCall struct {
	table string
	key   map[string]types.AttributeValue
}

// stubStore implements Store for tests. Behaviors are injected through the
// function fields; every write is recorded.
type stubStore struct {
	getItemFn     func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	updateFn      func(call updateCall) (map[string]types.AttributeValue, error)
	condUpdateFn  func(call updateCall) (map[string]types.AttributeValue, error)
	scanFn        func(table, filter string, values map[string]types.AttributeValue, result interface{}) error
	queryFn       func(table, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error)
	queryIndexFn  func(table, index, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error)
	putErr        error
	putIfAbsentEr error
	deleteErr     error
	transactErr   error

	puts        []putCall
	putsAbsent  []putCall
	updates     []updateCall
	condUpdates []updateCall
	deletes     []deleteCall
	transacts   [][]types.TransactWriteItem
}

func (s *stubStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if s.getItemFn != nil {
		return s.getItemFn(tableName, key)
	}
	return nil, nil
}

func (s *stubStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	s.puts = append(s.puts, putCall{table: tableName, item: item})
	return s.putErr
}

func (s *stubStore) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, keyAttr string) error {
	s.putsAbsent = append(s.putsAbsent, putCall{table: tableName, item: item})
	return s.putIfAbsentEr
}

func (s *stubStore) UpdateItem(ctx context.Context, tableName, updateExpression string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	call := updateCall{table: tableName, expression: updateExpression, key: key, values: values}
	s.updates = append(s.updates, call)
	if s.updateFn != nil {
		return s.updateFn(call)
	}
	return map[string]types.AttributeValue{}, nil
}

func (s *stubStore) UpdateItemWithCondition(ctx context.Context, tableName, updateExpression, conditionExpression string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	call := updateCall{table: tableName, expression: updateExpression, condition: conditionExpression, key: key, values: values}
	s.condUpdates = append(s.condUpdates, call)
	if s.condUpdateFn != nil {
		return s.condUpdateFn(call)
	}
	return map[string]types.AttributeValue{}, nil
}

func (s *stubStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	s.deletes = append(s.deletes, deleteCall{table: tableName, key: key})
	return s.deleteErr
}

func (s *stubStore) QueryItems(ctx context.Context, tableName, keyConditionExpression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	if s.queryFn != nil {
		return s.queryFn(tableName, keyConditionExpression, values)
	}
	return nil, nil
}

func (s *stubStore) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	if s.queryIndexFn != nil {
		return s.queryIndexFn(tableName, indexName, keyConditionExpression, values)
	}
	return nil, nil
}

func (s *stubStore) ScanWithFilter(ctx context.Context, tableName, filterExpression string, values map[string]types.AttributeValue, names map[string]string, result interface{}) error {
	if s.scanFn != nil {
		return s.scanFn(tableName, filterExpression, values, result)
	}
	return nil
}

func (s *stubStore) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	s.transacts = append(s.transacts, items)
	return s.transactErr
}

// stubBroadcaster records socket.io emits.
type stubBroadcaster struct {
	rooms  []string
	events []string
	args   [][]interface{}
}

func (b *stubBroadcaster) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	b.rooms = append(b.rooms, room)
	b.events = append(b.events, event)
	b.args = append(b.args, args)
	return true
}
