package dynamodb

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// fakeClient replays canned pages and records every request
type fakeClient struct {
	mu sync.Mutex

	queryPages []*dynamodb.QueryOutput
	queryErr   error
	queries    []*dynamodb.QueryInput

	getItem    *dynamodb.GetItemOutput
	getItemErr error
	getItems   []*dynamodb.GetItemInput
}

func (f *fakeClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, params)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.queryPages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	page := f.queryPages[0]
	f.queryPages = f.queryPages[1:]
	return page, nil
}

func (f *fakeClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getItems = append(f.getItems, params)
	if f.getItemErr != nil {
		return nil, f.getItemErr
	}
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem, nil
}

func marshalItems(t *testing.T, rows ...interface{}) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(rows))
	for _, row := range rows {
		item, err := attributevalue.MarshalMap(row)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func stringKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: pk},
		attrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

// exprValues returns the string values bound in a query expression
func exprValues(input *dynamodb.QueryInput) []string {
	var values []string
	for _, av := range input.ExpressionAttributeValues {
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			values = append(values, s.Value)
		}
	}
	return values
}
