package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"social-backend/application/ports"
	pkgerrors "social-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// FollowRepository answers follow graph questions from the single table.
// Follow edges are stored under the follower as SK=FOLLOWING#<followedId>;
// follower totals are kept on the profile item.
type FollowRepository struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(client Client, tableName string, logger *zap.Logger) *FollowRepository {
	return &FollowRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.FollowGraph = (*FollowRepository)(nil)

type followItem struct {
	SK          string `dynamodbav:"SK"`
	FollowingID string `dynamodbav:"followingId"`
}

type profileCountItem struct {
	FollowersCount int `dynamodbav:"followersCount"`
}

// GetFollowingList returns every account the user follows, reading all pages
func (r *FollowRepository) GetFollowingList(ctx context.Context, userID string) ([]string, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(userPK(userID))).
		And(expression.Key(attrSK).BeginsWith(followingPrefix))
	proj := expression.NamesList(expression.Name(attrSK), expression.Name("followingId"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build following query: %w", err)
	}

	var following []string
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query following list", err)
		}

		var rows []followItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal following items: %w", err)
		}
		for _, row := range rows {
			id := row.FollowingID
			if id == "" {
				id = strings.TrimPrefix(row.SK, followingPrefix)
			}
			if id != "" {
				following = append(following, id)
			}
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	r.logger.Debug("Read following list",
		zap.String("userID", userID),
		zap.Int("count", len(following)),
	)

	return following, nil
}

// GetFollowerCount returns the follower total from the account's profile.
// An account without a profile item has no followers.
func (r *FollowRepository) GetFollowerCount(ctx context.Context, accountID string) (int, error) {
	proj := expression.NamesList(expression.Name("followersCount"))
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build profile projection: %w", err)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: userPK(accountID)},
			attrSK: &types.AttributeValueMemberS{Value: profileSK},
		},
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return 0, pkgerrors.NewDatabaseError("get follower count", err)
	}
	if len(result.Item) == 0 {
		return 0, nil
	}

	var item profileCountItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return 0, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return max(item.FollowersCount, 0), nil
}
