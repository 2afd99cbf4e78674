package dynamodb

import (
	"context"
	"fmt"

	"social-backend/application/ports"
	"social-backend/domain/core/entities"
	pkgerrors "social-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// FeedRepository reads materialized feed entries written by the fan-out pipeline
type FeedRepository struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(client Client, tableName string, logger *zap.Logger) *FeedRepository {
	return &FeedRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.MaterializedFeedSource = (*FeedRepository)(nil)

// feedItem represents the DynamoDB item structure for a materialized feed entry
type feedItem struct {
	PK                      string `dynamodbav:"PK"`
	SK                      string `dynamodbav:"SK"`
	PostID                  string `dynamodbav:"postId"`
	AuthorID                string `dynamodbav:"authorId"`
	AuthorHandle            string `dynamodbav:"authorHandle"`
	AuthorFullName          string `dynamodbav:"authorFullName"`
	AuthorProfilePictureURL string `dynamodbav:"authorProfilePictureUrl"`
	ImageURL                string `dynamodbav:"imageUrl"`
	Caption                 string `dynamodbav:"caption"`
	LikesCount              int    `dynamodbav:"likesCount"`
	CommentsCount           int    `dynamodbav:"commentsCount"`
	CreatedAt               string `dynamodbav:"createdAt"`
	IsLiked                 bool   `dynamodbav:"isLiked"`
}

func (i feedItem) toFeedPostItem() entities.FeedPostItem {
	return entities.FeedPostItem{
		ID:                      i.PostID,
		AuthorID:                i.AuthorID,
		AuthorHandle:            i.AuthorHandle,
		AuthorFullName:          i.AuthorFullName,
		AuthorProfilePictureURL: i.AuthorProfilePictureURL,
		ImageURL:                i.ImageURL,
		Caption:                 i.Caption,
		LikesCount:              max(i.LikesCount, 0),
		CommentsCount:           max(i.CommentsCount, 0),
		CreatedAt:               i.CreatedAt,
		IsLiked:                 i.IsLiked,
		Source:                  entities.SourceMaterialized,
	}
}

// GetMaterializedFeedItems returns one page of the viewer's feed, newest first
func (r *FeedRepository) GetMaterializedFeedItems(ctx context.Context, req ports.MaterializedFeedRequest) (*ports.MaterializedFeedPage, error) {
	pk := feedPK(req.ViewerID)

	startKey, err := decodeCursor(req.Cursor, pk)
	if err != nil {
		return nil, err
	}

	keyCond := expression.Key(attrPK).Equal(expression.Value(pk)).
		And(expression.Key(attrSK).BeginsWith(postPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build feed query: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(req.Limit)),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query materialized feed", err)
	}

	var rows []feedItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed items: %w", err)
	}

	items := make([]entities.FeedPostItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toFeedPostItem())
	}

	nextCursor, err := encodeCursor(result.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Read materialized feed",
		zap.String("viewerID", req.ViewerID),
		zap.Int("items", len(items)),
		zap.Bool("hasNext", nextCursor != ""),
	)

	return &ports.MaterializedFeedPage{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}
