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

// PostRepository reads an author's posts from the single table
type PostRepository struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(client Client, tableName string, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.PostStore = (*PostRepository)(nil)

// postItem represents the DynamoDB item structure for a post
type postItem struct {
	PK                string `dynamodbav:"PK"`
	SK                string `dynamodbav:"SK"`
	PostID            string `dynamodbav:"postId"`
	UserID            string `dynamodbav:"userId"`
	Handle            string `dynamodbav:"handle"`
	FullName          string `dynamodbav:"fullName"`
	ProfilePictureURL string `dynamodbav:"profilePictureUrl"`
	ImageURL          string `dynamodbav:"imageUrl"`
	Caption           string `dynamodbav:"caption"`
	LikesCount        int    `dynamodbav:"likesCount"`
	CommentsCount     int    `dynamodbav:"commentsCount"`
	CreatedAt         string `dynamodbav:"createdAt"`
	UpdatedAt         string `dynamodbav:"updatedAt"`
	IsLiked           *bool  `dynamodbav:"isLiked"`
}

func (i postItem) toPost() entities.Post {
	return entities.Post{
		PostID:            i.PostID,
		UserID:            i.UserID,
		Handle:            i.Handle,
		FullName:          i.FullName,
		ProfilePictureURL: i.ProfilePictureURL,
		ImageURL:          i.ImageURL,
		Caption:           i.Caption,
		LikesCount:        i.LikesCount,
		CommentsCount:     i.CommentsCount,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
		IsLiked:           i.IsLiked,
	}
}

// GetUserPosts returns up to limit of the account's posts, newest first
func (r *PostRepository) GetUserPosts(ctx context.Context, accountID string, limit int, cursor string) (*ports.PostPage, error) {
	pk := userPK(accountID)

	startKey, err := decodeCursor(cursor, pk)
	if err != nil {
		return nil, err
	}

	keyCond := expression.Key(attrPK).Equal(expression.Value(pk)).
		And(expression.Key(attrSK).BeginsWith(postPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build posts query: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(int32(limit)),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query user posts", err)
	}

	var rows []postItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	posts := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}

	nextCursor, err := encodeCursor(result.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	return &ports.PostPage{
		Posts:      posts,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	}, nil
}
