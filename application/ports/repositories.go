package ports

import (
	"context"

	"social-backend/domain/core/entities"
)

// MaterializedFeedSource reads the pre-computed, per-viewer feed.
// This is a port in hexagonal architecture - the feed core does not know
// whether entries live in DynamoDB or Redis.
type MaterializedFeedSource interface {
	// GetMaterializedFeedItems returns one page of the viewer's materialized feed.
	// The cursor is opaque and passed through verbatim; empty means first page.
	GetMaterializedFeedItems(ctx context.Context, req MaterializedFeedRequest) (*MaterializedFeedPage, error)
}

// FollowGraph answers who-follows-whom questions
type FollowGraph interface {
	// GetFollowingList returns the ids of every account the user follows
	GetFollowingList(ctx context.Context, userID string) ([]string, error)

	// GetFollowerCount returns how many accounts follow the given account
	GetFollowerCount(ctx context.Context, accountID string) (int, error)
}

// PostStore reads posts authored by a single account, newest first
type PostStore interface {
	// GetUserPosts returns up to limit posts for the account, starting after cursor
	GetUserPosts(ctx context.Context, accountID string, limit int, cursor string) (*PostPage, error)
}

// MaterializedFeedRequest encapsulates the materialized feed query
type MaterializedFeedRequest struct {
	ViewerID string
	Limit    int
	Cursor   string
}

// MaterializedFeedPage is one page of materialized feed entries
type MaterializedFeedPage struct {
	Items      []entities.FeedPostItem
	NextCursor string // empty when there are no more pages
}

// HasNext reports whether the store returned a continuation cursor
func (p *MaterializedFeedPage) HasNext() bool {
	return p != nil && p.NextCursor != ""
}

// PostPage is one page of an account's posts
type PostPage struct {
	Posts      []entities.Post
	NextCursor string
	HasMore    bool
}
