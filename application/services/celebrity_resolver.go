package services

import (
	"context"
	"fmt"

	"social-backend/application/ports"
	"social-backend/domain/config"
	"social-backend/domain/core/entities"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CelebrityResolver produces the query-time part of a feed: recent posts of
// followed accounts whose follower count crosses the celebrity threshold.
type CelebrityResolver struct {
	followGraph ports.FollowGraph
	postStore   ports.PostStore
	config      *config.FeedConfig
	logger      *zap.Logger
}

// NewCelebrityResolver creates a new celebrity resolver
func NewCelebrityResolver(
	followGraph ports.FollowGraph,
	postStore ports.PostStore,
	cfg *config.FeedConfig,
	logger *zap.Logger,
) *CelebrityResolver {
	if cfg == nil {
		cfg = config.DefaultFeedConfig()
	}
	return &CelebrityResolver{
		followGraph: followGraph,
		postStore:   postStore,
		config:      cfg,
		logger:      logger,
	}
}

// FetchCelebrityPosts returns the first page of posts (at most limit each) of
// every celebrity the viewer follows, tagged as query-time items.
//
// Lookups run concurrently but the result is concatenated in following-list
// order. The first collaborator error cancels outstanding work and is returned.
func (r *CelebrityResolver) FetchCelebrityPosts(ctx context.Context, viewerID string, limit int) ([]entities.FeedPostItem, error) {
	following, err := r.followGraph.GetFollowingList(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following list: %w", err)
	}

	if len(following) == 0 {
		return []entities.FeedPostItem{}, nil
	}

	// One slot per followed account; non-celebrities leave theirs nil
	slots := make([][]entities.FeedPostItem, len(following))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.FanoutConcurrency)

	for i, accountID := range following {
		i, accountID := i, accountID
		g.Go(func() error {
			items, err := r.fetchIfCelebrity(gctx, accountID, limit)
			if err != nil {
				return err
			}
			slots[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]entities.FeedPostItem, 0)
	celebrities := 0
	for _, items := range slots {
		if items == nil {
			continue
		}
		celebrities++
		result = append(result, items...)
	}

	r.logger.Debug("Resolved celebrity posts",
		zap.String("viewerID", viewerID),
		zap.Int("following", len(following)),
		zap.Int("celebrities", celebrities),
		zap.Int("posts", len(result)),
	)

	return result, nil
}

// fetchIfCelebrity returns nil for regular accounts and a non-nil (possibly
// empty) slice for celebrities.
func (r *CelebrityResolver) fetchIfCelebrity(ctx context.Context, accountID string, limit int) ([]entities.FeedPostItem, error) {
	count, err := r.followGraph.GetFollowerCount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get follower count for %s: %w", accountID, err)
	}

	if !r.config.IsCelebrity(count) {
		return nil, nil
	}

	page, err := r.postStore.GetUserPosts(ctx, accountID, limit, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get posts for celebrity %s: %w", accountID, err)
	}

	items := make([]entities.FeedPostItem, 0)
	if page == nil {
		return items, nil
	}
	for _, post := range page.Posts {
		items = append(items, post.ToFeedItem(entities.SourceQueryTime))
	}
	return items, nil
}
