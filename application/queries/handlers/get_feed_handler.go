package handlers

import (
	"context"
	"fmt"

	"social-backend/application/ports"
	"social-backend/application/queries"
	"social-backend/domain/core/entities"
	"social-backend/domain/core/valueobjects"
	"social-backend/domain/services"
	"social-backend/pkg/observability"

	"go.uber.org/zap"
)

// CelebrityPostFetcher resolves the query-time part of a feed
type CelebrityPostFetcher interface {
	FetchCelebrityPosts(ctx context.Context, viewerID string, limit int) ([]entities.FeedPostItem, error)
}

// CompositionRecorder receives one sample per served feed page
type CompositionRecorder interface {
	RecordFeedComposition(source string, materializedCount, celebrityCount int)
}

// GetFeedHandler assembles a hybrid feed: materialized entries merged with
// live celebrity posts, ranked newest first and cut to the page size.
type GetFeedHandler struct {
	feedSource ports.MaterializedFeedSource
	celebrity  CelebrityPostFetcher
	tracer     *observability.Tracer
	metrics    CompositionRecorder
	logger     *zap.Logger
}

// NewGetFeedHandler creates a new feed query handler
func NewGetFeedHandler(
	feedSource ports.MaterializedFeedSource,
	celebrity CelebrityPostFetcher,
	tracer *observability.Tracer,
	metrics CompositionRecorder,
	logger *zap.Logger,
) *GetFeedHandler {
	if tracer == nil {
		tracer = observability.NewNoopTracer()
	}
	return &GetFeedHandler{
		feedSource: feedSource,
		celebrity:  celebrity,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
	}
}

// Handle executes the feed query.
// A failure in either source fails the whole request; no partial feed is returned.
func (h *GetFeedHandler) Handle(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var page *ports.MaterializedFeedPage
	err := h.tracer.TraceFunction(ctx, "materialized_feed", func(ctx context.Context) error {
		var err error
		page, err = h.feedSource.GetMaterializedFeedItems(ctx, ports.MaterializedFeedRequest{
			ViewerID: query.ViewerID,
			Limit:    query.Limit,
			Cursor:   query.Cursor,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch materialized feed: %w", err)
	}
	if page == nil {
		page = &ports.MaterializedFeedPage{}
	}

	var celebrityItems []entities.FeedPostItem
	err = h.tracer.TraceFunction(ctx, "celebrity_posts", func(ctx context.Context) error {
		var err error
		celebrityItems, err = h.celebrity.FetchCelebrityPosts(ctx, query.ViewerID, query.Limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch celebrity posts: %w", err)
	}

	posts := services.MergeAndSort(page.Items, celebrityItems, query.Limit)
	source := valueobjects.DetermineFeedSource(len(page.Items), len(celebrityItems))

	result := &queries.GetFeedResult{
		Posts:      posts,
		HasMore:    page.HasNext() || len(celebrityItems) >= query.Limit,
		NextCursor: page.NextCursor,
		Source:     source,
	}

	h.tracer.AddAnnotation(ctx, "feed_source", source.String())
	if h.metrics != nil {
		h.metrics.RecordFeedComposition(source.String(), len(page.Items), len(celebrityItems))
	}
	h.logger.Debug("Assembled feed",
		zap.String("viewerID", query.ViewerID),
		zap.Int("materialized", len(page.Items)),
		zap.Int("celebrity", len(celebrityItems)),
		zap.Int("returned", len(posts)),
		zap.String("source", source.String()),
		zap.Bool("hasMore", result.HasMore),
	)

	return result, nil
}
