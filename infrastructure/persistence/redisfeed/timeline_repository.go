package redisfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"social-backend/application/ports"
	"social-backend/domain/core/entities"
	pkgerrors "social-backend/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrInvalidCursor is returned for a cursor that is not a non-negative offset
var ErrInvalidCursor = errors.New("invalid timeline cursor")

// TimelineReader is the subset of the Redis API the timeline adapter reads with.
// *redis.Client and *redis.ClusterClient satisfy it.
type TimelineReader interface {
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// TimelineRepository serves materialized feeds kept in Redis sorted sets.
// Each viewer owns timeline:<viewerID>, scored by post creation time, with
// the JSON encoded feed item as member.
type TimelineRepository struct {
	client TimelineReader
	logger *zap.Logger
}

// NewTimelineRepository creates a new TimelineRepository
func NewTimelineRepository(client TimelineReader, logger *zap.Logger) *TimelineRepository {
	return &TimelineRepository{
		client: client,
		logger: logger,
	}
}

var _ ports.MaterializedFeedSource = (*TimelineRepository)(nil)

// TimelineKey returns the sorted set key for a viewer
func TimelineKey(viewerID string) string {
	return fmt.Sprintf("timeline:%s", viewerID)
}

// GetMaterializedFeedItems reads one page of the viewer's timeline, newest first.
// The cursor is the decimal offset of the next page.
func (r *TimelineRepository) GetMaterializedFeedItems(ctx context.Context, req ports.MaterializedFeedRequest) (*ports.MaterializedFeedPage, error) {
	offset, err := parseOffset(req.Cursor)
	if err != nil {
		return nil, err
	}

	// One extra member tells us whether another page exists
	start := offset
	stop := offset + int64(req.Limit)

	members, err := r.client.ZRevRange(ctx, TimelineKey(req.ViewerID), start, stop).Result()
	if err != nil {
		return nil, pkgerrors.NewExternalError("redis", err)
	}

	var nextCursor string
	if len(members) > req.Limit {
		members = members[:req.Limit]
		nextCursor = strconv.FormatInt(offset+int64(req.Limit), 10)
	}

	items := make([]entities.FeedPostItem, 0, len(members))
	for _, member := range members {
		var item entities.FeedPostItem
		if err := json.Unmarshal([]byte(member), &item); err != nil {
			r.logger.Warn("Skipping malformed timeline entry",
				zap.String("viewerID", req.ViewerID),
				zap.Error(err),
			)
			continue
		}
		item.Source = entities.SourceMaterialized
		items = append(items, item)
	}

	return &ports.MaterializedFeedPage{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}

func parseOffset(cursor string) (int64, error) {
	if cursor == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return offset, nil
}
