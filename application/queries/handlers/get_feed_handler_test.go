package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"social-backend/application/ports"
	"social-backend/application/ports/mocks"
	"social-backend/application/queries"
	"social-backend/domain/core/entities"
	"social-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const viewerID = "3f1c2b6e-9a4d-4e2f-8b7a-1c2d3e4f5a6b"

type mockCelebrityFetcher struct {
	mock.Mock
}

func (m *mockCelebrityFetcher) FetchCelebrityPosts(ctx context.Context, viewerID string, limit int) ([]entities.FeedPostItem, error) {
	args := m.Called(ctx, viewerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FeedPostItem), args.Error(1)
}

type recordedComposition struct {
	source       string
	materialized int
	celebrity    int
}

type fakeRecorder struct {
	samples []recordedComposition
}

func (f *fakeRecorder) RecordFeedComposition(source string, materializedCount, celebrityCount int) {
	f.samples = append(f.samples, recordedComposition{source, materializedCount, celebrityCount})
}

func materializedItems(n int, newest time.Duration, step time.Duration) []entities.FeedPostItem {
	items := make([]entities.FeedPostItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, mocks.FeedItem(fmt.Sprintf("m%02d", i), newest-time.Duration(i)*step, entities.SourceMaterialized))
	}
	return items
}

func celebrityItems(n int, newest time.Duration, step time.Duration) []entities.FeedPostItem {
	items := make([]entities.FeedPostItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, mocks.FeedItem(fmt.Sprintf("c%02d", i), newest-time.Duration(i)*step, entities.SourceQueryTime))
	}
	return items
}

func TestGetFeedHandler_Handle_MaterializedOnly(t *testing.T) {
	// Arrange: 15 materialized items, no celebrities followed
	ctx := context.Background()
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)
	recorder := &fakeRecorder{}

	feedSource.On("GetMaterializedFeedItems", mock.Anything, ports.MaterializedFeedRequest{
		ViewerID: viewerID,
		Limit:    20,
	}).Return(&ports.MaterializedFeedPage{Items: materializedItems(15, time.Hour, time.Minute)}, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 20).Return([]entities.FeedPostItem{}, nil)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, recorder, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, queries.GetFeedQuery{ViewerID: viewerID, Limit: 20})

	// Assert
	require.NoError(t, err)
	assert.Len(t, result.Posts, 15)
	assert.False(t, result.HasMore)
	assert.Empty(t, result.NextCursor)
	assert.Equal(t, valueobjects.FeedSourceMaterialized, result.Source)
	assert.Equal(t, []recordedComposition{{"materialized", 15, 0}}, recorder.samples)
	feedSource.AssertExpectations(t)
	celebrity.AssertExpectations(t)
}

func TestGetFeedHandler_Handle_HybridTruncatesAndInterleaves(t *testing.T) {
	// Arrange: 25 materialized and 10 celebrity items with interleaved timestamps
	ctx := context.Background()
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)

	materialized := materializedItems(25, 10*time.Hour, 2*time.Minute)
	celeb := celebrityItems(10, 10*time.Hour-time.Minute, 2*time.Minute)

	feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).
		Return(&ports.MaterializedFeedPage{Items: materialized, NextCursor: "next-page"}, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 20).Return(celeb, nil)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	// Act
	result, err := handler.Handle(ctx, queries.GetFeedQuery{ViewerID: viewerID, Limit: 20})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Posts, 20)
	assert.Equal(t, valueobjects.FeedSourceHybrid, result.Source)
	assert.True(t, result.HasMore)
	assert.Equal(t, "next-page", result.NextCursor)
	assert.Equal(t, []string{"m00", "c00", "m01", "c01"}, mocks.IDs(result.Posts[:4]))

	for i := 1; i < len(result.Posts); i++ {
		prev, err := result.Posts[i-1].CreatedAtTime()
		require.NoError(t, err)
		cur, err := result.Posts[i].CreatedAtTime()
		require.NoError(t, err)
		assert.False(t, cur.After(prev))
	}
}

func TestGetFeedHandler_Handle_QueryTimeOnly(t *testing.T) {
	ctx := context.Background()
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)

	feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).
		Return(&ports.MaterializedFeedPage{}, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 10).
		Return(celebrityItems(4, time.Hour, time.Minute), nil)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	result, err := handler.Handle(ctx, queries.GetFeedQuery{ViewerID: viewerID, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, valueobjects.FeedSourceQueryTime, result.Source)
	assert.Len(t, result.Posts, 4)
	assert.False(t, result.HasMore)
}

func TestGetFeedHandler_Handle_HasMore(t *testing.T) {
	tests := []struct {
		name       string
		nextCursor string
		celebrity  int
		limit      int
		want       bool
	}{
		{"no cursor, few celebrity posts", "", 3, 10, false},
		{"cursor present", "abc", 0, 10, true},
		{"celebrity posts reach limit", "", 10, 10, true},
		{"celebrity posts exceed limit", "", 12, 10, true},
		{"celebrity posts one short", "", 9, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			feedSource := new(mocks.MockMaterializedFeedSource)
			celebrity := new(mockCelebrityFetcher)
			feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).
				Return(&ports.MaterializedFeedPage{
					Items:      materializedItems(2, time.Hour, time.Minute),
					NextCursor: tt.nextCursor,
				}, nil)
			celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, tt.limit).
				Return(celebrityItems(tt.celebrity, 2*time.Hour, time.Minute), nil)

			handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

			// Act
			result, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: viewerID, Limit: tt.limit})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.HasMore)
			assert.Equal(t, tt.nextCursor, result.NextCursor)
			assert.LessOrEqual(t, len(result.Posts), tt.limit)
		})
	}
}

func TestGetFeedHandler_Handle_PassesCursorThrough(t *testing.T) {
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)

	feedSource.On("GetMaterializedFeedItems", mock.Anything, ports.MaterializedFeedRequest{
		ViewerID: viewerID,
		Limit:    5,
		Cursor:   "opaque==",
	}).Return(&ports.MaterializedFeedPage{}, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 5).Return([]entities.FeedPostItem{}, nil)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: viewerID, Limit: 5, Cursor: "opaque=="})

	require.NoError(t, err)
	feedSource.AssertExpectations(t)
}

func TestGetFeedHandler_Handle_NilPageIsEmpty(t *testing.T) {
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)

	feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).Return(nil, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 20).Return([]entities.FeedPostItem{}, nil)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: viewerID, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, result.Posts)
	assert.Empty(t, result.Posts)
	assert.False(t, result.HasMore)
}

func TestGetFeedHandler_Handle_MaterializedError(t *testing.T) {
	// Arrange
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)
	boom := errors.New("dynamodb timeout")

	feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).Return(nil, boom)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: viewerID, Limit: 20})

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to fetch materialized feed")
	assert.Nil(t, result)
	celebrity.AssertNotCalled(t, "FetchCelebrityPosts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetFeedHandler_Handle_CelebrityErrorFailsRequest(t *testing.T) {
	// Arrange
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)
	recorder := &fakeRecorder{}
	boom := errors.New("post store down")

	feedSource.On("GetMaterializedFeedItems", mock.Anything, mock.Anything).
		Return(&ports.MaterializedFeedPage{Items: materializedItems(3, time.Hour, time.Minute)}, nil)
	celebrity.On("FetchCelebrityPosts", mock.Anything, viewerID, 20).Return(nil, boom)

	handler := NewGetFeedHandler(feedSource, celebrity, nil, recorder, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: viewerID, Limit: 20})

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to fetch celebrity posts")
	assert.Nil(t, result)
	assert.Empty(t, recorder.samples)
}

func TestGetFeedHandler_Handle_InvalidQuery(t *testing.T) {
	feedSource := new(mocks.MockMaterializedFeedSource)
	celebrity := new(mockCelebrityFetcher)
	handler := NewGetFeedHandler(feedSource, celebrity, nil, nil, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{ViewerID: "not-a-uuid", Limit: 20})

	assert.Error(t, err)
	feedSource.AssertNotCalled(t, "GetMaterializedFeedItems", mock.Anything, mock.Anything)
}
