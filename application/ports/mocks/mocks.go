// Package mocks provides testify mocks of the feed ports.
package mocks

import (
	"context"

	"social-backend/application/ports"

	"github.com/stretchr/testify/mock"
)

// MockMaterializedFeedSource mocks ports.MaterializedFeedSource
type MockMaterializedFeedSource struct {
	mock.Mock
}

func (m *MockMaterializedFeedSource) GetMaterializedFeedItems(ctx context.Context, req ports.MaterializedFeedRequest) (*ports.MaterializedFeedPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MaterializedFeedPage), args.Error(1)
}

// MockFollowGraph mocks ports.FollowGraph
type MockFollowGraph struct {
	mock.Mock
}

func (m *MockFollowGraph) GetFollowingList(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowGraph) GetFollowerCount(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

// MockPostStore mocks ports.PostStore
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) GetUserPosts(ctx context.Context, accountID string, limit int, cursor string) (*ports.PostPage, error) {
	args := m.Called(ctx, accountID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PostPage), args.Error(1)
}

var (
	_ ports.MaterializedFeedSource = (*MockMaterializedFeedSource)(nil)
	_ ports.FollowGraph            = (*MockFollowGraph)(nil)
	_ ports.PostStore              = (*MockPostStore)(nil)
)
