package queries

import (
	"social-backend/domain/core/entities"
	"social-backend/domain/core/valueobjects"
	pkgerrors "social-backend/pkg/errors"
	"social-backend/pkg/utils"
)

// GetFeedQuery represents a request for one page of a viewer's home feed
type GetFeedQuery struct {
	ViewerID string `validate:"required,uuid"`
	Limit    int    `validate:"min=1,max=100"`
	Cursor   string // opaque, passed through to the materialized feed store
}

// Validate validates the GetFeedQuery
func (q GetFeedQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// GetFeedResult is the feed response envelope
type GetFeedResult struct {
	Posts      []entities.FeedPostItem `json:"posts"`
	HasMore    bool                    `json:"hasMore"`
	NextCursor string                  `json:"nextCursor,omitempty"`
	Source     valueobjects.FeedSource `json:"source"`
}
