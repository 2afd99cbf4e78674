package mocks

import (
	"fmt"
	"time"

	"social-backend/domain/core/entities"
)

// BaseTime anchors fixture timestamps
var BaseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// FeedItem builds a feed item created offset after BaseTime
func FeedItem(id string, offset time.Duration, source entities.ItemSource) entities.FeedPostItem {
	return entities.FeedPostItem{
		ID:             id,
		AuthorID:       "author-" + id,
		AuthorHandle:   "handle_" + id,
		AuthorFullName: "Author " + id,
		Caption:        fmt.Sprintf("caption %s", id),
		CreatedAt:      BaseTime.Add(offset).Format(time.RFC3339Nano),
		Source:         source,
	}
}

// Post builds a raw post by author created offset after BaseTime
func Post(id, author string, offset time.Duration) entities.Post {
	return entities.Post{
		PostID:        id,
		UserID:        author,
		Handle:        "handle_" + author,
		FullName:      "Author " + author,
		Caption:       fmt.Sprintf("caption %s", id),
		LikesCount:    3,
		CommentsCount: 1,
		CreatedAt:     BaseTime.Add(offset).Format(time.RFC3339Nano),
		UpdatedAt:     BaseTime.Add(offset).Format(time.RFC3339Nano),
	}
}

// IDs returns the ids of items in order
func IDs(items []entities.FeedPostItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
