package entities

import (
	"time"
)

// ItemSource tags where a feed item came from
type ItemSource string

const (
	// SourceMaterialized marks items read from the pre-computed per-viewer feed
	SourceMaterialized ItemSource = "materialized"

	// SourceQueryTime marks items fetched live from a celebrity account
	SourceQueryTime ItemSource = "query-time"
)

// FeedPostItem is a normalized post entry ready for display in a feed.
// Items are value objects: merging reorders or drops them but never edits them.
type FeedPostItem struct {
	ID                      string     `json:"id"`
	AuthorID                string     `json:"authorId"`
	AuthorHandle            string     `json:"authorHandle"`
	AuthorFullName          string     `json:"authorFullName"`
	AuthorProfilePictureURL string     `json:"authorProfilePictureUrl"`
	ImageURL                string     `json:"imageUrl"`
	Caption                 string     `json:"caption"`
	LikesCount              int        `json:"likesCount"`
	CommentsCount           int        `json:"commentsCount"`
	CreatedAt               string     `json:"createdAt"`
	IsLiked                 bool       `json:"isLiked"`
	Source                  ItemSource `json:"source"`
}

// CreatedAtTime parses CreatedAt as an ISO-8601 timestamp.
// Fractional seconds are accepted.
func (i FeedPostItem) CreatedAtTime() (time.Time, error) {
	return time.Parse(time.RFC3339, i.CreatedAt)
}

// SortKey returns the parsed timestamp, or the zero time when CreatedAt is
// not parseable so that such items sink to the end of a descending sort.
func (i FeedPostItem) SortKey() time.Time {
	t, err := i.CreatedAtTime()
	if err != nil {
		return time.Time{}
	}
	return t
}
