package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_ToFeedItem(t *testing.T) {
	liked := true
	post := Post{
		PostID:            "p1",
		UserID:            "u1",
		Handle:            "celeb",
		FullName:          "Celeb Rity",
		ProfilePictureURL: "https://cdn/avatar.png",
		ImageURL:          "https://cdn/p1.png",
		Caption:           "hello",
		LikesCount:        10,
		CommentsCount:     2,
		CreatedAt:         "2024-01-15T12:00:00Z",
		IsLiked:           &liked,
	}

	item := post.ToFeedItem(SourceQueryTime)

	assert.Equal(t, FeedPostItem{
		ID:                      "p1",
		AuthorID:                "u1",
		AuthorHandle:            "celeb",
		AuthorFullName:          "Celeb Rity",
		AuthorProfilePictureURL: "https://cdn/avatar.png",
		ImageURL:                "https://cdn/p1.png",
		Caption:                 "hello",
		LikesCount:              10,
		CommentsCount:           2,
		CreatedAt:               "2024-01-15T12:00:00Z",
		IsLiked:                 true,
		Source:                  SourceQueryTime,
	}, item)
}

func TestPost_ToFeedItem_Defaults(t *testing.T) {
	post := Post{PostID: "p1", LikesCount: -3, CreatedAt: "2024-01-15T12:00:00Z"}

	item := post.ToFeedItem(SourceQueryTime)

	assert.False(t, item.IsLiked)
	assert.Zero(t, item.LikesCount)
	assert.Zero(t, item.CommentsCount)
}

func TestFeedPostItem_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(FeedPostItem{ID: "p1", Source: SourceMaterialized})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, name := range []string{
		"id", "authorId", "authorHandle", "authorFullName", "authorProfilePictureUrl",
		"imageUrl", "caption", "likesCount", "commentsCount", "createdAt", "isLiked", "source",
	} {
		assert.Contains(t, fields, name)
	}
	assert.Equal(t, "materialized", fields["source"])
}

func TestFeedPostItem_CreatedAtTime(t *testing.T) {
	_, err := FeedPostItem{CreatedAt: "2024-01-15T12:00:00.123Z"}.CreatedAtTime()
	assert.NoError(t, err)

	_, err = FeedPostItem{CreatedAt: "yesterday"}.CreatedAtTime()
	assert.Error(t, err)
	assert.True(t, FeedPostItem{CreatedAt: "yesterday"}.SortKey().IsZero())
}
