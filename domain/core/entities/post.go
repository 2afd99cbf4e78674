package entities

// Post is a post as returned by the post store, before it is normalized
// into a feed item. Counts default to zero when the store omits them.
type Post struct {
	PostID            string
	UserID            string
	Handle            string
	FullName          string
	ProfilePictureURL string
	ImageURL          string
	Caption           string
	LikesCount        int
	CommentsCount     int
	CreatedAt         string
	UpdatedAt         string

	// IsLiked is nil when the store does not know the viewer's like state
	IsLiked *bool
}

// ToFeedItem converts the post into a feed item tagged with the given source
func (p Post) ToFeedItem(source ItemSource) FeedPostItem {
	isLiked := false
	if p.IsLiked != nil {
		isLiked = *p.IsLiked
	}

	likes := p.LikesCount
	if likes < 0 {
		likes = 0
	}
	comments := p.CommentsCount
	if comments < 0 {
		comments = 0
	}

	return FeedPostItem{
		ID:                      p.PostID,
		AuthorID:                p.UserID,
		AuthorHandle:            p.Handle,
		AuthorFullName:          p.FullName,
		AuthorProfilePictureURL: p.ProfilePictureURL,
		ImageURL:                p.ImageURL,
		Caption:                 p.Caption,
		LikesCount:              likes,
		CommentsCount:           comments,
		CreatedAt:               p.CreatedAt,
		IsLiked:                 isLiked,
		Source:                  source,
	}
}
