package valueobjects

// FeedSource describes how a feed response was composed. Clients use it as a
// UX hint only.
type FeedSource string

const (
	FeedSourceMaterialized FeedSource = "materialized"
	FeedSourceQueryTime    FeedSource = "query-time"
	FeedSourceHybrid       FeedSource = "hybrid"
)

// DetermineFeedSource classifies a response by how many items came from each
// side. Every pair of non-negative counts maps to exactly one source.
func DetermineFeedSource(materializedCount, celebrityCount int) FeedSource {
	switch {
	case celebrityCount == 0:
		return FeedSourceMaterialized
	case materializedCount == 0:
		return FeedSourceQueryTime
	default:
		return FeedSourceHybrid
	}
}

// String returns the wire value
func (s FeedSource) String() string {
	return string(s)
}
