package services

import (
	"sort"

	"social-backend/domain/core/entities"
)

// MergeAndSort combines materialized and celebrity items into one page ordered
// by createdAt, newest first, holding at most limit items.
//
// The sort is stable over the concatenation (materialized first), so items
// with equal timestamps keep their relative input order. Neither input slice
// is modified.
func MergeAndSort(materialized, celebrity []entities.FeedPostItem, limit int) []entities.FeedPostItem {
	if limit <= 0 {
		return []entities.FeedPostItem{}
	}

	merged := make([]entities.FeedPostItem, 0, len(materialized)+len(celebrity))
	merged = append(merged, materialized...)
	merged = append(merged, celebrity...)

	keys := make([]int64, len(merged))
	for i, item := range merged {
		t := item.SortKey()
		if t.IsZero() {
			keys[i] = minSortKey
			continue
		}
		keys[i] = t.UnixNano()
	}

	sort.Stable(byCreatedAtDesc{items: merged, keys: keys})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// minSortKey places unparseable timestamps after every real one
const minSortKey = int64(-1 << 63)

// byCreatedAtDesc sorts items and their precomputed keys together
type byCreatedAtDesc struct {
	items []entities.FeedPostItem
	keys  []int64
}

func (b byCreatedAtDesc) Len() int { return len(b.items) }

func (b byCreatedAtDesc) Less(i, j int) bool { return b.keys[i] > b.keys[j] }

func (b byCreatedAtDesc) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
