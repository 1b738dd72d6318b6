package news

import "sort"

// Dedupe collapses articles sharing an identity key. The newer article by
// publish time survives; on equal (or both-missing) timestamps the first
// one encountered in the input wins. First-seen order is preserved.
func Dedupe(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	index := make(map[string]int, len(articles))

	for _, a := range articles {
		key := a.IdentityKey()
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, a)
			continue
		}
		if a.Published.After(out[at].Published) {
			out[at] = a
		}
	}
	return out
}

// SelectRepresentative sorts articles by recency (missing timestamps last)
// and bounds the result to the [minCount, maxCount] window. It never pads:
// fewer than minCount articles are returned as-is.
func SelectRepresentative(articles []Article, minCount, maxCount int) []Article {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	// clamp(len, minCount, maxCount) without padding: below minCount the
	// whole set is returned, above maxCount the tail is cut.
	count := len(sorted)
	if count > maxCount {
		count = maxCount
	}
	if count < minCount {
		count = len(sorted)
	}
	return sorted[:count]
}
