// Package news holds the shared article model and the URL deduplicator.
package news

import (
	"sort"
	"time"
)

// Article is a single fetched news item. URL is the identity key: two
// articles with the same non-empty URL are the same article.
type Article struct {
	URL        string
	Title      string
	Body       string
	Published  time.Time
	SourceName string
}

// Dedupe collapses articles by URL, keeping the first occurrence in fetch
// order. Articles without a URL pass through unconditionally; they are never
// treated as duplicates of each other or of anything else.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		if a.URL == "" {
			out = append(out, a)
			continue
		}
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}

	return out
}

// SortByRecency orders articles newest first, in place. The sort is stable so
// fetch order breaks ties.
func SortByRecency(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}
