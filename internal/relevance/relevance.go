// Package relevance re-verifies fetched articles against the keyword items
// that drove the search. The upstream API matches broadly and does not
// guarantee the keyword+developer conjunction, so a second, precise pass runs
// client-side with fuzzy matching.
package relevance

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"newsmon/internal/keywords"
	"newsmon/internal/news"
)

// Match reports whether keyword plausibly occurs in text. A literal substring
// match always wins, regardless of threshold; otherwise any of the three
// similarity ratios must reach threshold (0-100 scale).
func Match(text, keyword string, threshold int) bool {
	t := strings.ToLower(text)
	k := strings.ToLower(keyword)

	if strings.Contains(t, k) {
		return true
	}

	return fuzzy.Ratio(k, t) >= threshold ||
		fuzzy.PartialRatio(k, t) >= threshold ||
		fuzzy.TokenSetRatio(k, t) >= threshold
}

// Filter retains every article relevant to at least one keyword item. Within
// an item the keyword and developer must match independently (AND); across
// items one match suffices (OR). Evaluation short-circuits on the first
// matching item.
func Filter(articles []news.Article, items []keywords.Item, threshold int) []news.Article {
	if len(articles) == 0 || len(items) == 0 {
		return nil
	}

	relevant := make([]news.Article, 0, len(articles))
	for _, art := range articles {
		text := strings.ToLower(art.Title + " " + art.Body)

		for _, item := range items {
			if !Match(text, item.Keyword, threshold) {
				continue
			}
			if item.Developer != "" && !Match(text, item.Developer, threshold) {
				continue
			}
			relevant = append(relevant, art)
			break
		}
	}
	return relevant
}
