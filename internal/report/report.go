// Package report renders the per-category digest for a pipeline run.
package report

import (
	"fmt"
	"io"
	"strings"

	"newsmon/internal/fetch"
	"newsmon/internal/news"
)

// Section is one category's worth of results plus the counters that
// explain how the final list was arrived at.
type Section struct {
	Category  string
	Articles  []news.Article
	Summaries []string

	Raw    int // articles fetched before dedupe
	Unique int // after dedupe and seen-cache filtering
	Stats  fetch.Stats
}

// WriteSection writes a numbered digest for one category followed by a
// short diagnostics footer. Articles and Summaries are expected to be
// index-aligned; a missing summary is rendered as a gap, not an error.
func WriteSection(w io.Writer, s Section) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n=== %s ===\n", s.Category))

	if len(s.Articles) == 0 {
		b.WriteString("No relevant articles found.\n")
	}

	for i, a := range s.Articles {
		title := a.Title
		if title == "" {
			title = "Untitled"
		}
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, title))

		meta := a.SourceName
		if !a.Published.IsZero() {
			date := a.Published.Format("2006-01-02")
			if meta != "" {
				meta += " • " + date
			} else {
				meta = date
			}
		}
		if meta != "" {
			b.WriteString(fmt.Sprintf("   %s\n", meta))
		}

		if i < len(s.Summaries) && s.Summaries[i] != "" {
			b.WriteString(fmt.Sprintf("   %s\n", s.Summaries[i]))
		}
		if a.URL != "" {
			b.WriteString(fmt.Sprintf("   %s\n", a.URL))
		}
	}

	b.WriteString(fmt.Sprintf(
		"\n[%s: %d fetched → %d unique → %d relevant | items %d ok / %d failed | %d API calls]\n",
		s.Category, s.Raw, s.Unique, len(s.Articles),
		s.Stats.SuccessfulItems, s.Stats.FailedItems, s.Stats.Calls,
	))

	_, err := io.WriteString(w, b.String())
	return err
}
