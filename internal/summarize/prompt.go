package summarize

import (
	"fmt"
	"strings"

	"newsmon/internal/news"
)

// buildPrompt asks for one fixed-format summary per article. Bodies are
// truncated to bound the prompt size; the strict SUMMARY n: format keeps the
// response parseable.
func buildPrompt(batch []news.Article, sentences int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize each article below in exactly %d sentences.\n", sentences)
	b.WriteString("Respond ONLY in this format:\n")
	for i := range batch {
		fmt.Fprintf(&b, "SUMMARY %d: <summary>\n", i+1)
	}
	b.WriteString("\nARTICLES:\n")

	for i, art := range batch {
		title := art.Title
		if title == "" {
			title = "Untitled"
		}
		body := art.Body
		if runes := []rune(body); len(runes) > bodyCharLimit {
			body = string(runes[:bodyCharLimit])
		}
		fmt.Fprintf(&b, "Article %d — Title: %s\nBody: %s\n\n", i+1, title, body)
	}

	return b.String()
}
