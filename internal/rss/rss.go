// Package rss is a supplemental article source: configured feeds are parsed
// and mapped onto the shared article model, then flow through the same
// dedupe/relevance/summarize pipeline as API results.
package rss

import (
	"log/slog"

	"github.com/mmcdole/gofeed"

	"newsmon/internal/news"
)

// Fetch downloads and parses all feeds. Per-feed failures are logged and
// skipped; a broken feed never stops the run.
func Fetch(urls []string) []news.Article {
	if len(urls) == 0 {
		return nil
	}

	parser := gofeed.NewParser()
	var articles []news.Article
	ok := 0

	for _, url := range urls {
		feed, err := parser.ParseURL(url)
		if err != nil {
			slog.Warn("rss feed failed", "url", url, "error", err)
			continue
		}
		ok++

		for _, item := range feed.Items {
			a := news.Article{
				URL:        item.Link,
				Title:      item.Title,
				Body:       item.Description,
				SourceName: feed.Title,
			}
			if item.Content != "" {
				a.Body = item.Content
			}
			if item.PublishedParsed != nil {
				a.Published = *item.PublishedParsed
			}
			articles = append(articles, a)
		}
	}

	slog.Info("rss feeds fetched", "ok", ok, "total", len(urls), "articles", len(articles))
	return articles
}
