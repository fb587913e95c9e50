// Package scraper fetches full article bodies for results whose API body is
// missing or too thin to summarize. It only refetches URLs the pipeline has
// already discovered; it does no crawling of its own.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsmon/internal/news"
)

const (
	fetchTimeout  = 15 * time.Second
	interFetchGap = 500 * time.Millisecond
	maxBodyChars  = 1800
)

var httpClient = &http.Client{Timeout: fetchTimeout}

// selector cascade: most specific containers first, bare paragraphs last.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

var junkIndicators = []string{
	"cookie", "gdpr", "subscribe", "newsletter", "sign up", "log in",
	"read more", "click here", "follow us", "share this", "advertisement",
}

// ExtractBody fetches the page at url and returns cleaned paragraph text.
func ExtractBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	body := extractParagraphs(doc)
	if body == "" {
		return "", fmt.Errorf("no content found")
	}
	return body, nil
}

// Enrich replaces bodies shorter than minBodyLen with scraped page text, for
// up to maxFetches articles. Failures leave the original body in place.
// Returns the number of articles enriched.
func Enrich(ctx context.Context, articles []news.Article, minBodyLen, maxFetches int) int {
	enriched := 0
	fetched := 0

	for i := range articles {
		if fetched >= maxFetches {
			break
		}
		if len(articles[i].Body) >= minBodyLen || articles[i].URL == "" {
			continue
		}
		fetched++

		body, err := ExtractBody(ctx, articles[i].URL)
		if err != nil {
			slog.Debug("body extraction failed", "url", articles[i].URL, "error", err)
		} else if len(body) > len(articles[i].Body) {
			articles[i].Body = body
			enriched++
		}

		// Pace requests so we don't hammer news sites.
		select {
		case <-ctx.Done():
			return enriched
		case <-time.After(interFetchGap):
		}
	}

	if enriched > 0 {
		slog.Info("thin article bodies enriched", "enriched", enriched, "fetched", fetched)
	}
	return enriched
}

func extractParagraphs(doc *goquery.Document) string {
	var best []string

	for _, selector := range contentSelectors {
		var found []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 && !isJunkLine(text) {
				found = append(found, text)
			}
		})
		if len(found) >= 3 {
			best = found
			break
		}
		if len(found) > len(best) {
			best = found
		}
	}

	if len(best) == 0 {
		return ""
	}
	return clipParagraphs(best)
}

func isJunkLine(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// clipParagraphs joins paragraphs up to the body cap, on paragraph
// boundaries so summaries never see a half sentence.
func clipParagraphs(paragraphs []string) string {
	var kept []string
	total := 0

	for _, p := range paragraphs {
		if total+len(p) > maxBodyChars && len(kept) > 0 {
			break
		}
		kept = append(kept, p)
		total += len(p) + 2
	}

	return strings.Join(kept, "\n\n")
}
