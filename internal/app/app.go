// Package app wires the full monitoring pipeline: keyword catalog, article
// fetching, dedupe, relevance filtering, body enrichment, summarization and
// digest rendering.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"newsmon/internal/cache"
	"newsmon/internal/config"
	"newsmon/internal/eventregistry"
	"newsmon/internal/fetch"
	"newsmon/internal/keywords"
	"newsmon/internal/metrics"
	"newsmon/internal/news"
	"newsmon/internal/ratelimit"
	"newsmon/internal/relevance"
	"newsmon/internal/report"
	"newsmon/internal/rss"
	"newsmon/internal/scraper"
	"newsmon/internal/storage"
	"newsmon/internal/summarize"
)

const catalogTTL = 24 * time.Hour

// Run executes one monitoring pass over every catalog category and writes
// the digest to out. A catalog or configuration failure aborts the run;
// per-category failures degrade to placeholder output instead.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	start := time.Now()

	catalog, err := keywords.NewCachedLoader(cfg.KeywordsPath, catalogTTL).Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("loading keyword catalog: %w", err)
	}
	slog.Info("Keyword catalog loaded",
		"categories", len(catalog),
		"items", catalog.TotalItems())

	budget := fetch.Budget{
		MaxArticlesPerCall: cfg.MaxArticlesPerCall,
		MaxPagesPerItem:    cfg.MaxPagesPerItem,
		MaxKeywordsPerRun:  cfg.MaxKeywordsPerRun,
		RequestDelay:       cfg.RequestDelay,
	}
	if err := budget.Validate(); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("quota budget: %w", err)
	}
	slog.Info("Run budget",
		"estimated_max_calls", budget.EstimateCalls(catalog.TotalItems()),
		"date_start", cfg.DateStart,
		"date_end", cfg.DateEnd)

	source := eventregistry.NewClient(cfg.NewsAPIKey)
	orchestrator := fetch.NewOrchestrator(source, budget, cfg.DataTypes)

	providers := []summarize.Completer{summarize.NewOpenAIClient(cfg.OpenAIAPIKey)}
	if cfg.GeminiAPIKey != "" {
		gemini, err := summarize.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			slog.Warn("Gemini fallback unavailable", "error", err)
		} else {
			defer gemini.Close()
			providers = append(providers, gemini)
		}
	}
	summarizer := summarize.New(providers,
		summarize.WithLimiter(ratelimit.New(cfg.MaxAIRequests)),
		summarize.WithCache(cache.New(), cfg.CacheTTL))

	var reported *storage.ReportedCache
	if cfg.CacheFilePath != "" {
		reported = storage.NewReportedCache(cfg.CacheFilePath, cfg.CacheTTL)
		if err := reported.Load(); err != nil {
			slog.Warn("Reported cache unavailable, continuing without it", "error", err)
			reported = nil
		}
	}

	var feedArticles []news.Article
	if len(cfg.Feeds) > 0 {
		feedArticles = rss.Fetch(cfg.Feeds)
		slog.Info("Supplemental feeds fetched",
			"feeds", len(cfg.Feeds),
			"articles", len(feedArticles))
	}

	categories := make([]string, 0, len(catalog))
	for category := range catalog {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			metrics.Global.SetError(err.Error())
			return err
		}
		items := catalog[category]
		section := runCategory(ctx, cfg, orchestrator, summarizer, reported, feedArticles, category, items)
		if err := report.WriteSection(out, section); err != nil {
			metrics.Global.SetError(err.Error())
			return fmt.Errorf("writing digest for %s: %w", category, err)
		}
	}

	if reported != nil {
		if err := reported.Save(); err != nil {
			slog.Warn("Failed to persist reported cache", "error", err)
		}
	}

	metrics.Global.SetLastRun(time.Since(start))
	slog.Info("Run complete", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func runCategory(
	ctx context.Context,
	cfg *config.Config,
	orchestrator *fetch.Orchestrator,
	summarizer *summarize.Summarizer,
	reported *storage.ReportedCache,
	feedArticles []news.Article,
	category string,
	items []keywords.Item,
) report.Section {
	slog.Info("Processing category", "category", category, "items", len(items))

	articles, stats := orchestrator.FetchAll(ctx, items, cfg.DateStart, cfg.DateEnd)
	articles = append(articles, feedArticles...)
	raw := len(articles)

	articles = news.Dedupe(articles)
	metrics.Global.AddDuplicatesFiltered(raw - len(articles))
	if reported != nil {
		articles = reported.Filter(articles)
	}
	unique := len(articles)

	articles = relevance.Filter(articles, items, cfg.FuzzyThreshold)
	metrics.Global.AddRelevantArticles(len(articles))
	news.SortByRecency(articles)

	slog.Info("Category filtered",
		"category", category,
		"raw", raw,
		"unique", unique,
		"relevant", len(articles))

	var summaries []string
	if len(articles) > 0 {
		if enriched := scraper.Enrich(ctx, articles, cfg.ScrapeMinBody, cfg.ScrapeMaxArticles); enriched > 0 {
			slog.Debug("Article bodies enriched", "category", category, "count", enriched)
		}
		summaries = summarizer.Summarize(ctx, articles, cfg.SummarySentences)
	}

	if reported != nil {
		reported.Mark(articles, category)
	}

	return report.Section{
		Category:  category,
		Articles:  articles,
		Summaries: summaries,
		Raw:       raw,
		Unique:    unique,
		Stats:     stats,
	}
}
