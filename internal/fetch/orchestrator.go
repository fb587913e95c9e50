// Package fetch pages through the article source for every keyword item,
// bounded by the quota budget. Per-item failures degrade to "stop paging this
// item"; partial results beat no results for a monitoring run.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newsmon/internal/eventregistry"
	"newsmon/internal/keywords"
	"newsmon/internal/metrics"
	"newsmon/internal/news"
)

// Searcher is the single-call article source the orchestrator pages through.
type Searcher interface {
	Search(ctx context.Context, spec eventregistry.QuerySpec) (*eventregistry.SearchResponse, error)
}

// Stats describes one FetchAll run for diagnostics. Failures stay visible
// here even though they never abort the run.
type Stats struct {
	Items           int
	Truncated       bool
	SuccessfulItems int
	FailedItems     int
	Calls           int
	Articles        int
}

type Orchestrator struct {
	source    Searcher
	budget    Budget
	dataTypes []string
	sleep     eventregistry.SleepFunc
}

type Option func(*Orchestrator)

// WithSleep replaces the inter-call throttle sleep, for tests.
func WithSleep(sleep eventregistry.SleepFunc) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

func NewOrchestrator(source Searcher, budget Budget, dataTypes []string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:    source,
		budget:    budget,
		dataTypes: dataTypes,
		sleep: func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
				return nil
			}
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchAll aggregates articles for every keyword item within the budget. The
// returned slice still contains cross-item and cross-page duplicates; the
// caller dedupes. Errors are swallowed into early termination of the failing
// item, never of the whole run.
func (o *Orchestrator) FetchAll(ctx context.Context, items []keywords.Item, dateStart, dateEnd string) ([]news.Article, Stats) {
	var stats Stats

	if len(items) > o.budget.MaxKeywordsPerRun {
		slog.Warn("limiting keyword items to preserve quota",
			"total", len(items), "limit", o.budget.MaxKeywordsPerRun)
		items = items[:o.budget.MaxKeywordsPerRun]
		stats.Truncated = true
	}
	stats.Items = len(items)

	var all []news.Article
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		results := o.fetchItem(ctx, item, dateStart, dateEnd, &stats)
		if len(results) > 0 {
			stats.SuccessfulItems++
			all = append(all, results...)
		} else {
			stats.FailedItems++
		}
	}

	stats.Articles = len(all)
	metrics.Global.AddArticlesFetched(len(all))
	metrics.Global.AddAPICalls(stats.Calls)
	metrics.Global.AddItemResults(stats.SuccessfulItems, stats.FailedItems)
	return all, stats
}

func (o *Orchestrator) fetchItem(ctx context.Context, item keywords.Item, dateStart, dateEnd string, stats *Stats) []news.Article {
	spec := eventregistry.QuerySpec{
		Keywords:  []string{item.Keyword},
		DateStart: dateStart,
		DateEnd:   dateEnd,
		DataTypes: o.dataTypes,
		PageSize:  o.budget.MaxArticlesPerCall,
	}
	if item.Developer != "" {
		spec.Keywords = []string{item.Keyword, item.Developer}
		spec.Conjunctive = true
	}

	var results []news.Article
	for page := 1; page <= o.budget.MaxPagesPerItem; page++ {
		spec.Page = page

		resp, err := o.source.Search(ctx, spec)
		stats.Calls++
		o.throttle(ctx)

		if err != nil {
			var apiErr *eventregistry.Error
			if errors.As(err, &apiErr) {
				slog.Warn("search failed, skipping rest of item",
					"keyword", item.Keyword, "developer", item.Developer,
					"page", page, "kind", apiErr.Kind.String(), "status", apiErr.Status)
			} else {
				slog.Warn("search failed, skipping rest of item",
					"keyword", item.Keyword, "page", page, "error", err)
			}
			break
		}

		slog.Debug("page fetched",
			"keyword", item.Keyword, "page", page,
			"results", len(resp.Results), "available", resp.TotalResults)

		if len(resp.Results) == 0 {
			break
		}
		results = append(results, resp.Results...)

		// Short page: this was the last one.
		if len(resp.Results) < o.budget.MaxArticlesPerCall {
			break
		}
	}
	return results
}

// throttle applies the inter-call delay, on failures too, so retry storms
// cannot bypass the budget's pacing.
func (o *Orchestrator) throttle(ctx context.Context) {
	if o.budget.RequestDelay <= 0 {
		return
	}
	o.sleep(ctx, o.budget.RequestDelay)
}
