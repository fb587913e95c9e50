// Package summarize turns relevant articles into short per-article summaries
// via a language model, batching articles to keep the call volume down.
//
// The contract is length-preserving: Summarize always returns exactly one
// string per input article. Anything that goes wrong with a batch (provider
// failure, budget exhaustion, malformed response) degrades to placeholder
// text for that batch only.
package summarize

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"newsmon/internal/cache"
	"newsmon/internal/metrics"
	"newsmon/internal/news"
	"newsmon/internal/ratelimit"
)

const (
	batchSize           = 5
	bodyCharLimit       = 800
	maxOutputTokens     = 800
	samplingTemperature = 0.2

	placeholder = "Summary not available."
)

type Summarizer struct {
	providers []Completer
	limiter   *ratelimit.Limiter
	cache     *cache.Cache
	cacheTTL  time.Duration
}

type Option func(*Summarizer)

// WithLimiter enforces a per-run AI request budget. Exhausted budget degrades
// remaining batches to placeholders.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Summarizer) { s.limiter = l }
}

// WithCache reuses summaries for identical batches within ttl.
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *Summarizer) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func New(providers []Completer, opts ...Option) *Summarizer {
	s := &Summarizer{providers: providers}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns one summary per article, in order.
func (s *Summarizer) Summarize(ctx context.Context, articles []news.Article, sentences int) []string {
	if len(articles) == 0 {
		return nil
	}

	out := make([]string, 0, len(articles))
	for start := 0; start < len(articles); start += batchSize {
		end := min(start+batchSize, len(articles))
		out = append(out, s.summarizeBatch(ctx, articles[start:end], sentences)...)
	}
	return out
}

func (s *Summarizer) summarizeBatch(ctx context.Context, batch []news.Article, sentences int) []string {
	prompt := buildPrompt(batch, sentences)

	var key string
	if s.cache != nil {
		key = cache.Key(prompt)
		if v, ok := s.cache.Get(key); ok {
			if cached, ok := v.([]string); ok && len(cached) == len(batch) {
				slog.Debug("summary cache hit", "batch", len(batch))
				return cached
			}
		}
	}

	text, err := s.complete(ctx, prompt)
	if err != nil {
		slog.Warn("summarization batch failed", "batch", len(batch), "error", err)
		metrics.Global.AddSummaries(0, len(batch))
		return errorPlaceholders(len(batch), err)
	}

	summaries := fit(parseBatchResponse(text), len(batch))
	metrics.Global.AddSummaries(len(summaries), 0)

	if s.cache != nil {
		s.cache.Set(key, summaries, s.cacheTTL)
	}
	return summaries
}

// complete tries each provider in order until one returns usable text.
func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	lastErr := errors.New("no summarization providers configured")

	for _, p := range s.providers {
		if s.limiter != nil {
			if err := s.limiter.Use(p.Name()); err != nil {
				lastErr = err
				continue
			}
		}

		text, err := p.Complete(ctx, prompt, maxOutputTokens)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty model response")
		}
		slog.Warn("summarization provider failed", "provider", p.Name(), "error", err)
		lastErr = err
	}

	return "", lastErr
}

// fit pads a short parse result with placeholders and truncates extras so the
// output always matches the batch size.
func fit(summaries []string, n int) []string {
	for len(summaries) < n {
		summaries = append(summaries, placeholder)
	}
	return summaries[:n]
}

func errorPlaceholders(n int, err error) []string {
	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:50]
	}
	out := make([]string, n)
	for i := range out {
		out[i] = "Summary unavailable: " + msg
	}
	return out
}
