// Package eventregistry is a minimal client for the Event Registry article
// search API. It performs exactly one logical search per call, with bounded
// retry on throttling responses, and reports failures as typed outcomes
// rather than raw HTTP errors.
package eventregistry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newsmon/internal/news"
)

const (
	defaultBaseURL = "https://eventregistry.org"
	searchPath     = "/api/v1/article/getArticles"

	requestTimeout   = 30 * time.Second
	maxRetries       = 3
	bodyExcerptLimit = 200
)

// QuerySpec describes one paged search. Built per (keyword item, page) pair.
type QuerySpec struct {
	Keywords    []string // one keyword, or keyword+developer when Conjunctive
	Conjunctive bool
	DateStart   string // YYYY-MM-DD
	DateEnd     string
	DataTypes   []string
	Page        int
	PageSize    int
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Results      []news.Article
	TotalResults int
}

// SleepFunc pauses for the backoff duration. The default honors context
// cancellation; tests inject a recorder.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	sleep   SleepFunc
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) { c.sleep = sleep }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search issues one search call. 429 and 503 are retried up to maxRetries
// times with exponential backoff (2^(attempt+1) seconds); 403 returns
// immediately as quota exhaustion; other non-2xx statuses are surfaced with a
// body excerpt. The client keeps no state between calls.
func (c *Client) Search(ctx context.Context, spec QuerySpec) (*SearchResponse, error) {
	payload, err := json.Marshal(c.buildPayload(spec))
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.post(ctx, payload)
		if err != nil {
			return nil, &Error{Kind: KindTransport, cause: err}
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return parseResponse(resp.Body)

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
			drain(resp)
			if attempt >= maxRetries {
				return nil, &Error{Kind: KindRateLimited, Status: resp.StatusCode}
			}
			backoff := time.Duration(1<<(attempt+1)) * time.Second
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, &Error{Kind: KindTransport, cause: err}
			}

		case resp.StatusCode == http.StatusForbidden:
			drain(resp)
			return nil, &Error{Kind: KindQuotaExceeded, Status: resp.StatusCode}

		default:
			excerpt := readExcerpt(resp)
			return nil, &Error{Kind: KindHTTP, Status: resp.StatusCode, Body: excerpt}
		}
	}
}

func (c *Client) post(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// buildPayload mirrors the Event Registry getArticles contract, with the
// field-inclusion toggles tuned to keep responses small: only title, basic
// info, body, authors and the source title come back.
func (c *Client) buildPayload(spec QuerySpec) map[string]interface{} {
	payload := map[string]interface{}{
		"action":                     "getArticles",
		"keywordLoc":                 "body,title",
		"articlesSortBy":             "date",
		"articlesSortByAsc":          false,
		"articlesPage":               spec.Page,
		"articlesCount":              spec.PageSize,
		"dataType":                   spec.DataTypes,
		"lang":                       []string{"eng"},
		"resultType":                 "articles",
		"dateStart":                  spec.DateStart,
		"dateEnd":                    spec.DateEnd,
		"isDuplicateFilter":          "skipDuplicates",
		"startSourceRankPercentile":  0,
		"endSourceRankPercentile":    100,
		"apiKey":                     c.apiKey,
		"includeArticleTitle":        true,
		"includeArticleBasicInfo":    true,
		"includeArticleBody":         true,
		"includeArticleAuthors":      true,
		"includeSourceTitle":         true,
		"includeArticleEventUri":     false,
		"includeArticleSocialScore":  false,
		"includeArticleSentiment":    false,
		"includeArticleConcepts":     false,
		"includeArticleCategories":   false,
		"includeArticleLocation":     false,
		"includeArticleImage":        false,
		"includeArticleVideos":       false,
		"includeArticleLinks":        false,
		"includeArticleExtractedDates": false,
		"includeArticleDuplicateList":  false,
		"includeArticleOriginalArticle": false,
		"includeSourceDescription":      false,
		"includeSourceLocation":         false,
		"includeSourceRanking":          false,
	}

	if spec.Conjunctive && len(spec.Keywords) > 1 {
		payload["keyword"] = spec.Keywords
		payload["keywordOper"] = "and"
	} else if len(spec.Keywords) > 0 {
		payload["keyword"] = spec.Keywords[0]
	}

	return payload
}

type wireArticle struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	DateTimePub string `json:"dateTimePub"`
	Source      struct {
		Title string `json:"title"`
	} `json:"source"`
}

type searchEnvelope struct {
	Articles struct {
		Results      []wireArticle `json:"results"`
		TotalResults int           `json:"totalResults"`
	} `json:"articles"`
}

func parseResponse(body io.ReadCloser) (*SearchResponse, error) {
	defer body.Close()

	var envelope searchEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, &Error{Kind: KindTransport, cause: fmt.Errorf("decode response: %w", err)}
	}

	out := &SearchResponse{
		Results:      make([]news.Article, 0, len(envelope.Articles.Results)),
		TotalResults: envelope.Articles.TotalResults,
	}
	for _, w := range envelope.Articles.Results {
		a := news.Article{
			URL:        w.URL,
			Title:      w.Title,
			Body:       w.Body,
			SourceName: w.Source.Title,
		}
		if t, err := time.Parse(time.RFC3339, w.DateTimePub); err == nil {
			a.Published = t
		}
		out.Results = append(out.Results, a)
	}
	return out, nil
}

func readExcerpt(resp *http.Response) string {
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, bodyExcerptLimit))
	return strings.TrimSpace(string(data))
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
