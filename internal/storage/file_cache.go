// Package storage keeps a small JSON file of already-reported article URLs so
// repeated runs do not re-report the same stories. It is a TTL cache at the
// process edge, not a data store.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"newsmon/internal/news"
)

// ReportedItem records one article that already appeared in a digest.
type ReportedItem struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	ReportedAt time.Time `json:"reported_at"`
}

// ReportedCache manages reported items in a JSON file.
type ReportedCache struct {
	path  string
	ttl   time.Duration
	items map[string]ReportedItem
	mu    sync.RWMutex
}

func NewReportedCache(path string, ttl time.Duration) *ReportedCache {
	return &ReportedCache{
		path:  path,
		ttl:   ttl,
		items: make(map[string]ReportedItem),
	}
}

// Load reads the cache file, dropping expired entries. A missing file is not
// an error; the cache starts empty.
func (c *ReportedCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []ReportedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("unmarshal cache: %w", err)
	}

	cutoff := time.Now().Add(-c.ttl)
	for _, item := range items {
		if item.ReportedAt.After(cutoff) && item.URL != "" {
			c.items[item.URL] = item
		}
	}
	return nil
}

// Save writes the current cache to disk.
func (c *ReportedCache) Save() error {
	c.mu.RLock()
	items := make([]ReportedItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	c.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Filter drops articles already reported. URL-less articles always pass.
func (c *ReportedCache) Filter(articles []news.Article) []news.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if a.URL != "" {
			if _, seen := c.items[a.URL]; seen {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// Mark records articles as reported under the given category.
func (c *ReportedCache) Mark(articles []news.Article, category string) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		c.items[a.URL] = ReportedItem{
			URL:        a.URL,
			Title:      a.Title,
			Category:   category,
			ReportedAt: now,
		}
	}
}

// Size returns the number of cached items.
func (c *ReportedCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
