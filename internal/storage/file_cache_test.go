package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmon/internal/news"
)

func TestReportedCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reported.json")

	c := NewReportedCache(path, 48*time.Hour)
	require.NoError(t, c.Load())

	articles := []news.Article{
		{URL: "https://news.example/1", Title: "one"},
		{URL: "https://news.example/2", Title: "two"},
		{Title: "no url"},
	}
	c.Mark(articles, "Earthly Project")
	require.NoError(t, c.Save())

	reloaded := NewReportedCache(path, 48*time.Hour)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Size())

	got := reloaded.Filter([]news.Article{
		{URL: "https://news.example/1"},
		{URL: "https://news.example/3"},
		{Title: "still no url"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "https://news.example/3", got[0].URL)
	assert.Equal(t, "still no url", got[1].Title)
}

func TestReportedCache_ExpiredEntriesDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reported.json")

	stale := []ReportedItem{
		{URL: "https://news.example/old", ReportedAt: time.Now().Add(-72 * time.Hour)},
		{URL: "https://news.example/fresh", ReportedAt: time.Now().Add(-time.Hour)},
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c := NewReportedCache(path, 48*time.Hour)
	require.NoError(t, c.Load())

	assert.Equal(t, 1, c.Size())
	got := c.Filter([]news.Article{{URL: "https://news.example/old"}})
	assert.Len(t, got, 1)
}

func TestReportedCache_MissingFileIsEmpty(t *testing.T) {
	c := NewReportedCache(filepath.Join(t.TempDir(), "absent.json"), time.Hour)
	require.NoError(t, c.Load())
	assert.Equal(t, 0, c.Size())
}
