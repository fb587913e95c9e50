package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	in := []Article{
		{URL: "https://a.example/1", Title: "first"},
		{URL: "https://a.example/2", Title: "second"},
		{URL: "https://a.example/1", Title: "dup of first"},
		{URL: "https://a.example/3", Title: "third"},
		{URL: "https://a.example/2", Title: "dup of second"},
	}

	out := Dedupe(in)

	assert.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
	assert.Equal(t, "third", out[2].Title)
}

func TestDedupe_EmptyURLsAlwaysPass(t *testing.T) {
	in := []Article{
		{URL: "", Title: "no url one"},
		{URL: "https://a.example/1", Title: "with url"},
		{URL: "", Title: "no url two"},
		{URL: "https://a.example/1", Title: "dup"},
	}

	out := Dedupe(in)

	assert.Len(t, out, 3)
	assert.Equal(t, "no url one", out[0].Title)
	assert.Equal(t, "with url", out[1].Title)
	assert.Equal(t, "no url two", out[2].Title)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestSortByRecency(t *testing.T) {
	base := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	articles := []Article{
		{Title: "old", Published: base},
		{Title: "new", Published: base.Add(48 * time.Hour)},
		{Title: "mid", Published: base.Add(24 * time.Hour)},
	}

	SortByRecency(articles)

	assert.Equal(t, "new", articles[0].Title)
	assert.Equal(t, "mid", articles[1].Title)
	assert.Equal(t, "old", articles[2].Title)
}
