package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmon/internal/keywords"
	"newsmon/internal/news"
)

func TestMatch_SubstringAlwaysWins(t *testing.T) {
	// Literal presence must match even at a threshold the ratios cannot reach.
	assert.True(t, Match("Kasigau forest", "Kasigau", 90))
	assert.True(t, Match("news about KASIGAU corridor", "kasigau", 100))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	assert.True(t, Match("WILDLIFE WORKS announces expansion", "Wildlife Works", 60))
}

func TestMatch_UnrelatedTextFails(t *testing.T) {
	assert.False(t, Match("quarterly earnings for a shipping company", "Kasigau", 90))
}

func TestFilter_ConjunctiveItemRequiresBoth(t *testing.T) {
	articles := []news.Article{
		{URL: "a", Title: "Kasigau reforestation project news", Body: "The corridor grows."},
	}

	// Developer absent from the text: the conjunctive item must not match.
	got := Filter(articles, []keywords.Item{{Keyword: "Kasigau", Developer: "Wildlife Works"}}, 60)
	assert.Empty(t, got)

	// The same text matches the bare-keyword item.
	got = Filter(articles, []keywords.Item{{Keyword: "Kasigau"}}, 60)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].URL)
}

func TestFilter_ConjunctiveItemMatchesWhenBothPresent(t *testing.T) {
	articles := []news.Article{
		{URL: "a", Title: "Kasigau expansion", Body: "Wildlife Works announced new funding for the corridor."},
	}

	got := Filter(articles, []keywords.Item{{Keyword: "Kasigau", Developer: "Wildlife Works"}}, 60)
	require.Len(t, got, 1)
}

func TestFilter_AnyItemSuffices(t *testing.T) {
	articles := []news.Article{
		{URL: "a", Title: "Rimba Raya update", Body: "Peatland conservation continues."},
		{URL: "b", Title: "Unrelated markets piece", Body: "Stocks were mixed on Tuesday."},
	}
	items := []keywords.Item{
		{Keyword: "Kasigau", Developer: "Wildlife Works"},
		{Keyword: "Rimba Raya"},
	}

	got := Filter(articles, items, 60)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].URL)
}

func TestFilter_EmptyInputs(t *testing.T) {
	assert.Empty(t, Filter(nil, []keywords.Item{{Keyword: "Kasigau"}}, 60))
	assert.Empty(t, Filter([]news.Article{{Title: "x"}}, nil, 60))
}
