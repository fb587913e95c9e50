package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmon/internal/cache"
	"newsmon/internal/news"
	"newsmon/internal/ratelimit"
)

// fakeCompleter answers every prompt with a scripted response or error.
type fakeCompleter struct {
	name    string
	calls   int
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeCompleter) Name() string { return f.name }

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.respond(prompt)
}

// wellFormed answers with exactly one SUMMARY line per article in the prompt.
func wellFormed() *fakeCompleter {
	return &fakeCompleter{
		name: "fake",
		respond: func(prompt string) (string, error) {
			n := strings.Count(prompt, "Article ")
			var b strings.Builder
			for i := 1; i <= n; i++ {
				fmt.Fprintf(&b, "SUMMARY %d: summary number %d.\n", i, i)
			}
			return b.String(), nil
		},
	}
}

func makeArticles(n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			URL:   fmt.Sprintf("https://news.example/%d", i),
			Title: fmt.Sprintf("Article %d title", i),
			Body:  strings.Repeat("body text ", 20),
		}
	}
	return out
}

func TestSummarize_LengthPreserving(t *testing.T) {
	for _, n := range []int{0, 1, 5, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := New([]Completer{wellFormed()})
			got := s.Summarize(context.Background(), makeArticles(n), 2)
			assert.Len(t, got, n)
		})
	}
}

func TestSummarize_BatchesOfFive(t *testing.T) {
	f := wellFormed()
	s := New([]Completer{f})

	got := s.Summarize(context.Background(), makeArticles(7), 2)

	require.Len(t, got, 7)
	assert.Equal(t, 2, f.calls)
	// First batch carries five articles, second the remaining two.
	assert.Equal(t, 5, strings.Count(f.prompts[0], "SUMMARY"))
	assert.Equal(t, 2, strings.Count(f.prompts[1], "SUMMARY"))
	assert.Equal(t, "summary number 1.", got[0])
	assert.Equal(t, "summary number 2.", got[6])
}

func TestSummarize_PromptTruncatesBodies(t *testing.T) {
	f := wellFormed()
	s := New([]Completer{f})
	long := makeArticles(1)
	long[0].Body = strings.Repeat("x", 5000)

	s.Summarize(context.Background(), long, 2)

	require.Len(t, f.prompts, 1)
	assert.LessOrEqual(t, strings.Count(f.prompts[0], "x"), bodyCharLimit)
	assert.Contains(t, f.prompts[0], "exactly 2 sentences")
}

func TestSummarize_PadsShortParse(t *testing.T) {
	f := &fakeCompleter{
		name: "fake",
		respond: func(string) (string, error) {
			return "SUMMARY 1: only one came back.", nil
		},
	}
	s := New([]Completer{f})

	got := s.Summarize(context.Background(), makeArticles(3), 2)

	require.Len(t, got, 3)
	assert.Equal(t, "only one came back.", got[0])
	assert.Equal(t, placeholder, got[1])
	assert.Equal(t, placeholder, got[2])
}

func TestSummarize_TruncatesExtraSummaries(t *testing.T) {
	f := &fakeCompleter{
		name: "fake",
		respond: func(string) (string, error) {
			return "SUMMARY 1: one.\nSUMMARY 2: two.\nSUMMARY 3: three.", nil
		},
	}
	s := New([]Completer{f})

	got := s.Summarize(context.Background(), makeArticles(2), 2)

	assert.Equal(t, []string{"one.", "two."}, got)
}

func TestSummarize_FailedBatchGetsPlaceholders(t *testing.T) {
	boom := &fakeCompleter{
		name: "fake",
		respond: func(string) (string, error) {
			return "", errors.New("model exploded in a very long and detailed way that should be cut")
		},
	}
	s := New([]Completer{boom})

	got := s.Summarize(context.Background(), makeArticles(6), 2)

	require.Len(t, got, 6)
	for _, summary := range got {
		assert.True(t, strings.HasPrefix(summary, "Summary unavailable: "), summary)
		assert.LessOrEqual(t, len(summary), len("Summary unavailable: ")+50)
	}
}

func TestSummarize_FallsBackToSecondProvider(t *testing.T) {
	failing := &fakeCompleter{
		name:    "openai",
		respond: func(string) (string, error) { return "", errors.New("quota") },
	}
	backup := wellFormed()
	backup.name = "gemini"
	s := New([]Completer{failing, backup})

	got := s.Summarize(context.Background(), makeArticles(2), 2)

	assert.Equal(t, []string{"summary number 1.", "summary number 2."}, got)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, backup.calls)
}

func TestSummarize_LimiterExhaustionDegrades(t *testing.T) {
	f := wellFormed()
	limiter := ratelimit.New(1)
	s := New([]Completer{f}, WithLimiter(limiter))

	got := s.Summarize(context.Background(), makeArticles(7), 2)

	require.Len(t, got, 7)
	assert.Equal(t, 1, f.calls)
	// Second batch ran out of budget.
	assert.True(t, strings.HasPrefix(got[5], "Summary unavailable: "), got[5])
}

func TestSummarize_CacheHitSkipsProvider(t *testing.T) {
	f := wellFormed()
	s := New([]Completer{f}, WithCache(cache.New(), time.Hour))
	articles := makeArticles(2)

	first := s.Summarize(context.Background(), articles, 2)
	second := s.Summarize(context.Background(), articles, 2)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.calls)
}

func TestParseBatchResponse_MultilineSummaries(t *testing.T) {
	text := strings.Join([]string{
		"SUMMARY 1: first sentence.",
		"It continues on the next line.",
		"summary 2: lowercase marker works too.",
		"",
		"SUMMARY 3: third.",
	}, "\n")

	got := parseBatchResponse(text)

	require.Len(t, got, 3)
	assert.Equal(t, "first sentence. It continues on the next line.", got[0])
	assert.Equal(t, "lowercase marker works too.", got[1])
	assert.Equal(t, "third.", got[2])
}

func TestParseBatchResponse_BlankLineFallback(t *testing.T) {
	text := "The model ignored the format.\n\nBut wrote two blocks anyway."

	got := parseBatchResponse(text)

	assert.Equal(t, []string{"The model ignored the format.", "But wrote two blocks anyway."}, got)
}

func TestParseBatchResponse_LeadingChatterIgnored(t *testing.T) {
	text := "Sure, here are the summaries:\nSUMMARY 1: the actual one."

	got := parseBatchResponse(text)

	assert.Equal(t, []string{"the actual one."}, got)
}
