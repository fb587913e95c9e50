package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_ProviderCap(t *testing.T) {
	l := New(0)
	l.SetLimit("openai", 2)

	require.NoError(t, l.Use("openai"))
	require.NoError(t, l.Use("openai"))
	assert.Error(t, l.Use("openai"))
	assert.Equal(t, 2, l.Used("openai"))

	// Other providers are unaffected.
	assert.NoError(t, l.Use("gemini"))
}

func TestLimiter_TotalCap(t *testing.T) {
	l := New(2)

	require.NoError(t, l.Use("openai"))
	require.NoError(t, l.Use("gemini"))
	assert.Error(t, l.Use("openai"))
	assert.Equal(t, 2, l.Total())
}

func TestLimiter_ZeroMeansUnlimited(t *testing.T) {
	l := New(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Use("openai"))
	}
}
