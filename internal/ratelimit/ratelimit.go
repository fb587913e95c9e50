// Package ratelimit caps AI requests for a single run, per provider and in
// total, so an unexpectedly large article set cannot burn through the model
// quota.
package ratelimit

import (
	"fmt"
	"sync"
)

// Limiter counts requests per provider. A limit of 0 means unlimited.
type Limiter struct {
	mu     sync.Mutex
	used   map[string]int
	limits map[string]int

	total    int
	maxTotal int
}

func New(maxTotal int) *Limiter {
	return &Limiter{
		used:     make(map[string]int),
		limits:   make(map[string]int),
		maxTotal: maxTotal,
	}
}

// SetLimit caps a single provider's requests for the run.
func (l *Limiter) SetLimit(provider string, max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits[provider] = max
}

// Use consumes one request for the provider, or reports why it cannot.
func (l *Limiter) Use(provider string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if max := l.limits[provider]; max > 0 && l.used[provider] >= max {
		return fmt.Errorf("%s request limit reached (%d/%d)", provider, l.used[provider], max)
	}
	if l.maxTotal > 0 && l.total >= l.maxTotal {
		return fmt.Errorf("total AI request limit reached (%d/%d)", l.total, l.maxTotal)
	}

	l.used[provider]++
	l.total++
	return nil
}

// Used returns how many requests the provider has consumed.
func (l *Limiter) Used(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used[provider]
}

// Total returns how many requests the run has consumed across providers.
func (l *Limiter) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}
