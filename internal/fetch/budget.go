package fetch

import (
	"fmt"
	"time"
)

// Budget caps API consumption for a single run.
type Budget struct {
	MaxArticlesPerCall int
	MaxPagesPerItem    int
	MaxKeywordsPerRun  int
	RequestDelay       time.Duration
}

func (b Budget) Validate() error {
	if b.MaxArticlesPerCall <= 0 {
		return fmt.Errorf("budget: MaxArticlesPerCall must be positive, got %d", b.MaxArticlesPerCall)
	}
	if b.MaxPagesPerItem <= 0 {
		return fmt.Errorf("budget: MaxPagesPerItem must be positive, got %d", b.MaxPagesPerItem)
	}
	if b.MaxKeywordsPerRun <= 0 {
		return fmt.Errorf("budget: MaxKeywordsPerRun must be positive, got %d", b.MaxKeywordsPerRun)
	}
	if b.RequestDelay < 0 {
		return fmt.Errorf("budget: RequestDelay must not be negative, got %s", b.RequestDelay)
	}
	return nil
}

// EstimateCalls projects how many search calls a run over totalItems may
// spend. Informational only; FetchAll enforces the caps itself.
func (b Budget) EstimateCalls(totalItems int) int {
	items := totalItems
	if items > b.MaxKeywordsPerRun {
		items = b.MaxKeywordsPerRun
	}
	return items * b.MaxPagesPerItem
}
