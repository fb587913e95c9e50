package summarize

import "context"

// Completer produces one free-text model response for one prompt. Providers
// are tried in order; the first non-empty response wins.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
