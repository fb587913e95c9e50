package eventregistry

import "fmt"

// ErrorKind classifies a failed search call. The orchestrator branches on the
// kind instead of inspecting status codes itself.
type ErrorKind int

const (
	// KindTransport covers timeouts, DNS and connection failures.
	KindTransport ErrorKind = iota
	// KindRateLimited means 429/503 persisted through all retries.
	KindRateLimited
	// KindQuotaExceeded means the API key's quota is spent (HTTP 403).
	KindQuotaExceeded
	// KindHTTP covers any other non-2xx response.
	KindHTTP
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Error is the outcome of a failed search call.
type Error struct {
	Kind   ErrorKind
	Status int    // HTTP status, if one was received
	Body   string // response body excerpt for KindHTTP
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("event registry: request failed: %v", e.cause)
	case KindRateLimited:
		return fmt.Sprintf("event registry: rate limited (HTTP %d) after retries", e.Status)
	case KindQuotaExceeded:
		return "event registry: API quota exceeded"
	default:
		return fmt.Sprintf("event registry: HTTP %d: %s", e.Status, e.Body)
	}
}

func (e *Error) Unwrap() error { return e.cause }
