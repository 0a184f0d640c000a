package api

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Default outbound budget; keeps a hammered "next page" key from flooding
// the backend.
const (
	defaultLimit = rate.Limit(10)
	defaultBurst = 20
)

// RateLimitTransport waits for a token before every request. The wait
// honours the request context.
type RateLimitTransport struct {
	Limiter *rate.Limiter
	Next    http.RoundTripper
}

func (t RateLimitTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(r.Context()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(r)
}
