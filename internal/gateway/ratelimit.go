package gateway

import (
	"log"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/robertranjan/gh-top-projects/internal/domain"
)

// RateLimitMonitor records the quota headers that accompany every API
// response. It is purely observational and never throttles or delays
// requests on behalf of its callers.
type RateLimitMonitor struct {
	logger *log.Logger
	last   domain.RateLimitStatus
	seen   bool
}

// NewRateLimitMonitor creates a monitor that reports observations to the
// given logger.
func NewRateLimitMonitor(logger *log.Logger) *RateLimitMonitor {
	return &RateLimitMonitor{logger: logger}
}

// Observe reads the parsed rate headers off one response. Nil responses
// (transport failures) and responses without rate headers are ignored.
func (m *RateLimitMonitor) Observe(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	m.last = domain.RateLimitStatus{
		Remaining: resp.Rate.Remaining,
		Limit:     resp.Rate.Limit,
		ResetAt:   resp.Rate.Reset.Time,
	}
	m.seen = true
	m.logger.Printf("Rate limit: %d/%d remaining, resets at %s", m.last.Remaining, m.last.Limit, m.last.ResetAt.Format(time.RFC3339))
}

// Last returns the most recent observation, and false if no response has
// carried rate headers yet.
func (m *RateLimitMonitor) Last() (domain.RateLimitStatus, bool) {
	return m.last, m.seen
}
