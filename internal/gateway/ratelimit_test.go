package gateway

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMonitor_Observe(t *testing.T) {
	reset := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	t.Run("records the latest headers", func(t *testing.T) {
		var buf bytes.Buffer
		monitor := NewRateLimitMonitor(log.New(&buf, "", 0))

		monitor.Observe(&github.Response{
			Response: &http.Response{},
			Rate:     github.Rate{Limit: 5000, Remaining: 4999, Reset: github.Timestamp{Time: reset}},
		})
		monitor.Observe(&github.Response{
			Response: &http.Response{},
			Rate:     github.Rate{Limit: 5000, Remaining: 4998, Reset: github.Timestamp{Time: reset}},
		})

		status, ok := monitor.Last()
		assert.True(t, ok)
		assert.Equal(t, 4998, status.Remaining)
		assert.Equal(t, 5000, status.Limit)
		assert.Equal(t, reset, status.ResetAt)
		assert.Contains(t, buf.String(), "4998/5000")
	})

	t.Run("ignores nil and headerless responses", func(t *testing.T) {
		monitor := NewRateLimitMonitor(log.New(io.Discard, "", 0))

		monitor.Observe(nil)
		monitor.Observe(&github.Response{Response: &http.Response{}})

		_, ok := monitor.Last()
		assert.False(t, ok)
	})
}
