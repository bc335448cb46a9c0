// Package netcheck performs a best-effort reachability probe against the
// endpoint the worker scrapes. The result is advisory: it tells the operator
// whether a stalled worker might be a network problem, and nothing more.
package netcheck

import (
	"context"
	"net/http"
	"time"
)

// Result describes one reachability probe.
type Result struct {
	URL       string
	Reachable bool
	Latency   time.Duration

	// Err holds the failure for display; a set Err never fails a cycle.
	Err error
}

// Checker probes a fixed endpoint with a short timeout.
type Checker struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// New creates a checker for the given URL.
func New(url string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Check issues a HEAD request and reports whether the endpoint answered.
// Any HTTP status counts as reachable; only transport failures do not.
func (c *Checker) Check(ctx context.Context) Result {
	result := Result{URL: c.url}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		result.Err = err
		return result
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		result.Err = err
		return result
	}
	resp.Body.Close()

	result.Reachable = true
	result.Latency = time.Since(start)
	return result
}
