package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	result := c.Check(context.Background())

	assert.True(t, result.Reachable)
	assert.NoError(t, result.Err)
	assert.Greater(t, result.Latency, time.Duration(0))
}

func TestCheckHTTPErrorStillReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	result := c.Check(context.Background())

	// The endpoint answered; rate limiting is the worker's problem
	assert.True(t, result.Reachable)
}

func TestCheckUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, time.Second)
	result := c.Check(context.Background())

	assert.False(t, result.Reachable)
	require.Error(t, result.Err)
}

func TestCheckInvalidURL(t *testing.T) {
	c := New("://not-a-url", time.Second)
	result := c.Check(context.Background())

	assert.False(t, result.Reachable)
	assert.Error(t, result.Err)
}

func TestNewDefaultsTimeout(t *testing.T) {
	c := New("http://example.invalid", 0)
	assert.Equal(t, 5*time.Second, c.timeout)
}
