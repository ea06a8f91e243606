// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPolicy returns a policy with a tiny base delay so tests finish quickly.
func testPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 1 * time.Millisecond, ExponentialRateLimit: true}
}

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func decodeJSON(v any) func(io.Reader) error {
	return func(r io.Reader) error {
		return json.NewDecoder(r).Decode(v)
	}
}

func TestDo_ImmediateSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer ts.Close()

	var body struct {
		OK bool `json:"ok"`
	}
	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&body))
	require.NoError(t, err)

	assert.True(t, body.OK)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDo_RateLimitedThen200(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	var body map[string]any
	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&body))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_RateLimitExhaustsBudget(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_ServerErrorSurfacedOnFinalAttempt(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	// Non-final attempts retry, the final one surfaces the status.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_ServerErrorThen200(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_DecodeFailureConsumesBudget(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{not json`)
	}))
	defer ts.Close()

	err := testPolicy().Do(context.Background(), ts.Client(), newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_TimeoutRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	err := testPolicy().Do(context.Background(), client, newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	p := Policy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, ExponentialRateLimit: true}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, ts.Client(), newRequest(t, ts.URL), decodeJSON(&map[string]any{}))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestBackoffSchedules(t *testing.T) {
	exp := Policy{BaseDelay: 5 * time.Second, ExponentialRateLimit: true}
	fixed := Policy{BaseDelay: 2 * time.Second}

	// Rate-limit backoff: exponential doubles, fixed stays flat.
	assert.Equal(t, 5*time.Second, exp.rateLimit(0))
	assert.Equal(t, 10*time.Second, exp.rateLimit(1))
	assert.Equal(t, 20*time.Second, exp.rateLimit(2))
	assert.Equal(t, 2*time.Second, fixed.rateLimit(0))
	assert.Equal(t, 2*time.Second, fixed.rateLimit(2))

	// Timeout/transport backoff is linear in both policies.
	assert.Equal(t, 5*time.Second, exp.linear(0))
	assert.Equal(t, 10*time.Second, exp.linear(1))
	assert.Equal(t, 15*time.Second, exp.linear(2))
	assert.Equal(t, 4*time.Second, fixed.linear(1))
}
