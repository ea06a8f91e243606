// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across modes.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const defaultMaxAttempts = 3

// Policy controls the retry behavior for a single idempotent API call.
// The collect and pdf modes use the same executor with different policies:
// collect retries rate limits with exponential backoff from a 5 s base,
// pdf waits a fixed 2 s.
type Policy struct {
	// MaxAttempts is the total attempt budget (default 3).
	MaxAttempts int

	// BaseDelay scales every backoff wait.
	BaseDelay time.Duration

	// ExponentialRateLimit doubles the rate-limit wait on each attempt
	// (BaseDelay, 2*BaseDelay, 4*BaseDelay, ...). When false the wait is a
	// fixed BaseDelay.
	ExponentialRateLimit bool

	// Progress receives per-attempt backoff notices. Nil discards them.
	Progress io.Writer
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// Do executes req up to MaxAttempts times and decodes a 2xx body with decode.
//
// Per attempt: an HTTP 429 waits the rate-limit backoff and retries; a
// transport timeout waits BaseDelay*(attempt+1) and retries; any other
// transport error or non-2xx status waits the same linear backoff and
// retries, except on the final attempt where it is returned to the caller.
// A decode failure after a 2xx response consumes an attempt like a
// transport error. If the context is cancelled during a wait, Do returns
// ctx.Err().
func (p Policy) Do(ctx context.Context, client *http.Client, req *http.Request, decode func(io.Reader) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	progress := p.Progress
	if progress == nil {
		progress = io.Discard
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if !isTimeout(err) && attempt == attempts-1 {
				return err
			}
			fmt.Fprintf(progress, "request failed, retrying in %v (attempt %d/%d): %v\n",
				p.linear(attempt), attempt+1, attempts, err)
			if werr := p.wait(ctx, p.linear(attempt)); werr != nil {
				return werr
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drain(resp)
			lastErr = &StatusError{Code: resp.StatusCode}
			fmt.Fprintf(progress, "rate limited, retrying in %v (attempt %d/%d)\n",
				p.rateLimit(attempt), attempt+1, attempts)
			if werr := p.wait(ctx, p.rateLimit(attempt)); werr != nil {
				return werr
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			drain(resp)
			lastErr = &StatusError{Code: resp.StatusCode}
			if attempt == attempts-1 {
				return lastErr
			}
			fmt.Fprintf(progress, "request failed, retrying in %v (attempt %d/%d): %v\n",
				p.linear(attempt), attempt+1, attempts, lastErr)
			if werr := p.wait(ctx, p.linear(attempt)); werr != nil {
				return werr
			}
			continue
		}

		err = decode(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("decoding response: %w", err)
			if attempt == attempts-1 {
				return lastErr
			}
			if werr := p.wait(ctx, p.linear(attempt)); werr != nil {
				return werr
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("retries exhausted: %w", lastErr)
}

// linear returns the timeout/transport-error backoff: BaseDelay*(attempt+1).
func (p Policy) linear(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(attempt+1)
}

// rateLimit returns the 429 backoff for the given attempt.
func (p Policy) rateLimit(attempt int) time.Duration {
	if p.ExponentialRateLimit {
		return p.BaseDelay << uint(attempt)
	}
	return p.BaseDelay
}

// wait sleeps for d or until the context is cancelled.
func (p Policy) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// isTimeout reports whether err is a transport timeout.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
