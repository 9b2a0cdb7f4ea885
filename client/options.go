package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to
// discover all available knobs at a glance.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the session-token transport wrapper is
// installed, so transport-related options (like debug logging) will be
// placed underneath the token wrapper.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is logged when enabled is true. Not for production use.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithTokenStore replaces the default file-backed token storage. Useful
// for tests and for hosts that keep credentials elsewhere.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("token store must not be nil")
		}
		c.session.tokens = store
		return nil
	}
}

// WithRegisterDelay overrides the registration flow's minimum visible
// duration. Zero disables the floor entirely; the default reproduces the
// product's 3000ms behavior.
func WithRegisterDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("register delay must be >= 0")
		}
		c.session.registerDelay = d
		return nil
	}
}

// WithRetry bounds the read-path retry loop. maxAttempts includes the
// first try; 1 disables retries.
func WithRetry(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		c.retry.maxAttempts = maxAttempts
		return nil
	}
}

// withSleep replaces the registration delay's sleep hook. Test-only.
func withSleep(fn func(time.Duration)) Option {
	return func(c *Client) error {
		c.session.sleep = fn
		return nil
	}
}
