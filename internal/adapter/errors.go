package adapter

import "errors"

// Sentinel errors describing why the AI upstream could not serve a chat
// request. Each maps to a distinct user-facing message at the HTTP layer;
// all of them translate to 503 Service Unavailable.
var (
	// ErrUpstreamAuth means the upstream rejected our credentials, or no
	// API key is configured at all.
	ErrUpstreamAuth = errors.New("upstream authentication failed")

	// ErrUpstreamRateLimited means the upstream refused the request due to
	// quota or rate limits.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamNetwork means the upstream could not be reached.
	ErrUpstreamNetwork = errors.New("upstream connection failed")

	// ErrUpstreamUnavailable covers every other upstream failure.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
