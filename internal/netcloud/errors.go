package netcloud

import "errors"

var (
	// ErrUpstreamAuth marks NetCloud rejecting our credentials; the
	// run aborts, nothing is emitted.
	ErrUpstreamAuth = errors.New("netcloud authentication failed")

	// ErrUpstreamUnavailable covers transport failures, timeouts and
	// unexpected status codes from NetCloud.
	ErrUpstreamUnavailable = errors.New("netcloud unavailable")
)
