package models

import "time"

// FailoverEvent is one normalized failover alert pulled from NetCloud.
// OccurredAt is the true failover time extracted from the alert's
// friendly_info text, not the API's own created_at, which lags the
// actual failover.
type FailoverEvent struct {
	RouterID   string
	OccurredAt time.Time
	Info       string

	// Router is resolved separately after fetching; nil until then.
	Router *Router
}
