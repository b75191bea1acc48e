package interfaces

import "time"

// TimeProvider supplies the current time for lease-expiry tracking.
// Injected so tests can use a fixed clock instead of time.Now().
//
// Used by service.LeaseClient to decide whether the elapsed time since the
// last successful renewal exceeds the lease duration (LeaseExpired).
// Constructed in cmd/myregistrar as service.NewTimeProvider(time.Now().UTC).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests — fixed or stepped
	// time for deterministic expiry checks).
	Now() time.Time
}
