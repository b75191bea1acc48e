package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultWarnThreshold is the number of consecutive renewal failures after
// which Renew starts logging at warning level. With the default intervals a
// renewal fires three times per expiry window, so three misses in a row means
// the server is about to evict the lease. The counter is diagnostic only;
// LeaseExpired (elapsed time since the last success) is the authoritative
// expiry signal.
const DefaultWarnThreshold = 3

// LeaseClient owns the lease lifecycle for one service instance: register,
// renew, deregister and status changes against the registry, with outcome
// classification into the RegError taxonomy. It is a pure protocol adapter:
// every operation issues exactly one outbound request and returns; it holds
// no timers or goroutines of its own — the host schedules Renew.
//
// All operations serialize on an internal mutex, so at most one request is in
// flight per client; a Renew racing a Deregister simply waits. Distinct
// LeaseClients are fully independent. No operation returns a non-nil error
// for reasons that should stop a heartbeat loop: network and server failures
// come back as classified errors plus a state transition, and the caller is
// free to ignore the error and inspect State instead.
type LeaseClient struct {
	registry      interfaces.RegistryClient
	clock         interfaces.TimeProvider
	logger        log.Logger
	warnThreshold int

	mu          sync.Mutex
	descriptor  domain.InstanceDescriptor
	state       domain.LeaseState
	failures    int       // consecutive renewal failures, reset on any success
	lastSuccess time.Time // last accepted register or renew; zero before first success
}

// NewLeaseClient creates a lease client for the given descriptor. Panics on
// nil registry, clock or logger (programmer wiring errors); returns an
// invalid_descriptor error when the descriptor violates its invariants, so a
// bad descriptor is rejected before any I/O. The lease starts UNREGISTERED.
//
// Parameters: registry — transport adapter (e.g. adapters.NewEurekaHTTP);
// d — descriptor built via NewInstanceDescriptor; clock — time source for
// expiry tracking; logger — renewal failures are logged here.
//
// Called from cmd/myregistrar after config loading.
func NewLeaseClient(
	registry interfaces.RegistryClient,
	d domain.InstanceDescriptor,
	clock interfaces.TimeProvider,
	logger log.Logger,
) (*LeaseClient, error) {
	c := &LeaseClient{
		registry:      helpers.NilPanic(registry, "service.lease_client.go: registry is required"),
		clock:         helpers.NilPanic(clock, "service.lease_client.go: clock is required"),
		logger:        log.With(helpers.NilPanic(logger, "service.lease_client.go: logger is required"), "component", "lease_client"),
		warnThreshold: DefaultWarnThreshold,
		descriptor:    d,
		state:         domain.LeaseUnregistered,
	}
	if d.AppName == "" || d.InstanceID == "" {
		return nil, NewInvalidDescriptorError("descriptor is missing app name or instance id", nil)
	}
	if d.LeaseRenewalInterval <= 0 || d.LeaseRenewalInterval >= d.LeaseDuration {
		return nil, NewInvalidDescriptorError(
			fmt.Sprintf("lease renewal interval %s must be positive and shorter than lease duration %s",
				d.LeaseRenewalInterval, d.LeaseDuration), nil)
	}
	return c, nil
}

// Register registers the instance: UNREGISTERED → REGISTERING → ACTIVE on
// 2xx; back to UNREGISTERED on any failure so the caller may simply retry.
// Calling Register in any other state is a caller error reported without I/O.
func (c *LeaseClient) Register(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.LeaseUnregistered {
		return NewRegistryRejectedError(
			fmt.Sprintf("register called in state %s", c.state), nil)
	}
	c.state = domain.LeaseRegistering

	if err := c.registry.Register(ctx, c.descriptor); err != nil {
		c.state = domain.LeaseUnregistered
		level.Warn(c.logger).Log(
			"msg", "registration failed",
			"app", c.descriptor.AppName,
			"instance_id", c.descriptor.InstanceID,
			"err", err,
		)
		return err
	}

	c.state = domain.LeaseActive
	c.failures = 0
	c.lastSuccess = c.clock.Now()
	level.Info(c.logger).Log(
		"msg", "instance registered",
		"app", c.descriptor.AppName,
		"instance_id", c.descriptor.InstanceID,
	)
	return nil
}

// Renew sends one heartbeat. On 2xx the lease stays (or returns to) ACTIVE
// and the failure counter resets. A 404 is the registry's authoritative
// signal that the lease is gone server-side: the state drops to UNREGISTERED
// and the caller must Register again before renewing. Any other failure moves
// to RENEW_FAILED and increments the counter — a single missed heartbeat is
// expected under normal network jitter, so nothing is escalated until the
// counter passes the warn threshold. Calling Renew while neither ACTIVE nor
// RENEW_FAILED is a caller error reported without I/O; the state is unchanged.
func (c *LeaseClient) Renew(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.LeaseActive && c.state != domain.LeaseRenewFailed {
		return NewRegistryRejectedError(
			fmt.Sprintf("renew called in state %s", c.state), nil)
	}

	err := c.registry.Heartbeat(ctx, c.descriptor.AppName, c.descriptor.InstanceID)
	if err == nil {
		c.state = domain.LeaseActive
		c.failures = 0
		c.lastSuccess = c.clock.Now()
		return nil
	}

	if IsLeaseNotFoundError(err) {
		c.state = domain.LeaseUnregistered
		level.Warn(c.logger).Log(
			"msg", "lease not found on renew, re-registration required",
			"app", c.descriptor.AppName,
			"instance_id", c.descriptor.InstanceID,
			"err", err,
		)
		return err
	}

	c.state = domain.LeaseRenewFailed
	c.failures++
	logFn := level.Info(c.logger)
	if c.failures > c.warnThreshold {
		logFn = level.Warn(c.logger)
	}
	logFn.Log(
		"msg", "lease renewal failed",
		"app", c.descriptor.AppName,
		"instance_id", c.descriptor.InstanceID,
		"consecutive_failures", c.failures,
		"lease_expired", c.leaseExpiredLocked(),
		"err", err,
	)
	return err
}

// Deregister removes the instance from the registry, best-effort: the state
// ends DEREGISTERED regardless of the outcome, because a client must not
// refuse to shut down just because the registry is unreachable. Returns nil
// iff the DELETE was accepted. Calling Deregister again is a no-op.
func (c *LeaseClient) Deregister(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.LeaseDeregistered {
		return nil
	}
	c.state = domain.LeaseDeregistering

	err := c.registry.Deregister(ctx, c.descriptor.AppName, c.descriptor.InstanceID)
	c.state = domain.LeaseDeregistered
	if err != nil {
		level.Warn(c.logger).Log(
			"msg", "deregistration failed, shutting down anyway",
			"app", c.descriptor.AppName,
			"instance_id", c.descriptor.InstanceID,
			"err", err,
		)
		return err
	}
	level.Info(c.logger).Log(
		"msg", "instance deregistered",
		"app", c.descriptor.AppName,
		"instance_id", c.descriptor.InstanceID,
	)
	return nil
}

// StatusUpdate sets a status override on the registry, best-effort and
// idempotent: repeating the same status issues an identical PUT each time.
// The local descriptor status is updated only when the registry accepted the
// change. The lease state is untouched. Requires a live lease (ACTIVE or
// RENEW_FAILED).
func (c *LeaseClient) StatusUpdate(ctx context.Context, status domain.StatusType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.LeaseActive && c.state != domain.LeaseRenewFailed {
		return NewRegistryRejectedError(
			fmt.Sprintf("status update called in state %s", c.state), nil)
	}

	if err := c.registry.SetStatusOverride(ctx, c.descriptor.AppName, c.descriptor.InstanceID, status); err != nil {
		return err
	}
	c.descriptor = c.descriptor.WithStatus(status)
	return nil
}

// RemoveStatusOverride deletes the status override, returning status control
// to the instance itself. Best-effort like StatusUpdate; the local descriptor
// keeps its last accepted status.
func (c *LeaseClient) RemoveStatusOverride(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.LeaseActive && c.state != domain.LeaseRenewFailed {
		return NewRegistryRejectedError(
			fmt.Sprintf("remove status override called in state %s", c.state), nil)
	}
	return c.registry.RemoveStatusOverride(ctx, c.descriptor.AppName, c.descriptor.InstanceID)
}

// UpdateMetadata sets one metadata pair on the registered instance. The local
// metadata copy is updated only when the registry accepted the change; the
// descriptor's map is replaced, not mutated, so copies handed out earlier
// stay valid.
func (c *LeaseClient) UpdateMetadata(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.LeaseActive && c.state != domain.LeaseRenewFailed {
		return NewRegistryRejectedError(
			fmt.Sprintf("metadata update called in state %s", c.state), nil)
	}

	if err := c.registry.UpdateMetadata(ctx, c.descriptor.AppName, c.descriptor.InstanceID, key, value); err != nil {
		return err
	}
	meta := make(map[string]string, len(c.descriptor.Metadata)+1)
	for k, v := range c.descriptor.Metadata {
		meta[k] = v
	}
	meta[key] = value
	c.descriptor.Metadata = meta
	return nil
}

// State returns the current lease state.
func (c *LeaseClient) State() domain.LeaseState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConsecutiveFailures returns the renewal failure counter. Diagnostic only;
// use LeaseExpired to decide whether the lease is gone.
func (c *LeaseClient) ConsecutiveFailures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// Descriptor returns a copy of the current descriptor, including any status
// and metadata changes accepted by the registry since registration.
func (c *LeaseClient) Descriptor() domain.InstanceDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.descriptor
}

// LeaseExpired reports whether the time elapsed since the last accepted
// register or renew exceeds the lease duration, meaning the server has
// presumably evicted the lease even though no 404 has been observed yet.
// Always false before the first successful registration.
func (c *LeaseClient) LeaseExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaseExpiredLocked()
}

func (c *LeaseClient) leaseExpiredLocked() bool {
	if c.lastSuccess.IsZero() {
		return false
	}
	return c.clock.Now().Sub(c.lastSuccess) > c.descriptor.LeaseDuration
}
