package interfaces

import (
	"context"

	"myregistrar/domain"
)

// RegistryClient performs the raw HTTP operations against the discovery
// registry for one instance. Every call issues exactly one outbound request;
// retry, backoff and scheduling belong to the caller.
//
// Implementations classify the outcome into the service error taxonomy:
// nil on 2xx, lease_not_found for a 404 heartbeat, registry_rejected for
// other 4xx, transport_failure for 5xx and network errors. No method ever
// panics for a network or server failure.
//
// Implemented by adapters.EurekaHTTP. Called from service.LeaseClient.
//
//go:generate moq -stub -out mock/registry_client.go -pkg mock . RegistryClient
type RegistryClient interface {
	// Register sends POST /apps/{app} with the instance-info document built
	// from the descriptor. Success is 204 or 200.
	Register(ctx context.Context, d domain.InstanceDescriptor) error

	// Heartbeat sends PUT /apps/{app}/{id} to renew the lease. Success is
	// 200; a 404 means the lease no longer exists server-side and is
	// returned as a lease_not_found error.
	Heartbeat(ctx context.Context, appName, instanceID string) error

	// SetStatusOverride sends PUT /apps/{app}/{id}/status?value={status}.
	SetStatusOverride(ctx context.Context, appName, instanceID string, status domain.StatusType) error

	// RemoveStatusOverride sends DELETE /apps/{app}/{id}/status, returning
	// status control to the instance itself.
	RemoveStatusOverride(ctx context.Context, appName, instanceID string) error

	// UpdateMetadata sends PUT /apps/{app}/{id}/metadata?{key}={value} to
	// set a single metadata pair on the registered instance.
	UpdateMetadata(ctx context.Context, appName, instanceID, key, value string) error

	// Deregister sends DELETE /apps/{app}/{id}. Success is 200.
	Deregister(ctx context.Context, appName, instanceID string) error
}
