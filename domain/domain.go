package domain

import "time"

// StatusType is an instance status as understood by the registry.
// UNKNOWN is what the server reports for instances it cannot classify;
// clients normally register with STARTING or UP.
type StatusType string

const (
	StatusUp           StatusType = "UP"
	StatusDown         StatusType = "DOWN"
	StatusStarting     StatusType = "STARTING"
	StatusOutOfService StatusType = "OUT_OF_SERVICE"
	StatusUnknown      StatusType = "UNKNOWN"
)

// LeaseState is the client-side view of the lease lifecycle. A fresh process
// always starts at LeaseUnregistered; there is no persistence across restarts.
type LeaseState string

const (
	LeaseUnregistered  LeaseState = "UNREGISTERED"
	LeaseRegistering   LeaseState = "REGISTERING"
	LeaseActive        LeaseState = "ACTIVE"
	LeaseRenewFailed   LeaseState = "RENEW_FAILED"
	LeaseDeregistering LeaseState = "DEREGISTERING"
	LeaseDeregistered  LeaseState = "DEREGISTERED"
)

// InstanceDescriptor describes one running service instance as it should be
// registered with the registry. Fields match the instance-info document:
// app, instanceId, ipAddr/hostName, port, securePort, status, leaseInfo,
// metadata plus the optional page URLs.
//
// The struct is plain data; construction with validation and defaulting lives
// in service.NewInstanceDescriptor. Status is the only field a running
// instance legitimately changes after registration (via WithStatus).
type InstanceDescriptor struct {
	AppName    string // unique key the registry groups instances under
	InstanceID string // unique per instance, default ip:app:port
	HostIP     string
	Hostname   string // defaults to HostIP
	Port       int
	SecurePort int // 0 means no TLS port is exposed
	Status     StatusType

	LeaseRenewalInterval time.Duration // expected time between renewals
	LeaseDuration        time.Duration // server-side expiry window

	Metadata map[string]string

	HealthCheckURL string
	StatusPageURL  string
	HomePageURL    string
	VIPAddress     string // defaults to AppName
}

// WithStatus returns a copy of the descriptor with Status replaced. The
// metadata map is shared between the copies; callers treat it as read-only
// after construction.
func (d InstanceDescriptor) WithStatus(s StatusType) InstanceDescriptor {
	d.Status = s
	return d
}
