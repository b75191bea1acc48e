package service

import (
	"fmt"
	"net"
	"regexp"
	"time"

	"myregistrar/domain"
)

// Defaults per the standard Eureka lease settings: a renewal every 30s
// against a 90s expiry window gives the client two spare ticks before the
// server evicts the lease.
const (
	DefaultLeaseRenewalInterval = 30 * time.Second
	DefaultLeaseDuration        = 90 * time.Second
)

// appNameRe matches URL-safe app names; spaces and underscores are rejected
// because they end up in request paths on every lease operation.
var appNameRe = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)

// DescriptorConfig enumerates everything needed to describe one instance.
// Only AppName, HostIP and Port are required; the rest defaults.
type DescriptorConfig struct {
	AppName    string
	InstanceID string // default: ip:app:port
	HostIP     string
	Hostname   string // default: HostIP
	Port       int
	SecurePort int // 0: no TLS port
	Status     domain.StatusType // default: STARTING

	LeaseRenewalInterval time.Duration // default: 30s
	LeaseDuration        time.Duration // default: 90s

	Metadata map[string]string

	HealthCheckURL string
	StatusPageURL  string // default: http://{ip}:{port}/info
	HomePageURL    string
	VIPAddress     string // default: AppName
}

// NewInstanceDescriptor validates cfg, fills defaults and returns the
// descriptor. All violations are reported as invalid_descriptor errors before
// any I/O happens: a bad descriptor must never reach the registry.
//
// Validated: AppName matches ^[A-Za-z0-9.-]+$, HostIP parses as an IPv4/IPv6
// literal, Port (and SecurePort when set) in [1,65535], and
// LeaseRenewalInterval < LeaseDuration (renewal must outrun expiry).
func NewInstanceDescriptor(cfg DescriptorConfig) (domain.InstanceDescriptor, error) {
	var zero domain.InstanceDescriptor

	if cfg.AppName == "" {
		return zero, NewInvalidDescriptorError("app name is required", nil)
	}
	if !appNameRe.MatchString(cfg.AppName) {
		return zero, NewInvalidDescriptorError(
			fmt.Sprintf("app name %q must match %s", cfg.AppName, appNameRe.String()), nil)
	}
	if net.ParseIP(cfg.HostIP) == nil {
		return zero, NewInvalidDescriptorError(
			fmt.Sprintf("host ip %q is not a valid IP literal", cfg.HostIP), nil)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return zero, NewInvalidDescriptorError(
			fmt.Sprintf("port %d out of range [1,65535]", cfg.Port), nil)
	}
	if cfg.SecurePort != 0 && (cfg.SecurePort < 1 || cfg.SecurePort > 65535) {
		return zero, NewInvalidDescriptorError(
			fmt.Sprintf("secure port %d out of range [1,65535]", cfg.SecurePort), nil)
	}

	renewal := cfg.LeaseRenewalInterval
	if renewal == 0 {
		renewal = DefaultLeaseRenewalInterval
	}
	duration := cfg.LeaseDuration
	if duration == 0 {
		duration = DefaultLeaseDuration
	}
	if renewal <= 0 || duration <= 0 {
		return zero, NewInvalidDescriptorError("lease intervals must be positive", nil)
	}
	if renewal >= duration {
		return zero, NewInvalidDescriptorError(
			fmt.Sprintf("lease renewal interval %s must be shorter than lease duration %s", renewal, duration), nil)
	}

	status := cfg.Status
	if status == "" {
		status = domain.StatusStarting
	}
	hostname := cfg.Hostname
	if hostname == "" {
		hostname = cfg.HostIP
	}
	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID = fmt.Sprintf("%s:%s:%d", cfg.HostIP, cfg.AppName, cfg.Port)
	}
	vip := cfg.VIPAddress
	if vip == "" {
		vip = cfg.AppName
	}
	statusPage := cfg.StatusPageURL
	if statusPage == "" {
		// Older Eureka UIs crash rendering an instance without a status page.
		statusPage = fmt.Sprintf("http://%s:%d/info", cfg.HostIP, cfg.Port)
	}

	return domain.InstanceDescriptor{
		AppName:              cfg.AppName,
		InstanceID:           instanceID,
		HostIP:               cfg.HostIP,
		Hostname:             hostname,
		Port:                 cfg.Port,
		SecurePort:           cfg.SecurePort,
		Status:               status,
		LeaseRenewalInterval: renewal,
		LeaseDuration:        duration,
		Metadata:             cfg.Metadata,
		HealthCheckURL:       cfg.HealthCheckURL,
		StatusPageURL:        statusPage,
		HomePageURL:          cfg.HomePageURL,
		VIPAddress:           vip,
	}, nil
}
