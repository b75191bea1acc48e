// Package registrytest provides an in-process fake of a Eureka-style
// registry for tests and local development. It serves the lease endpoints
// (register, heartbeat, status override, metadata, deregister) against an
// in-memory lease table and lets tests inspect and manipulate leases
// directly (DropLease simulates a server-side eviction).
package registrytest

import (
	"net/http"
	"sync"
	"time"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// Lease is one registered instance as the fake registry sees it. Counters
// exist for test assertions (e.g. the status-update idempotence check).
type Lease struct {
	InstanceID     string
	App            string
	IPAddr         string
	HostName       string
	Port           int
	Status         string
	OverrideStatus string // empty when no override is set
	Metadata       map[string]string
	Duration       time.Duration
	RegisteredAt   time.Time
	LastRenewal    time.Time
	Renewals       int
	StatusUpdates  int
}

// FakeRegistry holds the in-memory lease table. Safe for concurrent use.
type FakeRegistry struct {
	logger log.Logger

	mu   sync.Mutex
	apps map[string]map[string]*Lease // app name -> instance id -> lease
}

// NewFakeRegistry creates an empty fake registry. Panics on nil logger.
func NewFakeRegistry(logger log.Logger) *FakeRegistry {
	return &FakeRegistry{
		logger: log.With(helpers.NilPanic(logger, "registrytest.registry.go: logger is required"), "component", "fake_registry"),
		apps:   make(map[string]map[string]*Lease),
	}
}

// NewServer assembles an echo server with the fake registry's handlers and
// error handler mounted. The returned echo.Echo is an http.Handler, so tests
// wrap it in httptest.NewServer; cmd/fakeeureka calls Start on it.
func NewServer(f *FakeRegistry, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	RegisterErrorHandler(e, logger)
	RegisterHandlers(e, f)
	return e
}

// RegisterHandlers mounts the registry endpoints on e.
func RegisterHandlers(e *echo.Echo, f *FakeRegistry) {
	e.POST("/apps/:app", f.register)
	e.PUT("/apps/:app/:id", f.heartbeat)
	e.PUT("/apps/:app/:id/status", f.setStatusOverride)
	e.DELETE("/apps/:app/:id/status", f.removeStatusOverride)
	e.PUT("/apps/:app/:id/metadata", f.updateMetadata)
	e.DELETE("/apps/:app/:id", f.deregister)
}

// registerRequest is the JSON shape of POST /apps/{app}: { "instance": {...} }.
// Deliberately independent of the adapter's encode types so the tests catch
// serialization drift between the two.
type registerRequest struct {
	Instance registerInstance `json:"instance"`
}

type registerInstance struct {
	InstanceID string            `json:"instanceId"`
	HostName   string            `json:"hostName"`
	App        string            `json:"app"`
	IPAddr     string            `json:"ipAddr"`
	Status     string            `json:"status"`
	Port       portValue         `json:"port"`
	LeaseInfo  leaseInfoValue    `json:"leaseInfo"`
	Metadata   map[string]string `json:"metadata"`
}

type portValue struct {
	Value   int    `json:"$"`
	Enabled string `json:"@enabled"`
}

type leaseInfoValue struct {
	RenewalIntervalInSecs int `json:"renewalIntervalInSecs"`
	DurationInSecs        int `json:"durationInSecs"`
}

// register (POST /apps/{app}) stores a lease for the instance. Returns 204 on
// success, 400 on a malformed document. Re-registering an existing instance
// replaces the lease, as the real registry does.
func (f *FakeRegistry) register(ectx echo.Context) error {
	app := ectx.Param("app")

	var req registerRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewRegistryRejectedError("invalid instance document", err)
	}
	inst := req.Instance
	if inst.InstanceID == "" {
		return service.NewRegistryRejectedError("instance document is missing instanceId", nil)
	}
	if inst.Port.Value < 1 || inst.Port.Value > 65535 {
		return service.NewRegistryRejectedError("instance document has an invalid port", nil)
	}
	if inst.LeaseInfo.DurationInSecs <= 0 {
		return service.NewRegistryRejectedError("instance document has an invalid lease duration", nil)
	}

	now := time.Now()
	lease := &Lease{
		InstanceID:   inst.InstanceID,
		App:          app,
		IPAddr:       inst.IPAddr,
		HostName:     inst.HostName,
		Port:         inst.Port.Value,
		Status:       inst.Status,
		Metadata:     inst.Metadata,
		Duration:     time.Duration(inst.LeaseInfo.DurationInSecs) * time.Second,
		RegisteredAt: now,
		LastRenewal:  now,
	}

	f.mu.Lock()
	if f.apps[app] == nil {
		f.apps[app] = make(map[string]*Lease)
	}
	f.apps[app][inst.InstanceID] = lease
	f.mu.Unlock()

	level.Debug(f.logger).Log("msg", "lease registered", "app", app, "instance_id", inst.InstanceID)
	return ectx.NoContent(http.StatusNoContent)
}

// heartbeat (PUT /apps/{app}/{id}) renews the lease. Returns 200 when the
// lease exists, 404 when it does not (never registered, evicted via
// DropLease, or expired past its duration).
func (f *FakeRegistry) heartbeat(ectx echo.Context) error {
	app, id := ectx.Param("app"), ectx.Param("id")
	now := time.Now()

	f.mu.Lock()
	lease, ok := f.apps[app][id]
	if ok && now.Sub(lease.LastRenewal) > lease.Duration {
		// Lazy eviction: the lease outlived its duration with no renewal.
		delete(f.apps[app], id)
		ok = false
	}
	if ok {
		lease.LastRenewal = now
		lease.Renewals++
	}
	f.mu.Unlock()

	if !ok {
		return service.NewLeaseNotFoundError("no lease for instance", nil)
	}
	return ectx.NoContent(http.StatusOK)
}

// setStatusOverride (PUT /apps/{app}/{id}/status?value=S) sets the override.
// Returns 200 on success, 400 on a missing or unknown status value, 404 for
// an unknown instance.
func (f *FakeRegistry) setStatusOverride(ectx echo.Context) error {
	app, id := ectx.Param("app"), ectx.Param("id")
	value := ectx.QueryParam("value")
	switch domain.StatusType(value) {
	case domain.StatusUp, domain.StatusDown, domain.StatusStarting, domain.StatusOutOfService, domain.StatusUnknown:
	default:
		return service.NewRegistryRejectedError("unknown status value", nil)
	}

	f.mu.Lock()
	lease, ok := f.apps[app][id]
	if ok {
		lease.OverrideStatus = value
		lease.Status = value
		lease.StatusUpdates++
	}
	f.mu.Unlock()

	if !ok {
		return service.NewLeaseNotFoundError("no lease for instance", nil)
	}
	return ectx.NoContent(http.StatusOK)
}

// removeStatusOverride (DELETE /apps/{app}/{id}/status) clears the override,
// returning status control to the instance.
func (f *FakeRegistry) removeStatusOverride(ectx echo.Context) error {
	app, id := ectx.Param("app"), ectx.Param("id")

	f.mu.Lock()
	lease, ok := f.apps[app][id]
	if ok {
		lease.OverrideStatus = ""
	}
	f.mu.Unlock()

	if !ok {
		return service.NewLeaseNotFoundError("no lease for instance", nil)
	}
	return ectx.NoContent(http.StatusOK)
}

// updateMetadata (PUT /apps/{app}/{id}/metadata?k=v) merges the query
// parameters into the lease metadata.
func (f *FakeRegistry) updateMetadata(ectx echo.Context) error {
	app, id := ectx.Param("app"), ectx.Param("id")

	f.mu.Lock()
	lease, ok := f.apps[app][id]
	if ok {
		if lease.Metadata == nil {
			lease.Metadata = make(map[string]string)
		}
		for k, vs := range ectx.QueryParams() {
			if len(vs) > 0 {
				lease.Metadata[k] = vs[0]
			}
		}
	}
	f.mu.Unlock()

	if !ok {
		return service.NewLeaseNotFoundError("no lease for instance", nil)
	}
	return ectx.NoContent(http.StatusOK)
}

// deregister (DELETE /apps/{app}/{id}) removes the lease. Idempotent: 200
// whether or not the lease existed, matching the registry's behavior so a
// shutting-down client never sees its final DELETE fail.
func (f *FakeRegistry) deregister(ectx echo.Context) error {
	app, id := ectx.Param("app"), ectx.Param("id")

	f.mu.Lock()
	delete(f.apps[app], id)
	f.mu.Unlock()

	level.Debug(f.logger).Log("msg", "lease removed", "app", app, "instance_id", id)
	return ectx.NoContent(http.StatusOK)
}

// Lease returns a copy of the lease for the given instance, with the
// metadata map copied as well, and whether it exists.
func (f *FakeRegistry) Lease(app, instanceID string) (Lease, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lease, ok := f.apps[app][instanceID]
	if !ok {
		return Lease{}, false
	}
	out := *lease
	out.Metadata = make(map[string]string, len(lease.Metadata))
	for k, v := range lease.Metadata {
		out.Metadata[k] = v
	}
	return out, true
}

// AgeLease rewinds the lease's last renewal by the given amount, so tests can
// push a lease past its duration without sleeping.
func (f *FakeRegistry) AgeLease(app, instanceID string, by time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lease, ok := f.apps[app][instanceID]; ok {
		lease.LastRenewal = lease.LastRenewal.Add(-by)
	}
}

// DropLease removes the lease without the client's knowledge, simulating a
// server-side eviction so the next heartbeat answers 404.
func (f *FakeRegistry) DropLease(app, instanceID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.apps[app], instanceID)
}

// InstanceCount returns the number of live leases for the app.
func (f *FakeRegistry) InstanceCount(app string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.apps[app])
}
