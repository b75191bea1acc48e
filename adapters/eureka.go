package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/interfaces"
	"myregistrar/service"
)

// NewEurekaHTTP creates an interfaces.RegistryClient that talks to a
// Eureka-style registry over HTTP under baseURL (e.g.
// http://eureka:8761/eureka), no trailing slash. Panics on empty baseURL or
// nil client.
//
// Parameters: baseURL — registry base URL including any path prefix;
// client — HTTP client (set a timeout well below the renewal interval so a
// stuck call cannot delay the next scheduled renewal; main uses
// REQUEST_TIMEOUT_MS).
//
// Returns: interfaces.RegistryClient (*eurekaHTTP).
//
// Called from cmd/myregistrar when building the lease client.
func NewEurekaHTTP(baseURL string, client *http.Client) interfaces.RegistryClient {
	return &eurekaHTTP{
		baseURL: helpers.StrPanic(baseURL, "adapters.eureka.go: baseURL is required"),
		client:  helpers.NilPanic(client, "adapters.eureka.go: http client is required"),
	}
}

// eurekaHTTP implements interfaces.RegistryClient. One outbound request per
// call, outcome classified into the service.RegError taxonomy; no retries.
type eurekaHTTP struct {
	baseURL string
	client  *http.Client
}

// Register performs POST {baseURL}/apps/{app} with the instance-info JSON
// document. The registry answers 204 (some versions 200) on success.
func (e *eurekaHTTP) Register(ctx context.Context, d domain.InstanceDescriptor) error {
	body, err := json.Marshal(toInstanceDocument(d))
	if err != nil {
		return service.NewInvalidDescriptorError("failed to encode instance document", err)
	}
	status, err := e.do(ctx, http.MethodPost, "/apps/"+url.PathEscape(d.AppName), body)
	if err != nil {
		return err
	}
	return classifyStatus("register", status, false)
}

// Heartbeat performs PUT {baseURL}/apps/{app}/{id}. A 404 means the lease was
// dropped server-side (expired or evicted) and comes back as lease_not_found.
func (e *eurekaHTTP) Heartbeat(ctx context.Context, appName, instanceID string) error {
	status, err := e.do(ctx, http.MethodPut, instancePath(appName, instanceID), nil)
	if err != nil {
		return err
	}
	return classifyStatus("heartbeat", status, true)
}

// SetStatusOverride performs PUT {baseURL}/apps/{app}/{id}/status?value={status}.
func (e *eurekaHTTP) SetStatusOverride(ctx context.Context, appName, instanceID string, st domain.StatusType) error {
	path := instancePath(appName, instanceID) + "/status?value=" + url.QueryEscape(string(st))
	status, err := e.do(ctx, http.MethodPut, path, nil)
	if err != nil {
		return err
	}
	return classifyStatus("status update", status, false)
}

// RemoveStatusOverride performs DELETE {baseURL}/apps/{app}/{id}/status.
func (e *eurekaHTTP) RemoveStatusOverride(ctx context.Context, appName, instanceID string) error {
	status, err := e.do(ctx, http.MethodDelete, instancePath(appName, instanceID)+"/status", nil)
	if err != nil {
		return err
	}
	return classifyStatus("status override removal", status, false)
}

// UpdateMetadata performs PUT {baseURL}/apps/{app}/{id}/metadata?{key}={value}.
func (e *eurekaHTTP) UpdateMetadata(ctx context.Context, appName, instanceID, key, value string) error {
	path := instancePath(appName, instanceID) + "/metadata?" + url.QueryEscape(key) + "=" + url.QueryEscape(value)
	status, err := e.do(ctx, http.MethodPut, path, nil)
	if err != nil {
		return err
	}
	return classifyStatus("metadata update", status, false)
}

// Deregister performs DELETE {baseURL}/apps/{app}/{id}.
func (e *eurekaHTTP) Deregister(ctx context.Context, appName, instanceID string) error {
	status, err := e.do(ctx, http.MethodDelete, instancePath(appName, instanceID), nil)
	if err != nil {
		return err
	}
	return classifyStatus("deregister", status, false)
}

// do issues one request and returns the response status code. The response
// body is drained and discarded; the lease protocol carries everything in
// status codes. The registry defaults to XML without the Accept header.
// Network-level failures (refused, timeout, DNS) come back as
// transport_failure.
func (e *eurekaHTTP) do(ctx context.Context, method, path string, body []byte) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, reader)
	if err != nil {
		return 0, service.NewTransportFailureError("failed to build registry request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, service.NewTransportFailureError("registry request failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func instancePath(appName, instanceID string) string {
	return "/apps/" + url.PathEscape(appName) + "/" + url.PathEscape(instanceID)
}

// classifyStatus maps a response status to the error taxonomy: 2xx nil, 404
// on a renewal lease_not_found, other 4xx registry_rejected, everything else
// (5xx and oddities) transport_failure.
func classifyStatus(op string, status int, renewal bool) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case renewal && status == http.StatusNotFound:
		return service.NewLeaseNotFoundError(fmt.Sprintf("%s returned %d", op, status), nil)
	case status >= 400 && status < 500:
		return service.NewRegistryRejectedError(fmt.Sprintf("%s returned %d", op, status), nil)
	default:
		return service.NewTransportFailureError(fmt.Sprintf("%s returned %d", op, status), nil)
	}
}
