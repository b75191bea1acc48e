package registrytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"myregistrar/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instanceDoc = `{
	"instance": {
		"instanceId": "127.0.0.1:test-app:8080",
		"hostName": "127.0.0.1",
		"app": "test-app",
		"ipAddr": "127.0.0.1",
		"status": "UP",
		"port": {"$": 8080, "@enabled": "true"},
		"leaseInfo": {"renewalIntervalInSecs": 30, "durationInSecs": 90},
		"metadata": {"version": "1.0.0"}
	}
}`

func newTestServer(t *testing.T) (*FakeRegistry, *httptest.Server) {
	t.Helper()
	logger := log.NewNopLogger()
	registry := NewFakeRegistry(logger)
	server := httptest.NewServer(NewServer(registry, logger))
	t.Cleanup(server.Close)
	return registry, server
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out ErrResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	return out.Error.Code
}

func TestRegister_StoresLease(t *testing.T) {
	registry, server := newTestServer(t)

	resp := doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	lease, ok := registry.Lease("test-app", "127.0.0.1:test-app:8080")
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", lease.IPAddr)
	assert.Equal(t, 8080, lease.Port)
	assert.Equal(t, "UP", lease.Status)
	assert.Equal(t, 90*time.Second, lease.Duration)
	assert.Equal(t, "1.0.0", lease.Metadata["version"])
}

func TestRegister_MalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not_json", body: "not json"},
		{name: "missing_instance_id", body: `{"instance":{"app":"test-app","port":{"$":8080,"@enabled":"true"},"leaseInfo":{"durationInSecs":90}}}`},
		{name: "bad_port", body: `{"instance":{"instanceId":"i1","port":{"$":0,"@enabled":"true"},"leaseInfo":{"durationInSecs":90}}}`},
		{name: "bad_lease_duration", body: `{"instance":{"instanceId":"i1","port":{"$":8080,"@enabled":"true"},"leaseInfo":{"durationInSecs":0}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, server := newTestServer(t)

			resp := doRequest(t, http.MethodPost, server.URL+"/apps/test-app", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, service.ErrRegistryRejected, errorCode(t, resp))
			assert.Equal(t, 0, registry.InstanceCount("test-app"))
		})
	}
}

func TestHeartbeat(t *testing.T) {
	registry, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)

	resp := doRequest(t, http.MethodPut, server.URL+"/apps/test-app/127.0.0.1:test-app:8080", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	lease, _ := registry.Lease("test-app", "127.0.0.1:test-app:8080")
	assert.Equal(t, 1, lease.Renewals)
}

func TestHeartbeat_UnknownInstance(t *testing.T) {
	_, server := newTestServer(t)

	resp := doRequest(t, http.MethodPut, server.URL+"/apps/test-app/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, service.ErrLeaseNotFound, errorCode(t, resp))
}

func TestHeartbeat_ExpiredLeaseIsEvicted(t *testing.T) {
	registry, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)

	registry.AgeLease("test-app", "127.0.0.1:test-app:8080", 91*time.Second)

	resp := doRequest(t, http.MethodPut, server.URL+"/apps/test-app/127.0.0.1:test-app:8080", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, registry.InstanceCount("test-app"))
}

func TestStatusOverride(t *testing.T) {
	registry, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)
	id := "127.0.0.1:test-app:8080"

	resp := doRequest(t, http.MethodPut, fmt.Sprintf("%s/apps/test-app/%s/status?value=OUT_OF_SERVICE", server.URL, id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lease, _ := registry.Lease("test-app", id)
	assert.Equal(t, "OUT_OF_SERVICE", lease.OverrideStatus)

	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/apps/test-app/%s/status", server.URL, id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lease, _ = registry.Lease("test-app", id)
	assert.Equal(t, "", lease.OverrideStatus)
}

func TestStatusOverride_BadValue(t *testing.T) {
	_, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)

	resp := doRequest(t, http.MethodPut, server.URL+"/apps/test-app/127.0.0.1:test-app:8080/status?value=SORT_OF_UP", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, service.ErrRegistryRejected, errorCode(t, resp))
}

func TestUpdateMetadata(t *testing.T) {
	registry, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)
	id := "127.0.0.1:test-app:8080"

	resp := doRequest(t, http.MethodPut, fmt.Sprintf("%s/apps/test-app/%s/metadata?zone=eu-1", server.URL, id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	lease, _ := registry.Lease("test-app", id)
	assert.Equal(t, "eu-1", lease.Metadata["zone"])
	// Existing pairs survive a merge.
	assert.Equal(t, "1.0.0", lease.Metadata["version"])
}

func TestDeregister_Idempotent(t *testing.T) {
	registry, server := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/apps/test-app", instanceDoc)
	id := "127.0.0.1:test-app:8080"

	resp := doRequest(t, http.MethodDelete, fmt.Sprintf("%s/apps/test-app/%s", server.URL, id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, registry.InstanceCount("test-app"))

	// Deleting an already-gone lease is still 200.
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/apps/test-app/%s", server.URL, id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
