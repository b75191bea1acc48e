package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myregistrar/domain"
	"myregistrar/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor() domain.InstanceDescriptor {
	return domain.InstanceDescriptor{
		AppName:              "test-app",
		InstanceID:           "127.0.0.1:test-app:8080",
		HostIP:               "127.0.0.1",
		Hostname:             "127.0.0.1",
		Port:                 8080,
		Status:               domain.StatusUp,
		LeaseRenewalInterval: 30 * time.Second,
		LeaseDuration:        90 * time.Second,
		VIPAddress:           "test-app",
	}
}

func TestNewEurekaHTTP_Panics(t *testing.T) {
	t.Run("baseURL_empty", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.eureka.go: baseURL is required", func() {
			NewEurekaHTTP("", &http.Client{})
		})
	})
	t.Run("client_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.eureka.go: http client is required", func() {
			NewEurekaHTTP("http://localhost:8761/eureka", nil)
		})
	})
}

func TestEurekaHTTP_Register(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantCode   string // "" means success expected
	}{
		{name: "204_no_content", statusCode: http.StatusNoContent},
		{name: "200_ok", statusCode: http.StatusOK},
		{name: "400_rejected", statusCode: http.StatusBadRequest, wantCode: service.ErrRegistryRejected},
		{name: "500_transport", statusCode: http.StatusInternalServerError, wantCode: service.ErrTransportFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotAccept, gotContentType string
			var gotBody []byte
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotAccept = r.Header.Get("Accept")
				gotContentType = r.Header.Get("Content-Type")
				gotBody, _ = io.ReadAll(r.Body)
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewEurekaHTTP(server.URL, server.Client())
			err := client.Register(context.Background(), testDescriptor())

			assert.Equal(t, http.MethodPost, gotMethod)
			assert.Equal(t, "/apps/test-app", gotPath)
			assert.Equal(t, "application/json", gotAccept)
			assert.Equal(t, "application/json", gotContentType)

			var doc struct {
				Instance struct {
					InstanceID string `json:"instanceId"`
					App        string `json:"app"`
				} `json:"instance"`
			}
			require.NoError(t, json.Unmarshal(gotBody, &doc))
			assert.Equal(t, "127.0.0.1:test-app:8080", doc.Instance.InstanceID)
			assert.Equal(t, "test-app", doc.Instance.App)

			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, service.ToRegErrorCode(err))
			}
		})
	}
}

func TestEurekaHTTP_Heartbeat(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantCode   string
	}{
		{name: "200_ok", statusCode: http.StatusOK},
		{name: "404_lease_not_found", statusCode: http.StatusNotFound, wantCode: service.ErrLeaseNotFound},
		{name: "400_rejected", statusCode: http.StatusBadRequest, wantCode: service.ErrRegistryRejected},
		{name: "503_transport", statusCode: http.StatusServiceUnavailable, wantCode: service.ErrTransportFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewEurekaHTTP(server.URL, server.Client())
			err := client.Heartbeat(context.Background(), "test-app", "127.0.0.1:test-app:8080")

			assert.Equal(t, http.MethodPut, gotMethod)
			assert.Equal(t, "/apps/test-app/127.0.0.1:test-app:8080", gotPath)

			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, service.ToRegErrorCode(err))
			}
		})
	}
}

func TestEurekaHTTP_SetStatusOverride(t *testing.T) {
	var gotMethod, gotPath, gotValue string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotValue = r.URL.Query().Get("value")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewEurekaHTTP(server.URL, server.Client())
	err := client.SetStatusOverride(context.Background(), "test-app", "id-1", domain.StatusOutOfService)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/apps/test-app/id-1/status", gotPath)
	assert.Equal(t, "OUT_OF_SERVICE", gotValue)
}

func TestEurekaHTTP_RemoveStatusOverride(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewEurekaHTTP(server.URL, server.Client())
	err := client.RemoveStatusOverride(context.Background(), "test-app", "id-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/apps/test-app/id-1/status", gotPath)
}

func TestEurekaHTTP_UpdateMetadata(t *testing.T) {
	var gotMethod, gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewEurekaHTTP(server.URL, server.Client())
	err := client.UpdateMetadata(context.Background(), "test-app", "id-1", "zone", "eu-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/apps/test-app/id-1/metadata", gotPath)
	assert.Equal(t, []string{"eu-1"}, gotQuery["zone"])
}

func TestEurekaHTTP_Deregister(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewEurekaHTTP(server.URL, server.Client())
	err := client.Deregister(context.Background(), "test-app", "id-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/apps/test-app/id-1", gotPath)
}

func TestEurekaHTTP_ConnectionRefused(t *testing.T) {
	// Point at a closed port: the classification must be transport_failure,
	// never a panic or an unclassified error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewEurekaHTTP(baseURL, &http.Client{Timeout: time.Second})
	err := client.Heartbeat(context.Background(), "test-app", "id-1")
	require.Error(t, err)
	assert.Equal(t, service.ErrTransportFailure, service.ToRegErrorCode(err))
}

func TestEurekaHTTP_ContextTimeout(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewEurekaHTTP(server.URL, server.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Heartbeat(ctx, "test-app", "id-1")
	<-started
	require.Error(t, err)
	assert.Equal(t, service.ErrTransportFailure, service.ToRegErrorCode(err))
}
