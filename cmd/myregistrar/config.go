package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envEurekaURL        = "EUREKA_URL"
	envAppName          = "APP_NAME"
	envServicePort      = "SERVICE_PORT"
	envHostIP           = "HOST_IP"
	envInstanceID       = "INSTANCE_ID"
	envRenewalIntervalS = "RENEWAL_INTERVAL_S"
	envLeaseDurationS   = "LEASE_DURATION_S"
	envRequestTimeoutMs = "REQUEST_TIMEOUT_MS"
	envConfigPath       = "CONFIG_PATH"
)

const (
	defaultRequestTimeout = 10 * time.Second
)

// Config holds the full agent configuration loaded by LoadConfig from
// environment variables and the optional YAML file. EurekaURL is the registry
// base URL without trailing slash; Descriptor carries everything the lease
// client registers; RenewalInterval drives the heartbeat ticker;
// RequestTimeout bounds each registry call and must stay below
// RenewalInterval so a stuck call cannot delay the next scheduled renewal.
type Config struct {
	EurekaURL       string
	Descriptor      service.DescriptorConfig
	RenewalInterval time.Duration
	RequestTimeout  time.Duration
}

// yamlConfig is the root struct for YAML unmarshalling; carries the
// descriptor extras that are awkward as env vars (metadata and page URLs).
type yamlConfig struct {
	Metadata       map[string]string `yaml:"metadata"`
	SecurePort     int               `yaml:"secure_port"`
	HealthCheckURL string            `yaml:"health_check_url"`
	StatusPageURL  string            `yaml:"status_page_url"`
	HomePageURL    string            `yaml:"home_page_url"`
	VIPAddress     string            `yaml:"vip_address"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Parameter path — absolute path (LoadConfig converts CONFIG_PATH via filepath.Abs).
//
// Returns: (*yamlConfig, nil) on success; (nil, error) on os.ReadFile or yaml.Unmarshal error.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig loads configuration from environment variables plus the optional
// CONFIG_PATH YAML file. EUREKA_URL, APP_NAME and SERVICE_PORT are required;
// HOST_IP defaults to the first global unicast interface address.
func LoadConfig() (*Config, error) {
	eurekaURL := os.Getenv(envEurekaURL)
	if eurekaURL == "" {
		return nil, fmt.Errorf("%s is required", envEurekaURL)
	}
	eurekaURL = strings.TrimRight(eurekaURL, "/")

	appName := os.Getenv(envAppName)
	if appName == "" {
		return nil, fmt.Errorf("%s is required", envAppName)
	}

	portStr := os.Getenv(envServicePort)
	if portStr == "" {
		return nil, fmt.Errorf("%s is required", envServicePort)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envServicePort, err)
	}

	hostIP := os.Getenv(envHostIP)
	if hostIP == "" {
		hostIP, err = helpers.GlobalUnicastIPString()
		if err != nil {
			return nil, fmt.Errorf("%s is not set and autodetection failed: %w", envHostIP, err)
		}
	}

	renewalInterval, err := secondsEnv(envRenewalIntervalS, service.DefaultLeaseRenewalInterval)
	if err != nil {
		return nil, err
	}
	leaseDuration, err := secondsEnv(envLeaseDurationS, service.DefaultLeaseDuration)
	if err != nil {
		return nil, err
	}

	requestTimeout := defaultRequestTimeout
	if msStr := os.Getenv(envRequestTimeoutMs); msStr != "" {
		ms, err := strconv.Atoi(msStr)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", envRequestTimeoutMs, msStr)
		}
		requestTimeout = time.Duration(ms) * time.Millisecond
	}
	if requestTimeout >= renewalInterval {
		return nil, fmt.Errorf("%s (%s) must be below %s (%s)",
			envRequestTimeoutMs, requestTimeout, envRenewalIntervalS, renewalInterval)
	}

	cfg := &Config{
		EurekaURL: eurekaURL,
		Descriptor: service.DescriptorConfig{
			AppName:              appName,
			InstanceID:           os.Getenv(envInstanceID),
			HostIP:               hostIP,
			Port:                 port,
			Status:               domain.StatusUp,
			LeaseRenewalInterval: renewalInterval,
			LeaseDuration:        leaseDuration,
		},
		RenewalInterval: renewalInterval,
		RequestTimeout:  requestTimeout,
	}

	if configPath := os.Getenv(envConfigPath); configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envConfigPath, err)
		}
		yc, err := loadYAMLConfig(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envConfigPath, err)
		}
		cfg.Descriptor.Metadata = yc.Metadata
		cfg.Descriptor.SecurePort = yc.SecurePort
		cfg.Descriptor.HealthCheckURL = yc.HealthCheckURL
		cfg.Descriptor.StatusPageURL = yc.StatusPageURL
		cfg.Descriptor.HomePageURL = yc.HomePageURL
		cfg.Descriptor.VIPAddress = yc.VIPAddress
	}

	return cfg, nil
}

// secondsEnv parses an integer-seconds env var, returning def when unset.
func secondsEnv(name string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return time.Duration(secs) * time.Second, nil
}
