package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistrar/adapters"
	"myregistrar/domain"
	"myregistrar/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	registerMaxRetries = 5
	registerBaseDelay  = time.Second
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting myregistrar agent")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}

	descriptor, err := service.NewInstanceDescriptor(config.Descriptor)
	if err != nil {
		level.Error(logger).Log("msg", "Invalid instance descriptor", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"eureka_url", config.EurekaURL,
		"app", descriptor.AppName,
		"instance_id", descriptor.InstanceID,
		"host_ip", descriptor.HostIP,
		"port", descriptor.Port,
		"renewal_interval", config.RenewalInterval,
		"lease_duration", descriptor.LeaseDuration,
	)

	// Create lease client
	var client *service.LeaseClient
	{
		httpClient := &http.Client{Timeout: config.RequestTimeout}
		registry := adapters.NewEurekaHTTP(config.EurekaURL, httpClient)
		clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
		client, err = service.NewLeaseClient(registry, descriptor, clock, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create lease client", "err", err)
			os.Exit(1)
		}
	}

	// Initial registration, with backoff for transient failures
	if err := registerWithRetry(client, config.RequestTimeout, logger); err != nil {
		level.Error(logger).Log("msg", "Failed to register with registry", "err", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Heartbeat loop
	ticker := time.NewTicker(config.RenewalInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			renewOnce(client, config.RequestTimeout, logger)
		case <-quit:
			level.Info(logger).Log("msg", "Shutting down, deregistering...")
			ctx, cancel := context.WithTimeout(context.Background(), config.RequestTimeout)
			if err := client.Deregister(ctx); err != nil {
				level.Warn(logger).Log("msg", "Deregistration failed", "err", err)
			}
			cancel()
			level.Info(logger).Log("msg", "Agent stopped")
			return
		}
	}
}

// registerWithRetry attempts Register with exponential backoff for transport
// failures (connection refused, timeout, 5xx). A rejection of the payload
// itself fails immediately, since retrying an identical bad request cannot
// help.
func registerWithRetry(client *service.LeaseClient, timeout time.Duration, logger log.Logger) error {
	var err error
	for i := 0; i <= registerMaxRetries; i++ {
		if i > 0 {
			time.Sleep(registerBaseDelay * time.Duration(1<<(i-1)))
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = client.Register(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if !service.IsTransportFailureError(err) {
			return err
		}
		level.Warn(logger).Log("msg", "Registration attempt failed", "attempt", i+1, "err", err)
	}
	return err
}

// renewOnce performs one scheduled renewal. Transient failures are already
// logged by the lease client and simply wait for the next tick; a lost lease
// (404, or a re-registration that failed on an earlier tick) forces a
// registration instead.
func renewOnce(client *service.LeaseClient, timeout time.Duration, logger log.Logger) {
	if client.State() == domain.LeaseUnregistered {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := client.Register(ctx); err != nil {
			level.Warn(logger).Log("msg", "Re-registration failed, will retry next tick", "err", err)
		}
		cancel()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	err := client.Renew(ctx)
	cancel()
	if err == nil {
		return
	}
	if service.IsLeaseNotFoundError(err) {
		level.Info(logger).Log("msg", "Lease lost, re-registering")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := client.Register(ctx); err != nil {
			level.Warn(logger).Log("msg", "Re-registration failed, will retry next tick", "err", err)
		}
		cancel()
		return
	}
	if client.LeaseExpired() {
		level.Warn(logger).Log(
			"msg", "Lease presumed expired, instance likely out of discovery",
			"consecutive_failures", client.ConsecutiveFailures(),
		)
	}
}
