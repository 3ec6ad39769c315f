package health

import (
	"context"
	"sort"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// ServiceName is the health service name reported alongside the overall "" status.
const ServiceName = "e2ee.Relay"

const pingTimeout = 2 * time.Second

// Checker pings backing dependencies and publishes the result on a gRPC
// health server.
type Checker struct {
	server   *health.Server
	pingers  map[string]model.Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewChecker creates a Checker. Every pinger must succeed for the service to
// be reported as SERVING.
func NewChecker(server *health.Server, pingers map[string]model.Pinger, interval time.Duration, logger *logger.Logger) *Checker {
	return &Checker{
		server:   server,
		pingers:  pingers,
		interval: interval,
		logger:   logger,
	}
}

// Check pings every dependency once and updates the published status.
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING

	names := make([]string, 0, len(c.pingers))
	for name := range c.pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := c.pingers[name].Ping(pingCtx)
		cancel()
		if err != nil {
			c.logger.Warn("Health checker: dependency unavailable",
				"dependency", name,
				"error", err.Error())
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run checks immediately and then every interval until ctx is done, after
// which the server reports NOT_SERVING for good.
func (c *Checker) Run(ctx context.Context) {
	defer c.server.Shutdown()

	c.Check(ctx)
	if c.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}
