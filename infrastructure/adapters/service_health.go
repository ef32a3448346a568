package adapters

import (
	"context"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/channel_utils"
)

const healthCheckTimeout = 5 * time.Second

type healthReport struct {
	service string
	healthy bool
}

type serviceHealthChecker struct {
	logger     outbound.LoggerPort
	fetcher    ContentFetcher
	workerPool outbound.TaskDispatcher
	services   map[string]string
}

// NewServiceHealthChecker probes each collaborator's /health endpoint.
// The services map is service name -> base URL.
func NewServiceHealthChecker(logger outbound.LoggerPort, fetcher ContentFetcher,
	workerPool outbound.TaskDispatcher, services map[string]string) outbound.ServiceHealthPort {
	return &serviceHealthChecker{
		logger:     logger,
		fetcher:    fetcher,
		workerPool: workerPool,
		services:   services,
	}
}

func (c *serviceHealthChecker) CheckAll(ctx context.Context) map[string]bool {
	checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	channels := make([]<-chan healthReport, 0, len(c.services))
	for name, baseURL := range c.services {
		ch := make(chan healthReport, 1)
		channels = append(channels, ch)

		serviceName, serviceURL := name, baseURL
		if err := c.workerPool.Submit(func() {
			defer close(ch)
			ch <- healthReport{
				service: serviceName,
				healthy: c.check(checkCtx, serviceURL),
			}
		}); err != nil {
			c.logger.Error(err, "failed to submit health check task")
			close(ch)
		}
	}

	health := make(map[string]bool, len(c.services))
	for name := range c.services {
		health[name] = false
	}

	merged, err := channel_utils.MergeChannels(c.workerPool, channels...)
	if err != nil {
		c.logger.Error(err, "failed to merge health check channels")
		return health
	}
	for report := range merged {
		health[report.service] = report.healthy
	}
	return health
}

func (c *serviceHealthChecker) check(ctx context.Context, baseURL string) bool {
	err := c.fetcher.GetJSON(ctx, baseURL+"/health", nil)
	return err == nil
}
