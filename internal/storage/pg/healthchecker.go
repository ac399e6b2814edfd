package pg

import (
	"context"
	"time"
)

// HealthChecker reports whether the run table's database answers pings.
type HealthChecker struct {
	pool    *ConnectionPool
	timeout time.Duration
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{
		pool:    pool,
		timeout: 2 * time.Second,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	return hc.pool.Ping(ctx) == nil
}
