// Package cache keeps the hot read path (job detail lookups) off PostgreSQL.
// Cache failures are logged and never surfaced to callers; the store is
// always the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/pkg/models"
)

// ErrMiss is returned when a key is absent.
var ErrMiss = errors.New("cache miss")

// Cache wraps a redis client with the application's keys.
type Cache struct {
	client    *redis.Client
	detailTTL time.Duration
	logger    logging.Logger
}

// NewRedis connects a Cache from configuration and verifies the connection.
func NewRedis(cfg *config.Config, logger logging.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{
		client:    client,
		detailTTL: cfg.Redis.DetailTTL,
		logger:    logger,
	}, nil
}

// Client exposes the underlying redis client for components that share the
// connection, like the expiration scheduler.
func (c *Cache) Client() *redis.Client {
	return c.client
}

// JobDetailKey builds the cache key for a job post's detail view.
func JobDetailKey(jobID string) string {
	return "jobforge:job:" + jobID
}

// GetJobDetail returns the cached detail view, or ErrMiss.
func (c *Cache) GetJobDetail(ctx context.Context, jobID string) (*models.JobDetail, error) {
	data, err := c.client.Get(ctx, JobDetailKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var jd models.JobDetail
	if err := json.Unmarshal(data, &jd); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		c.logger.Warn("Dropping corrupt cached job detail", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		c.client.Del(ctx, JobDetailKey(jobID))
		return nil, ErrMiss
	}
	return &jd, nil
}

// SetJobDetail caches the detail view under the configured TTL. Errors are
// logged only.
func (c *Cache) SetJobDetail(ctx context.Context, jd *models.JobDetail) {
	data, err := json.Marshal(jd)
	if err != nil {
		c.logger.Warn("Failed to marshal job detail for cache", map[string]interface{}{
			"job_id": jd.ID,
			"error":  err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, JobDetailKey(jd.ID), data, c.detailTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache job detail", map[string]interface{}{
			"job_id": jd.ID,
			"error":  err.Error(),
		})
	}
}

// InvalidateJobDetail drops the cached detail view after a mutation. Errors
// are logged only; a stale entry ages out with the TTL.
func (c *Cache) InvalidateJobDetail(ctx context.Context, jobID string) {
	if err := c.client.Del(ctx, JobDetailKey(jobID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate job detail cache", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
}

// Ping verifies redis connectivity (readiness probe).
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
