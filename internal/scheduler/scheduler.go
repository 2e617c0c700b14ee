// Package scheduler expires job posts when their paid listing duration ends.
// Due times live in a redis sorted set scored by unix timestamp; a cron
// sweep pops everything due and flips it to EXPIRE. Delivery is
// at-least-once, which the store's idempotent expiration absorbs.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
)

// ExpireStore is the slice of the store the scheduler needs.
type ExpireStore interface {
	ExpireJob(ctx context.Context, jobID string) error
}

// Scheduler manages deferred job post expiration.
type Scheduler struct {
	client   *redis.Client
	store    ExpireStore
	queueKey string
	interval time.Duration
	cron     *cron.Cron
	logger   logging.Logger
}

// New builds a Scheduler sharing the given redis client.
func New(client *redis.Client, store ExpireStore, cfg *config.Config, logger logging.Logger) *Scheduler {
	return &Scheduler{
		client:   client,
		store:    store,
		queueKey: cfg.Scheduler.QueueKey,
		interval: cfg.Scheduler.SweepInterval,
		cron:     cron.New(),
		logger:   logger.WithField("component", "scheduler"),
	}
}

// Start registers the sweep and begins running it in the background.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("scheduler: registering sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Expiration scheduler started", map[string]interface{}{
		"interval": s.interval.String(),
		"queue":    s.queueKey,
	})
	return nil
}

// Stop halts the cron runner and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Expiration scheduler stopped")
}

// Submit queues a job post for expiration at dueAt. Submission is
// fire-and-forget: a queue failure is logged, never returned, so a redis
// blip cannot fail a job creation that already committed.
func (s *Scheduler) Submit(ctx context.Context, jobID string, dueAt time.Time) {
	err := s.client.ZAdd(ctx, s.queueKey, redis.Z{
		Score:  float64(dueAt.Unix()),
		Member: jobID,
	}).Err()
	if err != nil {
		s.logger.Error("Failed to queue job expiration", map[string]interface{}{
			"job_id": jobID,
			"due_at": dueAt.Format(time.RFC3339),
			"error":  err.Error(),
		})
	}
}

// Cancel removes a queued expiration, typically after the post is deleted.
// Also fire-and-forget; an orphaned entry is harmless because expiring a
// deleted post is a no-op.
func (s *Scheduler) Cancel(ctx context.Context, jobID string) {
	if err := s.client.ZRem(ctx, s.queueKey, jobID).Err(); err != nil {
		s.logger.Error("Failed to cancel queued expiration", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
}

// sweep expires every queued post whose due time has passed.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := strconv.FormatInt(time.Now().Unix(), 10)
	due, err := s.client.ZRangeByScore(ctx, s.queueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		s.logger.Error("Expiration sweep query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(due) == 0 {
		return
	}

	expired := 0
	for _, jobID := range due {
		if err := s.store.ExpireJob(ctx, jobID); err != nil {
			// Leave the member queued; the next sweep retries it.
			s.logger.Error("Failed to expire job post", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
			continue
		}
		if err := s.client.ZRem(ctx, s.queueKey, jobID).Err(); err != nil {
			s.logger.Warn("Failed to dequeue expired job", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
			continue
		}
		expired++
	}

	s.logger.Info("Expiration sweep completed", map[string]interface{}{
		"due":     len(due),
		"expired": expired,
	})
}
