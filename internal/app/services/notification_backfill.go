package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/metrics"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/observability"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/pkg/logger"
)

// NotificationBackfill sweeps answered queries that never got a notification
// and replays the answered event for each. Together with the in-request
// emission this makes delivery at-least-once: the sweep picks up anything a
// crash or a failing notification store dropped, and the per-query
// uniqueness in the store keeps replays from duplicating.
type NotificationBackfill struct {
	queryStore QueryStore
	notifier   QueryAnsweredHandler
	interval   time.Duration
}

// NewNotificationBackfill creates a backfill sweeper. A non-positive
// interval falls back to one minute.
func NewNotificationBackfill(queryStore QueryStore, notifier QueryAnsweredHandler, interval time.Duration) *NotificationBackfill {
	if interval <= 0 {
		interval = time.Minute
	}
	return &NotificationBackfill{
		queryStore: queryStore,
		notifier:   notifier,
		interval:   interval,
	}
}

// RunOnce performs a single sweep and returns how many notifications it
// recovered. A query whose dispatch fails stays missing and is retried on
// the next sweep.
func (b *NotificationBackfill) RunOnce(ctx context.Context) (int, error) {
	queries, err := b.queryStore.ListAnsweredMissingNotification(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing answered queries without notifications: %w", err)
	}

	recovered := 0
	for i := range queries {
		if _, err := b.notifier.OnQueryAnswered(ctx, &queries[i]); err != nil {
			logger.Warn().Err(err).Int64("queryID", queries[i].ID).Msg("Backfill dispatch failed, retrying on next sweep")
			observability.CaptureErr(err)
			continue
		}
		recovered++
		metrics.NotificationsBackfilled.Inc()
	}

	if recovered > 0 {
		logger.Info().Int("recovered", recovered).Msg("Backfilled missing notifications")
	}
	return recovered, nil
}

// Start runs an immediate sweep and then one per interval until ctx is
// cancelled.
func (b *NotificationBackfill) Start(ctx context.Context) {
	if _, err := b.RunOnce(ctx); err != nil {
		logger.Error().Err(err).Msg("Notification backfill sweep failed")
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := b.RunOnce(ctx); err != nil {
				logger.Error().Err(err).Msg("Notification backfill sweep failed")
			}
		}
	}
}
