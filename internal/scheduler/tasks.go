// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Default schedules of the housekeeping jobs.
const (
	PurgeEventsSchedule    = "0 3 * * *"
	LoginCleanupSchedule   = "@every 10m"
	WarmCatalogSchedule    = "@every 5m"
	PurgeEventsJobName     = "purge_events"
	LoginCleanupJobName    = "login_protection_cleanup"
	WarmCatalogJobName     = "warm_catalog"
	purgeEventsDescription = "Delete event log entries older than the retention period"
)

// EventPruner deletes old event log entries.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeEvents returns a job that deletes events older than retention.
func PurgeEvents(events EventPruner, retention time.Duration, logger *slog.Logger) JobFunc {
	return purgeEvents(events, retention, logger, time.Now)
}

func purgeEvents(events EventPruner, retention time.Duration, logger *slog.Logger, now func() time.Time) JobFunc {
	return func(ctx context.Context) error {
		cutoff := now().Add(-retention)
		n, err := events.DeleteEventsBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("purged old events", "count", n, "before", cutoff.Format(time.RFC3339))
		}
		return nil
	}
}

// RegisterPurgeEvents schedules the event retention job. A zero retention
// keeps events forever and registers nothing.
func (s *Scheduler) RegisterPurgeEvents(events EventPruner, retention time.Duration) error {
	if retention <= 0 {
		return nil
	}
	return s.Register(PurgeEventsJobName, purgeEventsDescription, PurgeEventsSchedule,
		PurgeEvents(events, retention, s.logger))
}

// CatalogWarmer refreshes cached catalog listings.
type CatalogWarmer interface {
	Warm(ctx context.Context) error
}

// RegisterWarmCatalog schedules a periodic refresh of the cached listings
// so edits made directly in the database show up without a restart.
func (s *Scheduler) RegisterWarmCatalog(w CatalogWarmer) error {
	return s.Register(WarmCatalogJobName, "Reload cached course, blog and testimonial listings",
		WarmCatalogSchedule, w.Warm)
}
