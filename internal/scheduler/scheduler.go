// Package scheduler refreshes the station directory on a fixed interval
// so long-running processes pick up newly registered stations.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/katiamach/meteostat-client/internal/logger"
)

// StationRefresher rebuilds the station directory from the source.
type StationRefresher interface {
	RefreshStations(ctx context.Context) error
}

// Scheduler periodically refreshes the station directory.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher StationRefresher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(refresher StationRefresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler in the background.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		logger.Info("scheduler: station refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.refresher.RefreshStations(ctx); err != nil {
			logger.Error(fmt.Errorf("scheduler: station refresh failed: %w", err))
			return
		}
		logger.Info("scheduler: station directory refreshed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule station refresh: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the underlying scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
