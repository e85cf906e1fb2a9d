package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/metrics"
)

// Resyncer is satisfied by *messages.Service.
type Resyncer interface {
	Resync(ctx context.Context) (int, error)
	Pending(ctx context.Context) (int64, error)
}

// Scheduler periodically flushes history entries that were parked in the
// local cache while the remote store was down.
type Scheduler struct {
	history  Resyncer
	interval time.Duration
	stopChan chan struct{}
}

func NewScheduler(history Resyncer, interval time.Duration) *Scheduler {
	return &Scheduler{
		history:  history,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start blocks until Stop is called or ctx ends.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().Msgf("starting history resync with interval %v", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.resync(ctx)
		case <-ctx.Done():
			log.Info().Msg("stopping history resync")
			return
		case <-s.stopChan:
			log.Info().Msg("stopping history resync")
			return
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) resync(ctx context.Context) {
	flushed, err := s.history.Resync(ctx)
	if err != nil {
		log.Warn().Err(err).Int("flushed", flushed).Msg("history resync incomplete")
	} else if flushed > 0 {
		log.Info().Int("flushed", flushed).Msg("pending history pushed to remote store")
	}

	pending, err := s.history.Pending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read pending history count")
		return
	}
	metrics.HistoryPending.Set(float64(pending))
}
