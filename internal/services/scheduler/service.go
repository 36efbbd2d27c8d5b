package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
)

// Service runs the periodic cache sweep on the configured cron schedule.
type Service struct {
	config *common.CacheConfig
	cache  interfaces.CacheService
	logger arbor.ILogger

	cron    *cron.Cron
	mu      sync.Mutex
	started bool
}

// NewService creates the sweep scheduler. The schedule itself is
// validated at config load time.
func NewService(config *common.CacheConfig, cache interfaces.CacheService, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		cache:  cache,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the sweep job and begins the scheduler. It is a no-op
// when sweeping is disabled.
func (s *Service) Start() error {
	if !s.config.SweepEnabled {
		s.logger.Info().Msg("Cache sweep disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.SweepSchedule, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule cache sweep: %w", err)
	}

	s.cron.Start()
	s.started = true
	s.logger.Info().Str("schedule", s.config.SweepSchedule).Msg("Cache sweep scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		<-s.cron.Stop().Done()
		s.started = false
	}
}

func (s *Service) sweep() {
	venues, vibes, err := s.cache.SweepExpired(context.Background())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cache sweep failed")
		return
	}

	s.logger.Info().
		Int("venues_removed", venues).
		Int("vibes_removed", vibes).
		Msg("Cache sweep completed")
}
