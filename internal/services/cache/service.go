// Package cache applies the TTL policy over the venue and vibe stores.
// Reads degrade to a miss on storage errors so callers never have to handle
// cache failures.
package cache

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
)

// Synthesizer produces a deterministic fallback profile when generation
// fails. Must be pure and total.
type Synthesizer func(venue *models.Venue) *models.VibeProfile

// Service provides TTL-checked access to the venue and vibe caches.
type Service struct {
	venues     interfaces.VenueStorage
	vibes      interfaces.VibeStorage
	venueTTL   time.Duration
	vibeTTL    time.Duration
	synthesize Synthesizer
	logger     arbor.ILogger
}

// NewService creates a new cache service.
func NewService(storage interfaces.StorageManager, config *common.CacheConfig, synthesize Synthesizer, logger arbor.ILogger) *Service {
	return &Service{
		venues:     storage.VenueStorage(),
		vibes:      storage.VibeStorage(),
		venueTTL:   config.VenueTTL,
		vibeTTL:    config.VibeTTL,
		synthesize: synthesize,
		logger:     logger,
	}
}

// GetVenue returns the cached venue when present and within TTL.
func (s *Service) GetVenue(ctx context.Context, venueID string) (*models.Venue, bool) {
	record, err := s.venues.Get(ctx, venueID)
	if err != nil {
		if err != interfaces.ErrNotCached {
			s.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Venue cache read failed, treating as miss")
		}
		return nil, false
	}

	if s.expired(record.CachedAt, s.venueTTL) {
		return nil, false
	}

	return &record.Venue, true
}

// SaveVenue caches the venue detail record.
func (s *Service) SaveVenue(ctx context.Context, venue *models.Venue) error {
	return s.venues.Put(ctx, venue)
}

// GetAnalysis returns the cached vibe analysis when present and within TTL.
func (s *Service) GetAnalysis(ctx context.Context, venueID string) (*models.VibeProfile, bool) {
	record, err := s.vibes.Get(ctx, venueID)
	if err != nil {
		if err != interfaces.ErrNotCached {
			s.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Vibe cache read failed, treating as miss")
		}
		return nil, false
	}

	if s.expired(record.CachedAt, s.vibeTTL) {
		return nil, false
	}

	return &record.Analysis, true
}

// SaveAnalysis caches the vibe analysis record.
func (s *Service) SaveAnalysis(ctx context.Context, analysis *models.VibeProfile) error {
	return s.vibes.Put(ctx, analysis)
}

// GetOrCreateAnalysis returns a usable vibe analysis for the venue. Cache hit
// wins; otherwise generate is invoked and the result cached. Generation
// failure yields the deterministic fallback profile, which is not cached so a
// later request can retry generation. This method never fails.
func (s *Service) GetOrCreateAnalysis(ctx context.Context, venue *models.Venue, generate interfaces.GenerateFunc) *models.VibeProfile {
	if analysis, ok := s.GetAnalysis(ctx, venue.ID); ok {
		return analysis
	}

	analysis, err := generate(ctx, venue)
	if err != nil {
		s.logger.Warn().Err(err).Str("venue_id", venue.ID).Msg("Vibe generation failed, synthesizing fallback profile")
		return s.synthesize(venue)
	}

	if err := s.SaveAnalysis(ctx, analysis); err != nil {
		s.logger.Warn().Err(err).Str("venue_id", venue.ID).Msg("Failed to cache vibe analysis")
	}

	return analysis
}

// SweepExpired removes expired records from both namespaces.
func (s *Service) SweepExpired(ctx context.Context) (int, int, error) {
	venuesRemoved, err := s.venues.Sweep(ctx, s.venueTTL)
	if err != nil {
		return 0, 0, err
	}

	vibesRemoved, err := s.vibes.Sweep(ctx, s.vibeTTL)
	if err != nil {
		return venuesRemoved, 0, err
	}

	if venuesRemoved > 0 || vibesRemoved > 0 {
		s.logger.Info().
			Int("venues_removed", venuesRemoved).
			Int("vibes_removed", vibesRemoved).
			Msg("Swept expired cache records")
	}

	return venuesRemoved, vibesRemoved, nil
}

// expired reports whether a record stamped at cachedAt has outlived ttl.
func (s *Service) expired(cachedAt time.Time, ttl time.Duration) bool {
	return time.Since(cachedAt) > ttl
}

// Ensure Service implements CacheService interface
var _ interfaces.CacheService = (*Service)(nil)
