package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// VibeStorage implements the VibeStorage interface for Badger
type VibeStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewVibeStorage creates a new VibeStorage instance
func NewVibeStorage(db *BadgerDB, logger arbor.ILogger) interfaces.VibeStorage {
	return &VibeStorage{
		db:     db,
		logger: logger,
	}
}

// Put overwrites any existing analysis for the venue. Last-write-wins.
func (s *VibeStorage) Put(ctx context.Context, analysis *models.VibeProfile) error {
	if analysis.VenueID == "" {
		return fmt.Errorf("venue ID is required")
	}

	record := &interfaces.VibeRecord{
		VenueID:  analysis.VenueID,
		Analysis: *analysis,
		CachedAt: time.Now(),
	}

	if err := s.db.Store().Upsert(record.VenueID, record); err != nil {
		return fmt.Errorf("failed to save vibe record: %w", err)
	}
	return nil
}

// Get returns the stored record or ErrNotCached. TTL is not evaluated here.
func (s *VibeStorage) Get(ctx context.Context, venueID string) (*interfaces.VibeRecord, error) {
	var record interfaces.VibeRecord
	if err := s.db.Store().Get(venueID, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotCached
		}
		return nil, fmt.Errorf("failed to get vibe record: %w", err)
	}
	return &record, nil
}

// Sweep deletes every record older than maxAge and returns the removed count.
func (s *VibeStorage) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	query := badgerhold.Where("CachedAt").Lt(cutoff)

	count, err := s.db.Store().Count(&interfaces.VibeRecord{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired vibe records: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	if err := s.db.Store().DeleteMatching(&interfaces.VibeRecord{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete expired vibe records: %w", err)
	}

	s.logger.Debug().Int("count", int(count)).Msg("Swept expired vibe records")
	return int(count), nil
}
