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

// VenueStorage implements the VenueStorage interface for Badger
type VenueStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewVenueStorage creates a new VenueStorage instance
func NewVenueStorage(db *BadgerDB, logger arbor.ILogger) interfaces.VenueStorage {
	return &VenueStorage{
		db:     db,
		logger: logger,
	}
}

// Put overwrites any existing record for the venue. Last-write-wins.
func (s *VenueStorage) Put(ctx context.Context, venue *models.Venue) error {
	if venue.ID == "" {
		return fmt.Errorf("venue ID is required")
	}

	record := &interfaces.VenueRecord{
		ID:       venue.ID,
		Venue:    *venue,
		CachedAt: time.Now(),
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save venue record: %w", err)
	}
	return nil
}

// Get returns the stored record or ErrNotCached. TTL is not evaluated here.
func (s *VenueStorage) Get(ctx context.Context, venueID string) (*interfaces.VenueRecord, error) {
	var record interfaces.VenueRecord
	if err := s.db.Store().Get(venueID, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotCached
		}
		return nil, fmt.Errorf("failed to get venue record: %w", err)
	}
	return &record, nil
}

// Sweep deletes every record older than maxAge and returns the removed count.
func (s *VenueStorage) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	query := badgerhold.Where("CachedAt").Lt(cutoff)

	count, err := s.db.Store().Count(&interfaces.VenueRecord{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired venue records: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	if err := s.db.Store().DeleteMatching(&interfaces.VenueRecord{}, query); err != nil {
		return 0, fmt.Errorf("failed to delete expired venue records: %w", err)
	}

	s.logger.Debug().Int("count", int(count)).Msg("Swept expired venue records")
	return int(count), nil
}
