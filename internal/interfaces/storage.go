package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/vibecheck/internal/models"
)

// ErrNotCached is returned when no record exists for a key. Expired records
// are handled by the cache service layer, not here.
var ErrNotCached = errors.New("record not cached")

// VenueRecord wraps a venue with its cache timestamp.
type VenueRecord struct {
	ID       string       `json:"id" badgerhold:"key"`
	Venue    models.Venue `json:"venue"`
	CachedAt time.Time    `json:"cached_at"`
}

// VibeRecord wraps a vibe analysis with its cache timestamp.
type VibeRecord struct {
	VenueID  string             `json:"venue_id" badgerhold:"key"`
	Analysis models.VibeProfile `json:"analysis"`
	CachedAt time.Time          `json:"cached_at"`
}

// VenueStorage persists raw venue detail records.
type VenueStorage interface {
	// Put overwrites any existing record for the venue, stamping the
	// current time. Last-write-wins; no merge semantics.
	Put(ctx context.Context, venue *models.Venue) error

	// Get returns the stored record or ErrNotCached. Expiry is not
	// evaluated here; callers apply the TTL policy.
	Get(ctx context.Context, venueID string) (*VenueRecord, error)

	// Sweep deletes every record older than maxAge and returns the count
	// of removed records.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// VibeStorage persists vibe analysis records.
type VibeStorage interface {
	Put(ctx context.Context, analysis *models.VibeProfile) error
	Get(ctx context.Context, venueID string) (*VibeRecord, error)
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// StorageManager aggregates the typed stores over one database connection.
type StorageManager interface {
	VenueStorage() VenueStorage
	VibeStorage() VibeStorage
	Close() error
}
