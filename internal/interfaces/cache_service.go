package interfaces

import (
	"context"

	"github.com/ternarybob/vibecheck/internal/models"
)

// GenerateFunc produces a fresh vibe analysis for a venue. It may fail; the
// cache service substitutes the deterministic fallback.
type GenerateFunc func(ctx context.Context, venue *models.Venue) (*models.VibeProfile, error)

// CacheService layers the TTL policy over the typed stores. Reads degrade to
// a miss on storage errors; expired records are treated as absent.
type CacheService interface {
	// GetVenue returns the cached venue when present and within TTL.
	GetVenue(ctx context.Context, venueID string) (*models.Venue, bool)

	// SaveVenue caches the venue detail record, stamping the current time.
	SaveVenue(ctx context.Context, venue *models.Venue) error

	// GetAnalysis returns the cached vibe analysis when present and within TTL.
	GetAnalysis(ctx context.Context, venueID string) (*models.VibeProfile, bool)

	// SaveAnalysis caches the vibe analysis record.
	SaveAnalysis(ctx context.Context, analysis *models.VibeProfile) error

	// GetOrCreateAnalysis returns a usable vibe analysis for the venue:
	// cache hit wins, otherwise generate is invoked and the result cached.
	// Generation failure yields the deterministic fallback profile, which is
	// not cached. This method never fails.
	GetOrCreateAnalysis(ctx context.Context, venue *models.Venue, generate GenerateFunc) *models.VibeProfile

	// SweepExpired removes expired records from both namespaces and returns
	// the removed counts.
	SweepExpired(ctx context.Context) (venues int, vibes int, err error)
}
