package interfaces

import (
	"context"

	"github.com/ternarybob/vibecheck/internal/models"
)

// VibeAnalyzer produces a vibe profile for a venue. Analyze may fail (the
// caller substitutes the deterministic fallback); Profile never fails.
type VibeAnalyzer interface {
	// Analyze generates a vibe profile via the LLM provider.
	Analyze(ctx context.Context, venue *models.Venue) (*models.VibeProfile, error)

	// Profile returns a usable vibe profile for the venue, reading through
	// the cache and falling back to deterministic synthesis on any failure.
	// It never returns an error.
	Profile(ctx context.Context, venue *models.Venue) *models.VibeProfile
}

// VibeMatcher ranks candidate venues against a free-form vibe description.
type VibeMatcher interface {
	// Match returns results ordered by rank, with rank values dense 1..N.
	// It degrades to a deterministic ranking when the LLM is unavailable
	// and therefore never returns an error.
	Match(ctx context.Context, description string, candidates []models.VenueProfile) []models.MatchResult
}
