package interfaces

import (
	"context"

	"github.com/ternarybob/vibecheck/internal/models"
)

// SearchParams describes a venue listing search.
type SearchParams struct {
	Term       string `json:"term,omitempty"`
	Location   string `json:"location"`
	Categories string `json:"categories,omitempty"` // comma-separated provider category aliases
	Price      string `json:"price,omitempty"`      // e.g. "1,2,3" price tiers
	Attributes string `json:"attributes,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Radius     int    `json:"radius,omitempty"` // meters
	Limit      int    `json:"limit,omitempty"`
	Type       string `json:"type,omitempty"` // "restaurant" or "bar", used for post-filtering
}

// ListingService defines venue search and detail operations against the
// external listing provider.
type ListingService interface {
	// Search returns venues matching the params, normalized into models.Venue.
	Search(ctx context.Context, params *SearchParams) ([]models.Venue, error)

	// GetVenue fetches basic detail for a single venue.
	GetVenue(ctx context.Context, venueID string) (*models.Venue, error)

	// GetEnhancedVenue fetches detail plus reviews merged into one record,
	// the shape the vibe analyzer consumes.
	GetEnhancedVenue(ctx context.Context, venueID string) (*models.Venue, error)
}
