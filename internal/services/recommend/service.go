package recommend

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"github.com/ternarybob/vibecheck/internal/services/listing"
)

// RecommendationRequest drives one step of the swipe flow.
type RecommendationRequest struct {
	VibeDescription string   `json:"vibeDescription" validate:"required"`
	Type            string   `json:"type"`
	Subtype         string   `json:"subtype"`
	Location        string   `json:"location"`
	Seen            []string `json:"seen"`
	Liked           []string `json:"liked"`
	Rejected        []string `json:"rejected"`
	Current         string   `json:"current,omitempty"`
}

// SessionState reconstructs the caller-held session from the request.
func (r *RecommendationRequest) SessionState() *models.SessionState {
	return &models.SessionState{
		Seen:     r.Seen,
		Liked:    r.Liked,
		Rejected: r.Rejected,
		Current:  r.Current,
	}
}

// MatchRequest asks for a ranked comparison of venues against a vibe.
type MatchRequest struct {
	VibeDescription string   `json:"vibeDescription" validate:"required"`
	VenueIDs        []string `json:"venueIds"`
	Type            string   `json:"type"`
	Subtype         string   `json:"subtype"`
	Location        string   `json:"location"`
}

// FinalRequest resolves the session into a single closing recommendation.
type FinalRequest struct {
	VibeDescription string   `json:"vibeDescription"`
	Type            string   `json:"type"`
	Subtype         string   `json:"subtype"`
	Location        string   `json:"location"`
	Liked           []string `json:"liked"`
	Rejected        []string `json:"rejected"`
}

// Rationale lists attached to final recommendations. The shapes are fixed;
// only the liked-venue path carries the preferred-choice wording.
var (
	finalReasons = []string{
		"This venue was your preferred choice",
		"It best matches your described vibe preferences",
		"Based on your selections, this is the perfect spot for you",
	}
	bestEffortReasons = []string{
		"Based on your preferences, we've selected this venue",
		"It offers a good balance of atmosphere and quality",
		"This is our best match for your criteria",
	}
)

// Service orchestrates the recommendation flow: search, session
// selection, enrichment, vibe analysis, and matching. Every upstream
// failure degrades to a fallback; only caller-input violations surface
// as errors.
type Service struct {
	config   *common.Config
	listing  interfaces.ListingService
	cache    interfaces.CacheService
	analyzer interfaces.VibeAnalyzer
	matcher  interfaces.VibeMatcher
	logger   arbor.ILogger
}

// NewService creates the recommendation orchestrator.
func NewService(
	config *common.Config,
	listingService interfaces.ListingService,
	cache interfaces.CacheService,
	analyzer interfaces.VibeAnalyzer,
	matcher interfaces.VibeMatcher,
	logger arbor.ILogger,
) *Service {
	return &Service{
		config:   config,
		listing:  listingService,
		cache:    cache,
		analyzer: analyzer,
		matcher:  matcher,
		logger:   logger,
	}
}

// Recommend returns the next venue candidate for the session plus the
// count of remaining unseen candidates. It returns ErrInvalidState when
// the session precondition is violated and ErrPoolExhausted when the
// pool has no unseen venues left.
func (s *Service) Recommend(ctx context.Context, req *RecommendationRequest) (*models.Recommendation, int, error) {
	state := req.SessionState()
	if state.Current != "" && !state.HasDisposition(state.Current) {
		return nil, 0, ErrInvalidState
	}

	pool := s.searchPool(ctx, req.Type, req.Subtype, req.Location, 20)

	candidate, remaining, err := NextCandidate(pool, state)
	if err != nil {
		return nil, 0, err
	}

	venue := s.enhancedOrBasic(ctx, candidate)
	profile := s.analyzer.Profile(ctx, venue)

	s.logger.Info().
		Str("venue_id", venue.ID).
		Str("provenance", string(profile.Provenance)).
		Int("remaining", remaining).
		Msg("Selected next recommendation candidate")

	return models.NewRecommendation(venue, profile), remaining, nil
}

// Match ranks venues against the vibe description. Venues come from the
// request's explicit IDs when given, otherwise from a small search.
func (s *Service) Match(ctx context.Context, req *MatchRequest) []models.MatchResult {
	var candidates []models.VenueProfile

	if len(req.VenueIDs) > 0 {
		for _, id := range req.VenueIDs {
			candidates = append(candidates, s.profileByID(ctx, id))
		}
	} else {
		pool := s.searchPool(ctx, req.Type, req.Subtype, req.Location, 5)
		for i := range pool {
			venue := s.enhancedOrBasic(ctx, &pool[i])
			candidates = append(candidates, models.VenueProfile{
				Venue:   venue,
				Profile: s.analyzer.Profile(ctx, venue),
			})
		}
	}

	return s.matcher.Match(ctx, req.VibeDescription, candidates)
}

// Final resolves the session into one closing recommendation. The first
// liked venue wins; with no likes it degrades to a fresh best-effort pick
// that avoids rejected venues. It always produces a recommendation.
func (s *Service) Final(ctx context.Context, req *FinalRequest) *models.Recommendation {
	if len(req.Liked) == 0 {
		return s.bestEffortFinal(ctx, req)
	}

	winnerID := req.Liked[0]
	venue, err := s.listing.GetEnhancedVenue(ctx, winnerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("venue_id", winnerID).Msg("Failed to fetch liked venue, using placeholder")
		venue = placeholderVenue(winnerID)
	}

	profile := s.analyzer.Profile(ctx, venue)

	recommendation := models.NewRecommendation(venue, profile)
	recommendation.Why = finalReasons
	return recommendation
}

// bestEffortFinal picks a fresh venue when the session has no likes,
// skipping anything the user rejected.
func (s *Service) bestEffortFinal(ctx context.Context, req *FinalRequest) *models.Recommendation {
	pool := s.searchPool(ctx, req.Type, req.Subtype, req.Location, 5)

	rejected := make(map[string]bool, len(req.Rejected))
	for _, id := range req.Rejected {
		rejected[id] = true
	}

	var pick *models.Venue
	for i := range pool {
		if !rejected[pool[i].ID] {
			pick = &pool[i]
			break
		}
	}
	if pick == nil {
		// Everything rejected; synthetic pool guarantees a pick.
		synthetic := listing.SyntheticPool(req.Type)
		pick = &synthetic[0]
	}

	venue := s.enhancedOrBasic(ctx, pick)
	profile := s.analyzer.Profile(ctx, venue)

	recommendation := models.NewRecommendation(venue, profile)
	recommendation.Why = bestEffortReasons
	return recommendation
}

// searchPool searches the listing provider, substituting the synthetic
// pool when the upstream is unavailable.
func (s *Service) searchPool(ctx context.Context, venueType, subtype, location string, limit int) []models.Venue {
	pool, err := s.listing.Search(ctx, &interfaces.SearchParams{
		Location:   location,
		Categories: listing.CategoriesForType(venueType, subtype),
		Limit:      limit,
		Type:       venueType,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("type", venueType).Msg("Venue search failed, using synthetic pool")
		return listing.SyntheticPool(venueType)
	}
	return pool
}

// enhancedOrBasic returns the cached or freshly enhanced venue record,
// degrading to the basic record already in hand when enrichment fails.
func (s *Service) enhancedOrBasic(ctx context.Context, basic *models.Venue) *models.Venue {
	if cached, ok := s.cache.GetVenue(ctx, basic.ID); ok {
		return cached
	}

	enhanced, err := s.listing.GetEnhancedVenue(ctx, basic.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("venue_id", basic.ID).Msg("Failed to enhance venue, using basic record")
		return basic
	}

	if err := s.cache.SaveVenue(ctx, enhanced); err != nil {
		s.logger.Warn().Err(err).Str("venue_id", enhanced.ID).Msg("Failed to cache venue")
	}
	return enhanced
}

// profileByID composes a venue and profile for an explicit venue ID,
// substituting a minimal record when the venue cannot be fetched.
func (s *Service) profileByID(ctx context.Context, venueID string) models.VenueProfile {
	venue := &models.Venue{ID: venueID}
	if cached, ok := s.cache.GetVenue(ctx, venueID); ok {
		venue = cached
	} else if fetched, err := s.listing.GetEnhancedVenue(ctx, venueID); err == nil {
		if err := s.cache.SaveVenue(ctx, fetched); err != nil {
			s.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to cache venue")
		}
		venue = fetched
	} else {
		s.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to fetch venue for matching, using minimal record")
		venue.Name = "Venue " + venueID
		venue.Categories = models.NewCategoryList(models.DefaultCategory)
	}

	return models.VenueProfile{
		Venue:   venue,
		Profile: s.analyzer.Profile(ctx, venue),
	}
}

// placeholderVenue is the minimal record substituted when a liked
// venue's data cannot be retrieved during final resolution.
func placeholderVenue(venueID string) *models.Venue {
	return &models.Venue{
		ID:          venueID,
		Name:        "Your Selected Venue",
		ImageURL:    "https://via.placeholder.com/800x400?text=Your+Selection",
		Rating:      4.5,
		Price:       "$",
		Categories:  models.NewCategoryList(models.DefaultCategory),
		Address:     "New York, NY",
		URL:         "https://www.yelp.com",
		Coordinates: models.Coordinates{Latitude: 40.7128, Longitude: -74.0060},
	}
}
