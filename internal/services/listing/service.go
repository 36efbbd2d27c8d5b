package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"golang.org/x/time/rate"
)

// Service queries the venue listing provider over HTTP.
type Service struct {
	config  *common.ListingConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  arbor.ILogger
}

var _ interfaces.ListingService = (*Service)(nil)

// NewService creates a listing service. The rate limiter enforces the
// configured minimum interval between provider requests.
func NewService(config *common.ListingConfig, logger arbor.ILogger) *Service {
	interval := config.RateLimit
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Service{
		config: config,
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Search queries the provider for venues matching the params. Results are
// post-filtered by category title so a bar search does not return
// restaurants that merely serve drinks, and vice versa.
func (s *Service) Search(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
	query := url.Values{}

	term := strings.TrimSpace(params.Term)
	if isBarSearch(params.Categories) && !strings.Contains(strings.ToLower(term), "bar") {
		term = strings.TrimSpace(term + " bar")
	} else if isRestaurantSearch(params.Categories, params.Type) && !strings.Contains(strings.ToLower(term), "restaurant") {
		term = strings.TrimSpace(term + " restaurant")
	}
	if term != "" {
		query.Set("term", term)
	}

	location := params.Location
	if location == "" {
		location = s.config.DefaultLocation
	}
	query.Set("location", location)

	if params.Categories != "" {
		query.Set("categories", params.Categories)
	}
	if params.Price != "" {
		query.Set("price", params.Price)
	}
	if params.Attributes != "" {
		query.Set("attributes", params.Attributes)
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}

	limit := params.Limit
	if limit <= 0 || limit > s.config.MaxResults {
		limit = s.config.MaxResults
	}
	query.Set("limit", strconv.Itoa(limit))

	radius := params.Radius
	if radius <= 0 {
		radius = s.config.DefaultRadius
	}
	query.Set("radius", strconv.Itoa(radius))

	var apiResp searchResponse
	if err := s.get(ctx, "/businesses/search?"+query.Encode(), &apiResp); err != nil {
		return nil, err
	}

	venues := make([]models.Venue, 0, len(apiResp.Businesses))
	for i := range apiResp.Businesses {
		raw, _ := json.Marshal(&apiResp.Businesses[i])
		venues = append(venues, apiResp.Businesses[i].toVenue(raw))
	}

	filtered := s.filterByCategory(venues, params)

	s.logger.Info().
		Str("term", term).
		Str("location", location).
		Str("categories", params.Categories).
		Int("results", len(venues)).
		Int("after_filter", len(filtered)).
		Msg("Venue search completed")

	return filtered, nil
}

// GetVenue fetches basic detail for a single venue.
func (s *Service) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	if venueID == "" {
		return nil, fmt.Errorf("venue ID is required")
	}

	var b business
	if err := s.get(ctx, "/businesses/"+url.PathEscape(venueID), &b); err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(&b)
	venue := b.toVenue(raw)
	return &venue, nil
}

// GetEnhancedVenue fetches venue detail plus its reviews merged into one
// record. Review fetch failures degrade to a venue without reviews.
func (s *Service) GetEnhancedVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	venue, err := s.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.getReviews(ctx, venueID)
	if err != nil {
		s.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to fetch reviews, continuing without them")
		return venue, nil
	}

	venue.Reviews = reviews
	return venue, nil
}

func (s *Service) getReviews(ctx context.Context, venueID string) ([]models.Review, error) {
	var apiResp reviewsResponse
	path := "/businesses/" + url.PathEscape(venueID) + "/reviews?limit=50"
	if err := s.get(ctx, path, &apiResp); err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(apiResp.Reviews))
	for _, r := range apiResp.Reviews {
		reviews = append(reviews, models.Review{Text: r.Text, Rating: r.Rating})
	}
	return reviews, nil
}

// get performs a rate-limited authenticated GET against the provider and
// decodes the JSON response into out.
func (s *Service) get(ctx context.Context, path string, out interface{}) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("listing API key not configured (set VIBECHECK_LISTING_API_KEY or listing.api_key)")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	fullURL := strings.TrimSuffix(s.config.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().Str("path", path).Msg("Calling listing provider API")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call listing API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("listing API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}

// filterByCategory drops venues whose category titles do not match the
// search type. If the filter would empty the result set the originals are
// kept unfiltered.
func (s *Service) filterByCategory(venues []models.Venue, params *interfaces.SearchParams) []models.Venue {
	var terms []string
	switch {
	case isBarSearch(params.Categories):
		terms = barCategoryTerms
	case isRestaurantSearch(params.Categories, params.Type):
		terms = restaurantCategoryTerms
	default:
		return venues
	}

	filtered := make([]models.Venue, 0, len(venues))
	for _, venue := range venues {
		if venue.Categories.ContainsAny(terms...) {
			filtered = append(filtered, venue)
		}
	}

	if len(filtered) == 0 {
		return venues
	}
	return filtered
}
