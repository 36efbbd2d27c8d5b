package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"github.com/ternarybob/vibecheck/internal/services/recommend"
	"github.com/ternarybob/vibecheck/internal/services/vibe"
)

// mockListingService implements interfaces.ListingService for testing
type mockListingService struct {
	searchFunc   func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error)
	getVenueFunc func(ctx context.Context, venueID string) (*models.Venue, error)
}

func (m *mockListingService) Search(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockListingService) GetVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	return m.GetEnhancedVenue(ctx, venueID)
}

func (m *mockListingService) GetEnhancedVenue(ctx context.Context, venueID string) (*models.Venue, error) {
	if m.getVenueFunc != nil {
		return m.getVenueFunc(ctx, venueID)
	}
	return nil, errors.New("venue not found")
}

// mockCacheService is a pass-through cache that never hits
type mockCacheService struct{}

func (m *mockCacheService) GetVenue(ctx context.Context, venueID string) (*models.Venue, bool) {
	return nil, false
}
func (m *mockCacheService) SaveVenue(ctx context.Context, venue *models.Venue) error { return nil }
func (m *mockCacheService) GetAnalysis(ctx context.Context, venueID string) (*models.VibeProfile, bool) {
	return nil, false
}
func (m *mockCacheService) SaveAnalysis(ctx context.Context, analysis *models.VibeProfile) error {
	return nil
}
func (m *mockCacheService) GetOrCreateAnalysis(ctx context.Context, venue *models.Venue, generate interfaces.GenerateFunc) *models.VibeProfile {
	return vibe.Synthesize(venue)
}
func (m *mockCacheService) SweepExpired(ctx context.Context) (int, int, error) { return 0, 0, nil }

// mockAnalyzer always synthesizes a fallback profile
type mockAnalyzer struct{}

func (m *mockAnalyzer) Analyze(ctx context.Context, venue *models.Venue) (*models.VibeProfile, error) {
	return nil, errors.New("not used")
}
func (m *mockAnalyzer) Profile(ctx context.Context, venue *models.Venue) *models.VibeProfile {
	return vibe.Synthesize(venue)
}

// mockMatcher echoes candidates in order
type mockMatcher struct{}

func (m *mockMatcher) Match(ctx context.Context, description string, candidates []models.VenueProfile) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(candidates))
	for i, c := range candidates {
		results = append(results, models.MatchResult{VenueID: c.Venue.ID, MatchScore: 100 - i, Rank: i + 1})
	}
	return results
}

func newTestVenueHandler(listingService *mockListingService) *VenueHandler {
	logger := arbor.NewLogger()
	cache := &mockCacheService{}
	analyzer := &mockAnalyzer{}
	recommender := recommend.NewService(
		common.NewDefaultConfig(),
		listingService,
		cache,
		analyzer,
		&mockMatcher{},
		logger,
	)
	return NewVenueHandler(listingService, cache, analyzer, recommender, logger)
}

func searchPool() []models.Venue {
	return []models.Venue{
		{ID: "v1", Name: "First Spot", Rating: 4.5, Categories: models.NewCategoryList("Italian")},
		{ID: "v2", Name: "Second Spot", Rating: 4.2, Categories: models.NewCategoryList("Mexican")},
	}
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRecommendationHandler_Success(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return searchPool(), nil
		},
	})

	rec := postJSON(handler.RecommendationHandler, "/api/venues/recommendation",
		`{"vibeDescription": "cozy italian"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success        bool                   `json:"success"`
		Recommendation *models.Recommendation `json:"recommendation"`
		RemainingCount int                    `json:"remainingCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Recommendation.ID != "v1" {
		t.Errorf("expected v1, got %s", resp.Recommendation.ID)
	}
	if resp.RemainingCount != 1 {
		t.Errorf("expected remainingCount 1, got %d", resp.RemainingCount)
	}
	if resp.Recommendation.Vibe.Primary == "" {
		t.Error("expected a vibe primary")
	}
}

func TestRecommendationHandler_MissingVibeDescription(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{})

	rec := postJSON(handler.RecommendationHandler, "/api/venues/recommendation", `{"type": "bar"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendationHandler_InvalidState(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return searchPool(), nil
		},
	})

	rec := postJSON(handler.RecommendationHandler, "/api/venues/recommendation",
		`{"vibeDescription": "anything", "current": "v1"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendationHandler_Exhausted(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return searchPool(), nil
		},
	})

	rec := postJSON(handler.RecommendationHandler, "/api/venues/recommendation",
		`{"vibeDescription": "anything", "seen": ["v1", "v2"]}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestFinalRecommendationHandler_AlwaysSucceeds(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return nil, errors.New("upstream down")
		},
	})

	rec := postJSON(handler.FinalRecommendationHandler, "/api/venues/final-recommendation",
		`{"liked": [], "rejected": ["v1"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recommendation *models.Recommendation `json:"recommendation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recommendation == nil {
		t.Fatal("expected a recommendation")
	}
	if len(resp.Recommendation.Why) != 3 {
		t.Errorf("expected 3 rationale entries, got %d", len(resp.Recommendation.Why))
	}
}

func TestFinalRecommendationHandler_LikedWins(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		getVenueFunc: func(ctx context.Context, venueID string) (*models.Venue, error) {
			return &models.Venue{ID: venueID, Name: "The Winner", Categories: models.NewCategoryList("French")}, nil
		},
	})

	rec := postJSON(handler.FinalRecommendationHandler, "/api/venues/final-recommendation",
		`{"liked": ["v7"]}`)

	var resp struct {
		Recommendation *models.Recommendation `json:"recommendation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recommendation.ID != "v7" {
		t.Errorf("expected v7, got %s", resp.Recommendation.ID)
	}
}

func TestSearchHandler_Success(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			if params.Categories != "cocktailbars" {
				t.Errorf("expected cocktailbars categories, got %s", params.Categories)
			}
			return searchPool(), nil
		},
	})

	req := httptest.NewRequest("GET", "/api/venues/search?type=bar&subtype=cocktail&location=NYC", nil)
	rec := httptest.NewRecorder()
	handler.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}

func TestGetVenueHandler_AttachesVibeAnalysis(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		getVenueFunc: func(ctx context.Context, venueID string) (*models.Venue, error) {
			return &models.Venue{ID: venueID, Name: "The Spot", Categories: models.NewCategoryList("Coffee & Tea")}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/venues/v1", nil)
	rec := httptest.NewRecorder()
	handler.GetVenueHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Venue struct {
			ID           string              `json:"id"`
			VibeAnalysis *models.VibeProfile `json:"vibeAnalysis"`
		} `json:"venue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Venue.ID != "v1" {
		t.Errorf("expected v1, got %s", resp.Venue.ID)
	}
	if resp.Venue.VibeAnalysis == nil || resp.Venue.VibeAnalysis.PrimaryVibe == "" {
		t.Error("expected an attached vibe analysis")
	}
}

func TestMatchHandler_ReturnsRankedMatches(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return searchPool(), nil
		},
	})

	rec := postJSON(handler.MatchHandler, "/api/venues/match", `{"vibeDescription": "lively"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Matches []models.MatchResult `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Matches))
	}
	if resp.Matches[0].Rank != 1 {
		t.Errorf("expected rank 1 first, got %d", resp.Matches[0].Rank)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestVenueHandler(&mockListingService{})

	req := httptest.NewRequest("GET", "/api/venues/match", nil)
	rec := httptest.NewRecorder()
	handler.MatchHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
