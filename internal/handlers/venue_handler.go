package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"github.com/ternarybob/vibecheck/internal/services/listing"
	"github.com/ternarybob/vibecheck/internal/services/recommend"
)

// VenueHandler serves the venue search, detail, and swipe-flow endpoints.
type VenueHandler struct {
	listing     interfaces.ListingService
	cache       interfaces.CacheService
	analyzer    interfaces.VibeAnalyzer
	recommender *recommend.Service
	logger      arbor.ILogger
}

func NewVenueHandler(
	listingService interfaces.ListingService,
	cache interfaces.CacheService,
	analyzer interfaces.VibeAnalyzer,
	recommender *recommend.Service,
	logger arbor.ILogger,
) *VenueHandler {
	return &VenueHandler{
		listing:     listingService,
		cache:       cache,
		analyzer:    analyzer,
		recommender: recommender,
		logger:      logger,
	}
}

// venueSummary is the trimmed venue shape returned by search.
type venueSummary struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Rating      float64            `json:"rating"`
	Price       string             `json:"price"`
	Categories  []string           `json:"categories"`
	ImageURL    string             `json:"image_url,omitempty"`
	Location    string             `json:"location"`
	URL         string             `json:"url,omitempty"`
	Coordinates models.Coordinates `json:"coordinates"`
}

// SearchHandler handles GET /api/venues/search
func (h *VenueHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query()
	venueType := query.Get("type")
	if venueType == "" {
		venueType = "restaurant"
	}

	limit := 10
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		limit = v
	}

	venues, err := h.listing.Search(r.Context(), &interfaces.SearchParams{
		Location:   query.Get("location"),
		Categories: listing.CategoriesForType(venueType, query.Get("subtype")),
		Price:      query.Get("price"),
		Term:       query.Get("term"),
		Limit:      limit,
		Type:       venueType,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Venue search failed")
		WriteError(w, http.StatusBadGateway, "Failed to search venues")
		return
	}

	summaries := make([]venueSummary, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		summaries = append(summaries, venueSummary{
			ID:          v.ID,
			Name:        v.Name,
			Rating:      v.Rating,
			Price:       v.Price,
			Categories:  []string(v.Categories),
			ImageURL:    v.ImageURL,
			Location:    v.Address,
			URL:         v.URL,
			Coordinates: v.Coordinates,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(summaries),
		"venues":  summaries,
	})
}

// GetVenueHandler handles GET /api/venues/{id}, returning venue detail
// with its vibe analysis attached.
func (h *VenueHandler) GetVenueHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	venueID := strings.TrimPrefix(r.URL.Path, "/api/venues/")
	if venueID == "" || strings.Contains(venueID, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid venue ID")
		return
	}

	venue, ok := h.cache.GetVenue(r.Context(), venueID)
	if !ok {
		fetched, err := h.listing.GetEnhancedVenue(r.Context(), venueID)
		if err != nil {
			h.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to fetch venue")
			WriteError(w, http.StatusBadGateway, "Failed to get venue information")
			return
		}
		if err := h.cache.SaveVenue(r.Context(), fetched); err != nil {
			h.logger.Warn().Err(err).Str("venue_id", venueID).Msg("Failed to cache venue")
		}
		venue = fetched
	}

	profile := h.analyzer.Profile(r.Context(), venue)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"venue": struct {
			*models.Venue
			VibeAnalysis *models.VibeProfile `json:"vibeAnalysis"`
		}{venue, profile},
	})
}

// MatchHandler handles POST /api/venues/match
func (h *VenueHandler) MatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req recommend.MatchRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	matches := h.recommender.Match(r.Context(), &req)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": matches,
	})
}

// RecommendationHandler handles POST /api/venues/recommendation
func (h *VenueHandler) RecommendationHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req recommend.RecommendationRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	recommendation, remaining, err := h.recommender.Recommend(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidState):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, recommend.ErrPoolExhausted):
			WriteError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error().Err(err).Msg("Recommendation failed")
			WriteError(w, http.StatusInternalServerError, "Failed to get recommendation")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": recommendation,
		"remainingCount": remaining,
	})
}

// FinalRecommendationHandler handles POST /api/venues/final-recommendation
func (h *VenueHandler) FinalRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req recommend.FinalRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	recommendation := h.recommender.Final(r.Context(), &req)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": recommendation,
	})
}
