package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/services/vibe"
)

const maxRestaurantResults = 5

// RestaurantHandler serves vibe-driven restaurant recommendations with
// optional reservation availability filtering.
type RestaurantHandler struct {
	config       *common.Config
	listing      interfaces.ListingService
	reservations interfaces.ReservationService
	logger       arbor.ILogger
}

func NewRestaurantHandler(
	config *common.Config,
	listingService interfaces.ListingService,
	reservations interfaces.ReservationService,
	logger arbor.ILogger,
) *RestaurantHandler {
	return &RestaurantHandler{
		config:       config,
		listing:      listingService,
		reservations: reservations,
		logger:       logger,
	}
}

type restaurantRequest struct {
	Vibe            string `json:"vibe" validate:"required"`
	Location        string `json:"location"`
	Radius          int    `json:"radius"`
	Price           string `json:"price"`
	Cuisine         string `json:"cuisine"`
	ReservationDate string `json:"reservationDate"`
	ReservationTime string `json:"reservationTime"`
	PartySize       int    `json:"partySize"`
}

type restaurantResult struct {
	Name         string                   `json:"name"`
	Rating       float64                  `json:"rating"`
	Price        string                   `json:"price"`
	Address      string                   `json:"address"`
	Phone        string                   `json:"phone"`
	Categories   []string                 `json:"categories"`
	ImageURL     string                   `json:"image_url,omitempty"`
	URL          string                   `json:"url,omitempty"`
	Availability *interfaces.Availability `json:"availability,omitempty"`
}

// RecommendationsHandler handles POST /api/restaurants/recommendations
func (h *RestaurantHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req restaurantRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}
	if req.PartySize <= 0 {
		req.PartySize = 2
	}

	term := req.Cuisine
	if term == "" {
		term = "restaurants"
	}

	venues, err := h.listing.Search(r.Context(), &interfaces.SearchParams{
		Term:       term,
		Location:   req.Location,
		Radius:     req.Radius,
		Price:      req.Price,
		Attributes: vibe.AttributesString(req.Vibe),
		SortBy:     "rating",
		Limit:      20,
		Type:       "restaurant",
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("vibe", req.Vibe).Msg("Restaurant search failed")
		WriteError(w, http.StatusBadGateway, "Failed to fetch restaurant recommendations")
		return
	}

	results := make([]restaurantResult, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		results = append(results, restaurantResult{
			Name:       v.Name,
			Rating:     v.Rating,
			Price:      v.Price,
			Address:    v.Address,
			Phone:      v.Phone,
			Categories: []string(v.Categories),
			ImageURL:   v.ImageURL,
			URL:        v.URL,
		})
	}

	if req.ReservationDate == "" || req.ReservationTime == "" {
		if len(results) > maxRestaurantResults {
			results = results[:maxRestaurantResults]
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":     fmt.Sprintf("Found restaurants matching %s vibe in %s", req.Vibe, req.Location),
			"restaurants": results,
		})
		return
	}

	checked := h.checkReservations(r, &req, results)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     fmt.Sprintf("Found restaurants matching %s vibe in %s with reservation details", req.Vibe, req.Location),
		"date":        req.ReservationDate,
		"time":        req.ReservationTime,
		"partySize":   req.PartySize,
		"restaurants": checked,
	})
}

// checkReservations probes availability for up to the configured number
// of restaurants and orders them availability-first, then rating-desc.
func (h *RestaurantHandler) checkReservations(r *http.Request, req *restaurantRequest, results []restaurantResult) []restaurantResult {
	maxChecks := h.config.Reservations.MaxChecks
	if maxChecks <= 0 || maxChecks > len(results) {
		maxChecks = len(results)
	}
	if maxChecks > maxRestaurantResults {
		maxChecks = maxRestaurantResults
	}

	checked := make([]restaurantResult, 0, maxChecks)
	for i := 0; i < maxChecks; i++ {
		result := results[i]
		result.Availability = h.reservations.CheckAvailability(r.Context(), &interfaces.ReservationRequest{
			VenueName: result.Name,
			PartySize: req.PartySize,
			Date:      req.ReservationDate,
			Time:      req.ReservationTime,
		})
		checked = append(checked, result)
	}

	sort.SliceStable(checked, func(i, j int) bool {
		a, b := checked[i], checked[j]
		if a.Availability.Available != b.Availability.Available {
			return a.Availability.Available
		}
		return a.Rating > b.Rating
	})

	return checked
}
