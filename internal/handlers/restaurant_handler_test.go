package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
)

// mockReservationService marks configured venues as available
type mockReservationService struct {
	available map[string]bool
}

func (m *mockReservationService) CheckAvailability(ctx context.Context, req *interfaces.ReservationRequest) *interfaces.Availability {
	if m.available[req.VenueName] {
		return &interfaces.Availability{Platform: "OpenTable", Available: true, Times: []string{req.Time}}
	}
	return &interfaces.Availability{Available: false}
}

func newTestRestaurantHandler(listingService *mockListingService, reservations *mockReservationService) *RestaurantHandler {
	return NewRestaurantHandler(common.NewDefaultConfig(), listingService, reservations, arbor.NewLogger())
}

func restaurantPool() []models.Venue {
	return []models.Venue{
		{ID: "r1", Name: "High Rated", Rating: 4.8, Categories: models.NewCategoryList("Italian")},
		{ID: "r2", Name: "Available Spot", Rating: 4.1, Categories: models.NewCategoryList("French")},
		{ID: "r3", Name: "Mid Rated", Rating: 4.4, Categories: models.NewCategoryList("Mexican")},
	}
}

func TestRestaurantRecommendations_TopFiveWithoutReservations(t *testing.T) {
	handler := newTestRestaurantHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			if params.SortBy != "rating" {
				t.Errorf("expected sort_by rating, got %s", params.SortBy)
			}
			return restaurantPool(), nil
		},
	}, &mockReservationService{})

	rec := postJSON(handler.RecommendationsHandler, "/api/restaurants/recommendations",
		`{"vibe": "romantic", "location": "New York, NY"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Restaurants []restaurantResult `json:"restaurants"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Restaurants) != 3 {
		t.Errorf("expected 3 restaurants, got %d", len(resp.Restaurants))
	}
	if resp.Restaurants[0].Availability != nil {
		t.Error("expected no availability data without reservation params")
	}
}

func TestRestaurantRecommendations_RequiresVibe(t *testing.T) {
	handler := newTestRestaurantHandler(&mockListingService{}, &mockReservationService{})

	rec := postJSON(handler.RecommendationsHandler, "/api/restaurants/recommendations",
		`{"location": "New York, NY"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRestaurantRecommendations_AvailabilityFirstOrdering(t *testing.T) {
	handler := newTestRestaurantHandler(&mockListingService{
		searchFunc: func(ctx context.Context, params *interfaces.SearchParams) ([]models.Venue, error) {
			return restaurantPool(), nil
		},
	}, &mockReservationService{available: map[string]bool{"Available Spot": true}})

	rec := postJSON(handler.RecommendationsHandler, "/api/restaurants/recommendations",
		`{"vibe": "romantic", "reservationDate": "2026-09-15", "reservationTime": "19:00", "partySize": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Restaurants []restaurantResult `json:"restaurants"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Restaurants) == 0 {
		t.Fatal("expected restaurants in response")
	}
	if resp.Restaurants[0].Name != "Available Spot" {
		t.Errorf("expected Available Spot first, got %s", resp.Restaurants[0].Name)
	}
	if resp.Restaurants[1].Name != "High Rated" {
		t.Errorf("expected High Rated second by rating, got %s", resp.Restaurants[1].Name)
	}
	if resp.Restaurants[0].Availability == nil || !resp.Restaurants[0].Availability.Available {
		t.Error("expected availability attached")
	}
}
