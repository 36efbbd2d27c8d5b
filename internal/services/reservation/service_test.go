package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/interfaces"
)

func newTestRequest() *interfaces.ReservationRequest {
	return &interfaces.ReservationRequest{
		VenueName: "Carbone",
		PartySize: 2,
		Date:      "2026-09-15",
		Time:      "19:00",
	}
}

func newTestService(t *testing.T, openTable, resy, sevenRooms http.HandlerFunc) *Service {
	t.Helper()

	svc := NewService(&common.ReservationsConfig{
		OpenTableAPIKey: "ot-key",
		ResyAPIKey:      "resy-key",
		ResyAuthToken:   "resy-token",
		RequestTimeout:  5 * time.Second,
		MaxChecks:       5,
	}, arbor.NewLogger())

	if openTable != nil {
		server := httptest.NewServer(openTable)
		t.Cleanup(server.Close)
		svc.openTableURL = server.URL
	}
	if resy != nil {
		server := httptest.NewServer(resy)
		t.Cleanup(server.Close)
		svc.resyURL = server.URL
	}
	if sevenRooms != nil {
		server := httptest.NewServer(sevenRooms)
		t.Cleanup(server.Close)
		svc.sevenRoomsURL = server.URL
	}
	return svc
}

func unavailableHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"available": false, "availability": false, "results": []}`))
}

func TestCheckAvailabilityReturnsFirstAvailable(t *testing.T) {
	openTable := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123456", r.URL.Query().Get("restaurant_id"))
		assert.Equal(t, "Bearer ot-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"available": true, "available_times": ["19:00", "19:30"]}`))
	}
	svc := newTestService(t, openTable, unavailableHandler, unavailableHandler)

	result := svc.CheckAvailability(context.Background(), newTestRequest())

	require.True(t, result.Available)
	assert.Equal(t, "OpenTable", result.Platform)
	assert.Equal(t, []string{"19:00", "19:30"}, result.Times)
	assert.Contains(t, result.ReservationURL, "opentable.com")
	assert.Contains(t, result.ReservationURL, "123456")
}

func TestCheckAvailabilityFallsThroughToResy(t *testing.T) {
	resy := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "carbone-nyc", r.URL.Query().Get("venue_id"))
		assert.Equal(t, "resy-token", r.Header.Get("X-Resy-Auth-Token"))
		w.Write([]byte(`{"results": [{"config": {"time_slot": "19:15"}}]}`))
	}
	svc := newTestService(t, unavailableHandler, resy, unavailableHandler)

	result := svc.CheckAvailability(context.Background(), newTestRequest())

	require.True(t, result.Available)
	assert.Equal(t, "Resy", result.Platform)
	assert.Equal(t, []string{"19:15"}, result.Times)
}

func TestCheckAvailabilityProbeFailureIsUnavailable(t *testing.T) {
	failing := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}
	svc := newTestService(t, failing, failing, failing)

	result := svc.CheckAvailability(context.Background(), newTestRequest())

	require.NotNil(t, result)
	assert.False(t, result.Available)
}

func TestCheckAvailabilityUnknownVenue(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	result := svc.CheckAvailability(context.Background(), &interfaces.ReservationRequest{
		VenueName: "Totally Unknown Venue",
		PartySize: 4,
		Date:      "2026-09-15",
		Time:      "20:00",
	})

	require.NotNil(t, result)
	assert.False(t, result.Available)
	assert.Empty(t, result.Platform)
}

func TestCheckAvailabilitySkipsUnlistedPlatforms(t *testing.T) {
	var openTableCalled, resyCalled bool
	openTable := func(w http.ResponseWriter, r *http.Request) {
		openTableCalled = true
		unavailableHandler(w, r)
	}
	resy := func(w http.ResponseWriter, r *http.Request) {
		resyCalled = true
		assert.Equal(t, "lilia-brooklyn", r.URL.Query().Get("venue_id"))
		unavailableHandler(w, r)
	}
	svc := newTestService(t, openTable, resy, unavailableHandler)

	req := newTestRequest()
	req.VenueName = "Lilia"
	svc.CheckAvailability(context.Background(), req)

	assert.False(t, openTableCalled, "Lilia is not listed on OpenTable")
	assert.True(t, resyCalled)
}

func TestFindPlatformIDsPartialMatch(t *testing.T) {
	tests := []struct {
		name      string
		venueName string
		wantResy  string
	}{
		{"exact", "Carbone", "carbone-nyc"},
		{"lowercase", "carbone", "carbone-nyc"},
		{"venue name superset", "Carbone NYC", "carbone-nyc"},
		{"unknown", "Joe's Diner", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := findPlatformIDs(tt.venueName)
			assert.Equal(t, tt.wantResy, ids.Resy)
		})
	}
}
