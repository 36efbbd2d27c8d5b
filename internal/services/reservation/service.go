package reservation

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
)

// platformIDs maps a venue name to its identifiers on each booking
// platform. An empty ID means the venue is not listed on that platform.
type platformIDs struct {
	OpenTable  string
	Resy       string
	SevenRooms string
}

// reservationMappings is the known venue roster. Lookup is by partial
// name match in either direction so "carbone" and "Carbone NYC" both
// resolve.
var reservationMappings = map[string]platformIDs{
	"Carbone":      {OpenTable: "123456", Resy: "carbone-nyc", SevenRooms: "carbonenyc"},
	"Lilia":        {Resy: "lilia-brooklyn"},
	"Le Bernardin": {OpenTable: "789012", SevenRooms: "lebernardinyc"},
}

// Service probes booking platforms for table availability.
type Service struct {
	config *common.ReservationsConfig
	client *http.Client
	logger arbor.ILogger

	// Probe endpoints, overridable in tests.
	openTableURL  string
	resyURL       string
	sevenRoomsURL string
}

var _ interfaces.ReservationService = (*Service)(nil)

// NewService creates a reservation availability service.
func NewService(config *common.ReservationsConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		logger:        logger,
		openTableURL:  "https://api.opentable.com/availability",
		resyURL:       "https://api.resy.com/api/4/find",
		sevenRoomsURL: "https://api.sevenrooms.com/availability/check",
	}
}

// CheckAvailability queries every platform the venue is known on and
// returns the first available result, or an unavailable result when no
// platform has a table. Probe failures degrade to unavailable.
func (s *Service) CheckAvailability(ctx context.Context, req *interfaces.ReservationRequest) *interfaces.Availability {
	ids := findPlatformIDs(req.VenueName)

	var probes []*interfaces.Availability
	if ids.OpenTable != "" {
		probes = append(probes, s.checkOpenTable(ctx, ids.OpenTable, req))
	}
	if ids.Resy != "" {
		probes = append(probes, s.checkResy(ctx, ids.Resy, req))
	}
	if ids.SevenRooms != "" {
		probes = append(probes, s.checkSevenRooms(ctx, ids.SevenRooms, req))
	}

	for _, probe := range probes {
		if probe.Available {
			return probe
		}
	}

	s.logger.Debug().
		Str("venue", req.VenueName).
		Int("platforms_checked", len(probes)).
		Msg("No reservation availability found")

	return &interfaces.Availability{Available: false}
}

// findPlatformIDs resolves a venue name to platform identifiers by
// case-insensitive partial matching in either direction.
func findPlatformIDs(venueName string) platformIDs {
	normalized := strings.ToLower(strings.TrimSpace(venueName))
	if normalized == "" {
		return platformIDs{}
	}

	for name, ids := range reservationMappings {
		lower := strings.ToLower(name)
		if strings.Contains(lower, normalized) || strings.Contains(normalized, lower) {
			return ids
		}
	}
	return platformIDs{}
}

func (s *Service) checkOpenTable(ctx context.Context, restaurantID string, req *interfaces.ReservationRequest) *interfaces.Availability {
	params := url.Values{}
	params.Set("restaurant_id", restaurantID)
	params.Set("party_size", strconv.Itoa(req.PartySize))
	params.Set("date", req.Date)
	params.Set("time", req.Time)

	var resp struct {
		Available      bool     `json:"available"`
		AvailableTimes []string `json:"available_times"`
	}
	if err := s.probe(ctx, "OpenTable", s.openTableURL, params, map[string]string{
		"Authorization": "Bearer " + s.config.OpenTableAPIKey,
	}, &resp); err != nil {
		return &interfaces.Availability{Platform: "OpenTable", Available: false, Error: err.Error()}
	}

	return &interfaces.Availability{
		Platform:  "OpenTable",
		Available: resp.Available,
		Times:     resp.AvailableTimes,
		ReservationURL: fmt.Sprintf("https://www.opentable.com/restaurant/profile/%s/reserve?date=%s&time=%s&party=%d",
			restaurantID, req.Date, req.Time, req.PartySize),
	}
}

func (s *Service) checkResy(ctx context.Context, venueID string, req *interfaces.ReservationRequest) *interfaces.Availability {
	params := url.Values{}
	params.Set("venue_id", venueID)
	params.Set("party_size", strconv.Itoa(req.PartySize))
	params.Set("day", req.Date)
	params.Set("time", req.Time)

	var resp struct {
		Results []struct {
			Config struct {
				TimeSlot string `json:"time_slot"`
			} `json:"config"`
		} `json:"results"`
	}
	if err := s.probe(ctx, "Resy", s.resyURL, params, map[string]string{
		"Authorization":     "Bearer " + s.config.ResyAPIKey,
		"X-Resy-Auth-Token": s.config.ResyAuthToken,
	}, &resp); err != nil {
		return &interfaces.Availability{Platform: "Resy", Available: false, Error: err.Error()}
	}

	times := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		times = append(times, result.Config.TimeSlot)
	}

	return &interfaces.Availability{
		Platform:  "Resy",
		Available: len(resp.Results) > 0,
		Times:     times,
		ReservationURL: fmt.Sprintf("https://resy.com/restaurants/%s?date=%s&seats=%d",
			venueID, req.Date, req.PartySize),
	}
}

func (s *Service) checkSevenRooms(ctx context.Context, venueID string, req *interfaces.ReservationRequest) *interfaces.Availability {
	params := url.Values{}
	params.Set("venue_id", venueID)
	params.Set("party_size", strconv.Itoa(req.PartySize))
	params.Set("date", req.Date)
	params.Set("time", req.Time)

	var resp struct {
		Availability   bool     `json:"availability"`
		AvailableTimes []string `json:"available_times"`
	}
	if err := s.probe(ctx, "SevenRooms", s.sevenRoomsURL, params, map[string]string{
		"Authorization": "Bearer " + s.config.SevenRoomsAPIKey,
	}, &resp); err != nil {
		return &interfaces.Availability{Platform: "SevenRooms", Available: false, Error: err.Error()}
	}

	return &interfaces.Availability{
		Platform:  "SevenRooms",
		Available: resp.Availability,
		Times:     resp.AvailableTimes,
		ReservationURL: fmt.Sprintf("https://sevenrooms.com/reservations/%s?party=%d&date=%s&time=%s",
			venueID, req.PartySize, req.Date, req.Time),
	}
}

// probe performs a single platform GET and decodes the JSON response.
func (s *Service) probe(ctx context.Context, platform, baseURL string, params url.Values, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("platform", platform).Msg("Reservation probe failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("%s returned status %d: %s", platform, resp.StatusCode, string(body))
		s.logger.Warn().Err(err).Str("platform", platform).Msg("Reservation probe failed")
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", platform, err)
	}
	return nil
}
