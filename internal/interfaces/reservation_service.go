package interfaces

import "context"

// Availability is the aggregated result of a reservation availability probe.
// A failed probe reports unavailable rather than an error.
type Availability struct {
	Platform       string   `json:"platform"`
	Available      bool     `json:"available"`
	Times          []string `json:"times,omitempty"`
	ReservationURL string   `json:"reservationUrl,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// ReservationRequest describes a reservation availability query.
type ReservationRequest struct {
	VenueName string `json:"venue_name"`
	PartySize int    `json:"party_size"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM, 24-hour
}

// ReservationService probes booking platforms for table availability.
type ReservationService interface {
	// CheckAvailability queries every platform the venue is known on and
	// returns the first available slot, or an unavailable result when no
	// platform has one. Probe failures degrade to unavailable.
	CheckAvailability(ctx context.Context, req *ReservationRequest) *Availability
}
