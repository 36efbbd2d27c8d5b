package models

// MatchResult scores one venue against a vibe description. Ranks are 1-based
// and dense within a result set.
type MatchResult struct {
	VenueID      string   `json:"venueId"`
	VenueName    string   `json:"venueName"`
	MatchScore   int      `json:"matchScore"` // 0-100 inclusive
	MatchReasons []string `json:"matchReasons"`
	Rank         int      `json:"rank"`
}

// VenueProfile pairs a venue with its vibe analysis for matching.
type VenueProfile struct {
	Venue   *Venue       `json:"venue"`
	Profile *VibeProfile `json:"profile"`
}
