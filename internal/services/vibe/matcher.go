package vibe

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
)

// Matcher ranks candidate venues against a free-form vibe description using
// the LLM provider, with a deterministic fallback ranking.
type Matcher struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewMatcher creates a new vibe matcher.
func NewMatcher(llm interfaces.LLMService, logger arbor.ILogger) *Matcher {
	return &Matcher{
		llm:    llm,
		logger: logger,
	}
}

// Match returns results ordered by rank with rank values dense 1..N over the
// accepted results. Degrades to the deterministic fallback ranking when the
// LLM is unavailable or returns unusable output; never returns an error.
func (s *Matcher) Match(ctx context.Context, description string, candidates []models.VenueProfile) []models.MatchResult {
	if len(candidates) == 0 {
		return []models.MatchResult{}
	}

	if s.llm == nil {
		return fallbackRanking(candidates)
	}

	prompt := buildMatchPrompt(description, candidates)

	response, err := s.llm.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: "You are a restaurant and bar recommendation expert."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn().Err(err).Int("candidates", len(candidates)).Msg("Vibe matching request failed, using fallback ranking")
		return fallbackRanking(candidates)
	}

	results, err := parseMatchResults(response, candidates)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to parse matching response, using fallback ranking")
		return fallbackRanking(candidates)
	}

	return results
}

// SortByAvailability orders results so that venues with known reservation
// availability come first; within each group, higher-rated venues sort first.
func SortByAvailability(results []models.MatchResult, available map[string]bool, ratings map[string]float64) {
	sort.SliceStable(results, func(i, j int) bool {
		ai, aj := available[results[i].VenueID], available[results[j].VenueID]
		if ai != aj {
			return ai
		}
		return ratings[results[i].VenueID] > ratings[results[j].VenueID]
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// buildMatchPrompt serializes the candidate vibe summaries for the LLM.
func buildMatchPrompt(description string, candidates []models.VenueProfile) string {
	var venues strings.Builder
	for i, candidate := range candidates {
		fmt.Fprintf(&venues, "\nVenue %d: %s\n", i+1, candidate.Venue.Name)
		fmt.Fprintf(&venues, "Primary Vibe: %s\n", candidate.Profile.PrimaryVibe)
		fmt.Fprintf(&venues, "Secondary Vibes: %s\n", strings.Join(candidate.Profile.SecondaryVibes, ", "))
		fmt.Fprintf(&venues, "Keywords: %s\n", strings.Join(candidate.Profile.VibeKeywords, ", "))
		fmt.Fprintf(&venues, "Suitable For: %s\n", strings.Join(candidate.Profile.SuitableFor, ", "))
	}

	return fmt.Sprintf(`Match the following user's vibe description to the most suitable venues.

USER'S DESIRED VIBE:
%q

AVAILABLE VENUES:
%s
For each venue, provide a match score from 0-100, a brief explanation of why
it matches or doesn't match, and a rank from best match to worst match.

Output Format (JSON only, no markdown fences):
[
  {
    "venueIndex": 1,
    "matchScore": 85,
    "matchReasons": ["reason1", "reason2"],
    "rank": 1
  }
]`, description, venues.String())
}

// parseMatchResults extracts and validates the ranked results. Out-of-range
// indices are dropped; scores are clamped to 0-100; ranks are renumbered to a
// dense 1..N sequence after drops.
func parseMatchResults(response string, candidates []models.VenueProfile) ([]models.MatchResult, error) {
	payload := extractJSONBlock(response, '[', ']')
	if payload == "" {
		return nil, fmt.Errorf("no JSON array in matching response")
	}

	var parsed []struct {
		VenueIndex   int      `json:"venueIndex"`
		MatchScore   int      `json:"matchScore"`
		MatchReasons []string `json:"matchReasons"`
		Rank         int      `json:"rank"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse matching JSON: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("matching response contained no results")
	}

	results := make([]models.MatchResult, 0, len(parsed))
	for _, entry := range parsed {
		idx := entry.VenueIndex - 1
		if idx < 0 || idx >= len(candidates) {
			continue // out-of-range index, dropped
		}

		score := entry.MatchScore
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}

		reasons := entry.MatchReasons
		if len(reasons) == 0 {
			reasons = []string{"Matches your vibe preferences"}
		}

		results = append(results, models.MatchResult{
			VenueID:      candidates[idx].Venue.ID,
			VenueName:    candidates[idx].Venue.Name,
			MatchScore:   score,
			MatchReasons: reasons,
			Rank:         entry.Rank,
		})
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("all matching results had out-of-range indices")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// fallbackRanking assigns deterministic scores in candidate input order:
// max(0, 100-10i) for the i-th candidate, rank i+1.
func fallbackRanking(candidates []models.VenueProfile) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(candidates))
	for i, candidate := range candidates {
		score := 100 - 10*i
		if score < 0 {
			score = 0
		}
		results = append(results, models.MatchResult{
			VenueID:      candidate.Venue.ID,
			VenueName:    candidate.Venue.Name,
			MatchScore:   score,
			MatchReasons: []string{"Based on your preferences"},
			Rank:         i + 1,
		})
	}
	return results
}

// Ensure Matcher implements the VibeMatcher interface
var _ interfaces.VibeMatcher = (*Matcher)(nil)
