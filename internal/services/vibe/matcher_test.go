package vibe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
)

// stubLLM returns a canned chat response or error.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) HealthCheck(ctx context.Context) error { return nil }
func (s *stubLLM) Close() error                          { return nil }

func makeCandidates(n int) []models.VenueProfile {
	candidates := make([]models.VenueProfile, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("v%d", i+1)
		candidates = append(candidates, models.VenueProfile{
			Venue:   &models.Venue{ID: id, Name: "Venue " + id},
			Profile: &models.VibeProfile{VenueID: id, PrimaryVibe: "casual"},
		})
	}
	return candidates
}

func TestMatchFallbackMonotonicity(t *testing.T) {
	matcher := NewMatcher(nil, arbor.NewLogger())

	candidates := makeCandidates(12)
	results := matcher.Match(context.Background(), "somewhere lively", candidates)

	require.Len(t, results, 12)
	for i, result := range results {
		assert.Equal(t, i+1, result.Rank)
		assert.NotEmpty(t, result.MatchReasons)
		if i > 0 {
			assert.LessOrEqual(t, result.MatchScore, results[i-1].MatchScore)
		}
		assert.GreaterOrEqual(t, result.MatchScore, 0)
	}
	// 11th and 12th candidates floor at zero
	assert.Equal(t, 0, results[10].MatchScore)
	assert.Equal(t, 0, results[11].MatchScore)
}

func TestMatchUsesLLMRanking(t *testing.T) {
	llm := &stubLLM{response: `[
		{"venueIndex": 2, "matchScore": 95, "matchReasons": ["intimate lighting"], "rank": 1},
		{"venueIndex": 1, "matchScore": 60, "matchReasons": ["a bit loud"], "rank": 2}
	]`}
	matcher := NewMatcher(llm, arbor.NewLogger())

	results := matcher.Match(context.Background(), "romantic dinner", makeCandidates(2))

	require.Len(t, results, 2)
	assert.Equal(t, "v2", results[0].VenueID)
	assert.Equal(t, 95, results[0].MatchScore)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "v1", results[1].VenueID)
	assert.Equal(t, 2, results[1].Rank)
}

func TestMatchDropsOutOfRangeIndices(t *testing.T) {
	llm := &stubLLM{response: `[
		{"venueIndex": 5, "matchScore": 99, "matchReasons": ["x"], "rank": 1},
		{"venueIndex": 1, "matchScore": 80, "matchReasons": ["y"], "rank": 2},
		{"venueIndex": 0, "matchScore": 70, "matchReasons": ["z"], "rank": 3},
		{"venueIndex": 2, "matchScore": 65, "matchReasons": ["w"], "rank": 4}
	]`}
	matcher := NewMatcher(llm, arbor.NewLogger())

	results := matcher.Match(context.Background(), "anything", makeCandidates(2))

	// Indices 5 and 0 dropped; ranks renumbered densely
	require.Len(t, results, 2)
	assert.Equal(t, "v1", results[0].VenueID)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, "v2", results[1].VenueID)
	assert.Equal(t, 2, results[1].Rank)
}

func TestMatchClampsScores(t *testing.T) {
	llm := &stubLLM{response: `[
		{"venueIndex": 1, "matchScore": 150, "matchReasons": ["x"], "rank": 1},
		{"venueIndex": 2, "matchScore": -20, "matchReasons": ["y"], "rank": 2}
	]`}
	matcher := NewMatcher(llm, arbor.NewLogger())

	results := matcher.Match(context.Background(), "anything", makeCandidates(2))

	require.Len(t, results, 2)
	assert.Equal(t, 100, results[0].MatchScore)
	assert.Equal(t, 0, results[1].MatchScore)
}

func TestMatchFallsBackOnLLMError(t *testing.T) {
	matcher := NewMatcher(&stubLLM{err: errors.New("provider down")}, arbor.NewLogger())

	results := matcher.Match(context.Background(), "anything", makeCandidates(3))

	require.Len(t, results, 3)
	assert.Equal(t, 100, results[0].MatchScore)
	assert.Equal(t, 90, results[1].MatchScore)
	assert.Equal(t, 80, results[2].MatchScore)
}

func TestMatchFallsBackOnUnparseableResponse(t *testing.T) {
	matcher := NewMatcher(&stubLLM{response: "I cannot rank these venues."}, arbor.NewLogger())

	results := matcher.Match(context.Background(), "anything", makeCandidates(2))

	require.Len(t, results, 2)
	assert.Equal(t, "v1", results[0].VenueID)
	assert.Equal(t, 1, results[0].Rank)
}

func TestMatchHandlesFencedResponse(t *testing.T) {
	llm := &stubLLM{response: "```json\n[{\"venueIndex\": 1, \"matchScore\": 88, \"matchReasons\": [\"warm\"], \"rank\": 1}]\n```"}
	matcher := NewMatcher(llm, arbor.NewLogger())

	results := matcher.Match(context.Background(), "cozy", makeCandidates(1))

	require.Len(t, results, 1)
	assert.Equal(t, 88, results[0].MatchScore)
}

func TestMatchEmptyCandidates(t *testing.T) {
	matcher := NewMatcher(nil, arbor.NewLogger())

	results := matcher.Match(context.Background(), "anything", nil)

	assert.Empty(t, results)
}

func TestSortByAvailability(t *testing.T) {
	results := []models.MatchResult{
		{VenueID: "v1", Rank: 1, MatchScore: 90},
		{VenueID: "v2", Rank: 2, MatchScore: 80},
		{VenueID: "v3", Rank: 3, MatchScore: 70},
	}
	available := map[string]bool{"v3": true}
	ratings := map[string]float64{"v1": 4.8, "v2": 4.2, "v3": 4.0}

	SortByAvailability(results, available, ratings)

	assert.Equal(t, "v3", results[0].VenueID, "available venue sorts first")
	assert.Equal(t, "v1", results[1].VenueID, "then by rating descending")
	assert.Equal(t, "v2", results[2].VenueID)
	assert.Equal(t, []int{1, 2, 3}, []int{results[0].Rank, results[1].Rank, results[2].Rank})
}
