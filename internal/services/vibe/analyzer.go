package vibe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
)

// maxPromptReviews caps how many reviews go into the analysis prompt.
const maxPromptReviews = 5

// Analyzer produces vibe profiles for venues via the configured LLM provider,
// reading through the vibe cache and degrading to deterministic synthesis.
type Analyzer struct {
	llm    interfaces.LLMService
	cache  interfaces.CacheService
	logger arbor.ILogger
}

// NewAnalyzer creates a new vibe analyzer.
func NewAnalyzer(llm interfaces.LLMService, cache interfaces.CacheService, logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		llm:    llm,
		cache:  cache,
		logger: logger,
	}
}

// Analyze generates a vibe profile for the venue via the LLM provider.
// Unparseable output is an error; callers substitute the fallback profile.
func (s *Analyzer) Analyze(ctx context.Context, venue *models.Venue) (*models.VibeProfile, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("no LLM service configured")
	}

	prompt := buildAnalysisPrompt(venue)

	response, err := s.llm.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: "You are a restaurant and bar vibe analysis expert."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("vibe analysis request failed: %w", err)
	}

	profile, err := parseAnalysis(response, venue.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("venue_id", venue.ID).Msg("Failed to parse vibe analysis response")
		return nil, err
	}

	s.logger.Debug().
		Str("venue_id", venue.ID).
		Str("primary_vibe", profile.PrimaryVibe).
		Int("keyword_count", len(profile.VibeKeywords)).
		Msg("Vibe analysis generated")

	return profile, nil
}

// Profile returns a usable vibe profile for the venue: cache hit wins,
// otherwise Analyze runs and the result is cached, and on any failure the
// deterministic fallback is substituted. Never fails.
func (s *Analyzer) Profile(ctx context.Context, venue *models.Venue) *models.VibeProfile {
	return s.cache.GetOrCreateAnalysis(ctx, venue, s.Analyze)
}

// buildAnalysisPrompt assembles the analysis prompt from the venue's name,
// categories, price and up to maxPromptReviews reviews.
func buildAnalysisPrompt(venue *models.Venue) string {
	name := venue.Name
	if name == "" {
		name = "Unknown Venue"
	}

	price := venue.Price
	if price == "" {
		price = "Unknown"
	}

	var reviews strings.Builder
	if len(venue.Reviews) == 0 {
		reviews.WriteString("No reviews available.")
	} else {
		for i, review := range venue.Reviews {
			if i == maxPromptReviews {
				break
			}
			if i > 0 {
				reviews.WriteString("\n\n")
			}
			fmt.Fprintf(&reviews, "%q (%.1f stars)", review.Text, review.Rating)
		}
	}

	return fmt.Sprintf(`Analyze the following venue and create a detailed vibe profile.

VENUE INFORMATION:
Name: %s
Categories: %s
Price Range: %s

REVIEWS:
%s

Based on this information, describe:
1. Primary Vibe: the dominant atmosphere of this place (e.g., romantic, lively, cozy, upscale, trendy, quiet)
2. Secondary Vibes: supporting atmosphere labels
3. Suitable For: occasions this place is best suited for (e.g., date night, business meetings, friends meetup)
4. Keywords: up to 10 keywords that best capture the vibe
5. Unique Attributes: what makes this place's vibe stand out

Output Format (JSON only, no markdown fences):
{
  "primaryVibe": "string",
  "secondaryVibes": ["string"],
  "suitableFor": ["string"],
  "vibeKeywords": ["string"],
  "uniqueAttributes": ["string"]
}`, name, strings.Join(venue.Categories, ", "), price, reviews.String())
}

// parseAnalysis extracts the JSON vibe profile from the LLM response.
func parseAnalysis(response, venueID string) (*models.VibeProfile, error) {
	payload := extractJSONBlock(response, '{', '}')
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in analysis response")
	}

	var parsed struct {
		PrimaryVibe      string   `json:"primaryVibe"`
		SecondaryVibes   []string `json:"secondaryVibes"`
		SuitableFor      []string `json:"suitableFor"`
		VibeKeywords     []string `json:"vibeKeywords"`
		UniqueAttributes []string `json:"uniqueAttributes"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	if strings.TrimSpace(parsed.PrimaryVibe) == "" {
		return nil, fmt.Errorf("analysis response missing primaryVibe")
	}

	profile := &models.VibeProfile{
		VenueID:          venueID,
		PrimaryVibe:      strings.TrimSpace(parsed.PrimaryVibe),
		SecondaryVibes:   parsed.SecondaryVibes,
		SuitableFor:      parsed.SuitableFor,
		VibeKeywords:     parsed.VibeKeywords,
		UniqueAttributes: parsed.UniqueAttributes,
		Provenance:       models.ProvenanceGenerated,
		GeneratedAt:      time.Now(),
	}
	profile.CapKeywords()

	return profile, nil
}

// cleanMarkdownFences removes markdown code fences from an LLM response.
func cleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONBlock slices the outermost open..close block from an LLM
// response, tolerating prose around the payload.
func extractJSONBlock(s string, open, close byte) string {
	s = cleanMarkdownFences(s)

	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// Ensure Analyzer implements the VibeAnalyzer interface
var _ interfaces.VibeAnalyzer = (*Analyzer)(nil)
