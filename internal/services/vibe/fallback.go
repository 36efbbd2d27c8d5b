// Package vibe generates, synthesizes, and matches venue vibe profiles.
package vibe

import (
	"time"

	"github.com/ternarybob/vibecheck/internal/models"
)

// Category sets that steer the fallback vibe choice. Matched
// case-insensitively as substrings against the venue's category labels.
var (
	fineDiningCategories = []string{"fine dining", "french", "steakhouse", "japanese"}
	nightlifeCategories  = []string{"bar", "nightlife", "cocktail"}
	cafeCategories       = []string{"cafe", "bakery", "coffee"}
)

// Synthesize builds a deterministic fallback vibe profile from the venue's
// categories and price tier. Used whenever generation fails or is disabled.
// Total and pure given the same venue; never fails.
func Synthesize(venue *models.Venue) *models.VibeProfile {
	primaryVibe := "casual"
	keywords := append([]string{}, venue.Categories...)
	keywords = append(keywords, "enjoyable", "pleasant")

	switch {
	case venue.Categories.ContainsAny(fineDiningCategories...) || venue.PriceTier() >= 3:
		primaryVibe = "upscale"
		keywords = append(keywords, "elegant", "refined", "sophisticated")
	case venue.Categories.ContainsAny(nightlifeCategories...):
		primaryVibe = "lively"
		keywords = append(keywords, "energetic", "vibrant", "social")
	case venue.Categories.ContainsAny(cafeCategories...):
		primaryVibe = "cozy"
		keywords = append(keywords, "comfortable", "relaxed", "warm")
	case venue.PriceTier() == 1:
		keywords = append(keywords, "affordable", "relaxed", "laid-back")
	}

	profile := &models.VibeProfile{
		VenueID:        venue.ID,
		PrimaryVibe:    primaryVibe,
		SecondaryVibes: []string{"pleasant"},
		VibeKeywords:   keywords,
		SuitableFor:    []string{"dining", "casual meetups"},
		Provenance:     models.ProvenanceFallback,
		GeneratedAt:    time.Now(),
	}
	profile.CapKeywords()

	return profile
}
