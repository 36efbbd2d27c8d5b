package models

import (
	"strings"
	"time"
)

// Provenance distinguishes externally generated analyses from locally
// synthesized fallback data.
type Provenance string

const (
	// ProvenanceGenerated marks an analysis produced by the LLM provider
	ProvenanceGenerated Provenance = "generated"
	// ProvenanceFallback marks a deterministic locally synthesized profile
	ProvenanceFallback Provenance = "fallback"
)

// MaxVibeKeywords caps the keyword set of a vibe profile.
const MaxVibeKeywords = 10

// VibeProfile describes the atmosphere of a venue.
// PrimaryVibe is never empty; when no analysis is derivable a deterministic
// fallback profile is substituted.
type VibeProfile struct {
	VenueID          string     `json:"venueId"`
	PrimaryVibe      string     `json:"primaryVibe"`
	SecondaryVibes   []string   `json:"secondaryVibes,omitempty"`
	VibeKeywords     []string   `json:"vibeKeywords,omitempty"`
	SuitableFor      []string   `json:"suitableFor,omitempty"`
	UniqueAttributes []string   `json:"uniqueAttributes,omitempty"`
	Provenance       Provenance `json:"provenance"`
	GeneratedAt      time.Time  `json:"generatedAt"`
}

// CapKeywords dedupes the keyword set case-insensitively and caps it at
// MaxVibeKeywords, preserving first-seen order.
func (p *VibeProfile) CapKeywords() {
	seen := make(map[string]bool, len(p.VibeKeywords))
	result := make([]string, 0, len(p.VibeKeywords))
	for _, keyword := range p.VibeKeywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		key := strings.ToLower(keyword)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, keyword)
		if len(result) == MaxVibeKeywords {
			break
		}
	}
	p.VibeKeywords = result
}
