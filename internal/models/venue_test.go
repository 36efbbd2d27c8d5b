package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryListUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want CategoryList
	}{
		{"plain strings", `["Italian", "Wine Bar"]`, CategoryList{"Italian", "Wine Bar"}},
		{"title records", `[{"title": "Italian"}, {"title": "Wine Bar"}]`, CategoryList{"Italian", "Wine Bar"}},
		{"mixed shapes", `["Italian", {"title": "Wine Bar"}]`, CategoryList{"Italian", "Wine Bar"}},
		{"bare string", `"Italian"`, CategoryList{"Italian"}},
		{"dedupes case-insensitively", `["Italian", "ITALIAN", "italian"]`, CategoryList{"Italian"}},
		{"trims whitespace", `["  Italian  ", ""]`, CategoryList{"Italian"}},
		{"empty backfills default", `[]`, CategoryList{DefaultCategory}},
		{"unusable shapes dropped", `[42, true]`, CategoryList{DefaultCategory}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CategoryList
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryListRoundTrip(t *testing.T) {
	original := NewCategoryList("Italian", "Wine Bar")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded CategoryList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestCategoryListContainsAny(t *testing.T) {
	categories := NewCategoryList("Cocktail Bars", "Lounges")

	assert.True(t, categories.ContainsAny("bar"))
	assert.True(t, categories.ContainsAny("restaurant", "lounge"))
	assert.False(t, categories.ContainsAny("cafe"))
}

func TestPriceTier(t *testing.T) {
	assert.Equal(t, 0, (&Venue{}).PriceTier())
	assert.Equal(t, 1, (&Venue{Price: "$"}).PriceTier())
	assert.Equal(t, 4, (&Venue{Price: "$$$$"}).PriceTier())
}

func TestCapKeywords(t *testing.T) {
	profile := &VibeProfile{VibeKeywords: []string{
		"cozy", "COZY", " warm ", "", "a", "b", "c", "d", "e", "f", "g", "h", "i",
	}}

	profile.CapKeywords()

	assert.Len(t, profile.VibeKeywords, MaxVibeKeywords)
	assert.Equal(t, "cozy", profile.VibeKeywords[0])
	assert.Equal(t, "warm", profile.VibeKeywords[1])
	assert.NotContains(t, profile.VibeKeywords, "COZY")
}

func TestSessionStateValidate(t *testing.T) {
	valid := &SessionState{
		Seen:     []string{"v1", "v2"},
		Liked:    []string{"v1"},
		Rejected: []string{"v2"},
		Current:  "v2",
	}
	assert.NoError(t, valid.Validate())

	conflicting := &SessionState{Liked: []string{"v1"}, Rejected: []string{"v1"}}
	assert.Error(t, conflicting.Validate())

	undisposed := &SessionState{Seen: []string{"v1"}, Current: "v1"}
	assert.Error(t, undisposed.Validate())
}

func TestSessionStateExclusion(t *testing.T) {
	state := &SessionState{
		Seen:     []string{"a"},
		Liked:    []string{"b"},
		Rejected: []string{"c"},
	}

	excluded := state.Exclusion()

	assert.Len(t, excluded, 3)
	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, excluded[id])
	}
	assert.False(t, excluded["d"])
}

func TestNewRecommendationPhotosFallBackToImageURL(t *testing.T) {
	venue := &Venue{
		ID:         "v1",
		Name:       "The Spot",
		ImageURL:   "https://example.com/main.jpg",
		Categories: NewCategoryList("Italian"),
	}
	profile := &VibeProfile{VenueID: "v1", PrimaryVibe: "cozy"}

	rec := NewRecommendation(venue, profile)

	assert.Equal(t, []string{"https://example.com/main.jpg"}, rec.Photos)
	assert.Equal(t, "cozy", rec.Vibe.Primary)
	assert.NotNil(t, rec.Vibe.Keywords, "arrays serialize as [] not null")
}
