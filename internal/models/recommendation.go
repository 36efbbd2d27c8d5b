package models

// VibeSummary is the grouped vibe block of a recommendation response.
type VibeSummary struct {
	Primary          string   `json:"primary"`
	Secondary        []string `json:"secondary"`
	Keywords         []string `json:"keywords"`
	SuitableFor      []string `json:"suitableFor"`
	UniqueAttributes []string `json:"uniqueAttributes"`
}

// Recommendation is the externally visible venue recommendation: venue fields
// plus the grouped vibe summary and, for final recommendations, a rationale.
type Recommendation struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Rating      float64     `json:"rating"`
	Price       string      `json:"price"`
	Categories  []string    `json:"categories"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone,omitempty"`
	URL         string      `json:"url,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Photos      []string    `json:"photos"`
	Coordinates Coordinates `json:"coordinates"`
	Vibe        VibeSummary `json:"vibe"`
	Why         []string    `json:"why,omitempty"`
}

// NewRecommendation composes the response shape from a venue and its profile.
func NewRecommendation(venue *Venue, profile *VibeProfile) *Recommendation {
	photos := venue.Photos
	if len(photos) == 0 && venue.ImageURL != "" {
		photos = []string{venue.ImageURL}
	}

	return &Recommendation{
		ID:          venue.ID,
		Name:        venue.Name,
		Rating:      venue.Rating,
		Price:       venue.Price,
		Categories:  []string(venue.Categories),
		Address:     venue.Address,
		Phone:       venue.Phone,
		URL:         venue.URL,
		ImageURL:    venue.ImageURL,
		Photos:      emptyIfNil(photos),
		Coordinates: venue.Coordinates,
		Vibe: VibeSummary{
			Primary:          profile.PrimaryVibe,
			Secondary:        emptyIfNil(profile.SecondaryVibes),
			Keywords:         emptyIfNil(profile.VibeKeywords),
			SuitableFor:      emptyIfNil(profile.SuitableFor),
			UniqueAttributes: emptyIfNil(profile.UniqueAttributes),
		},
	}
}

// emptyIfNil keeps response arrays as [] rather than null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
