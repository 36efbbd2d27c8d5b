package listing

import (
	"encoding/json"
	"time"

	"github.com/ternarybob/vibecheck/internal/models"
)

// Wire types for the listing provider API.

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

type business struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Rating      float64            `json:"rating"`
	Price       string             `json:"price"`
	Categories  []businessCategory `json:"categories"`
	ImageURL    string             `json:"image_url"`
	Photos      []string           `json:"photos"`
	Phone       string             `json:"phone"`
	URL         string             `json:"url"`
	Location    businessLocation   `json:"location"`
	Coordinates models.Coordinates `json:"coordinates"`
}

type businessCategory struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type businessLocation struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

type reviewsResponse struct {
	Reviews []struct {
		Text   string  `json:"text"`
		Rating float64 `json:"rating"`
	} `json:"reviews"`
}

// toVenue normalizes a provider business record into the canonical venue
// shape, stamping the fetch time and keeping the raw payload for provenance.
func (b *business) toVenue(raw json.RawMessage) models.Venue {
	labels := make([]string, 0, len(b.Categories))
	for _, category := range b.Categories {
		labels = append(labels, category.Title)
	}

	return models.Venue{
		ID:          b.ID,
		Name:        b.Name,
		Rating:      b.Rating,
		Price:       b.Price,
		Categories:  models.NewCategoryList(labels...),
		Address:     b.Location.Address1,
		Phone:       b.Phone,
		URL:         b.URL,
		ImageURL:    b.ImageURL,
		Photos:      b.Photos,
		Coordinates: b.Coordinates,
		Raw:         raw,
		FetchedAt:   time.Now(),
	}
}
