package listing

import (
	"strings"
	"time"

	"github.com/ternarybob/vibecheck/internal/models"
)

// Synthetic venue pools keep the recommendation flow usable when the
// listing provider is unreachable or unconfigured. The data is fixed so
// repeated calls produce identical pools.

// SyntheticPool returns a deterministic five-venue pool for the given
// venue type. Any type other than "bar" yields the restaurant pool.
func SyntheticPool(venueType string) []models.Venue {
	now := time.Now()

	if venueType == "bar" {
		return []models.Venue{
			{
				ID:          "bar-test-1",
				Name:        "Cocktail Lounge NYC",
				Rating:      4.5,
				Price:       "$$$",
				Categories:  models.NewCategoryList("Cocktail Bar", "Lounge"),
				ImageURL:    "https://s3-media1.fl.yelpcdn.com/bphoto/placeholder.jpg",
				Address:     "123 Bar Ave, New York, NY 10001",
				Coordinates: models.Coordinates{Latitude: 40.7128, Longitude: -74.0060},
				FetchedAt:   now,
			},
			{
				ID:          "bar-test-2",
				Name:        "Wine & Spirits",
				Rating:      4.2,
				Price:       "$$",
				Categories:  models.NewCategoryList("Wine Bar", "Cocktail Bar"),
				ImageURL:    "https://s3-media2.fl.yelpcdn.com/bphoto/placeholder2.jpg",
				Address:     "456 Wines St, New York, NY 10002",
				Coordinates: models.Coordinates{Latitude: 40.7218, Longitude: -73.9960},
				FetchedAt:   now,
			},
			{
				ID:          "bar-test-3",
				Name:        "Craft Beer Pub",
				Rating:      4.3,
				Price:       "$$",
				Categories:  models.NewCategoryList("Beer Bar", "Gastropub"),
				ImageURL:    "https://s3-media3.fl.yelpcdn.com/bphoto/placeholder3.jpg",
				Address:     "789 Brew St, New York, NY 10003",
				Coordinates: models.Coordinates{Latitude: 40.7318, Longitude: -73.9860},
				FetchedAt:   now,
			},
			{
				ID:          "bar-test-4",
				Name:        "Speakeasy Lounge",
				Rating:      4.7,
				Price:       "$$$$",
				Categories:  models.NewCategoryList("Cocktail Bar", "Speakeasy"),
				ImageURL:    "https://s3-media4.fl.yelpcdn.com/bphoto/placeholder4.jpg",
				Address:     "101 Hidden St, New York, NY 10004",
				Coordinates: models.Coordinates{Latitude: 40.7418, Longitude: -73.9760},
				FetchedAt:   now,
			},
			{
				ID:          "bar-test-5",
				Name:        "Rooftop Bar & Lounge",
				Rating:      4.4,
				Price:       "$$$",
				Categories:  models.NewCategoryList("Lounge", "Cocktail Bar"),
				ImageURL:    "https://s3-media5.fl.yelpcdn.com/bphoto/placeholder5.jpg",
				Address:     "222 Sky Ln, New York, NY 10005",
				Coordinates: models.Coordinates{Latitude: 40.7518, Longitude: -73.9660},
				FetchedAt:   now,
			},
		}
	}

	return []models.Venue{
		{
			ID:          "restaurant-test-1",
			Name:        "Italian Trattoria",
			Rating:      4.5,
			Price:       "$$$",
			Categories:  models.NewCategoryList("Italian", "Restaurant"),
			ImageURL:    "https://s3-media1.fl.yelpcdn.com/bphoto/placeholder.jpg",
			Address:     "123 Pasta Ave, New York, NY 10001",
			Coordinates: models.Coordinates{Latitude: 40.7128, Longitude: -74.0060},
			FetchedAt:   now,
		},
		{
			ID:          "restaurant-test-2",
			Name:        "Sushi Place",
			Rating:      4.2,
			Price:       "$$",
			Categories:  models.NewCategoryList("Japanese", "Sushi Bars", "Restaurant"),
			ImageURL:    "https://s3-media2.fl.yelpcdn.com/bphoto/placeholder2.jpg",
			Address:     "456 Fish St, New York, NY 10002",
			Coordinates: models.Coordinates{Latitude: 40.7218, Longitude: -73.9960},
			FetchedAt:   now,
		},
		{
			ID:          "restaurant-test-3",
			Name:        "French Bistro",
			Rating:      4.7,
			Price:       "$$$$",
			Categories:  models.NewCategoryList("French", "Fine Dining", "Restaurant"),
			ImageURL:    "https://s3-media3.fl.yelpcdn.com/bphoto/placeholder3.jpg",
			Address:     "789 Gourmet Ave, New York, NY 10003",
			Coordinates: models.Coordinates{Latitude: 40.7318, Longitude: -73.9860},
			FetchedAt:   now,
		},
		{
			ID:          "restaurant-test-4",
			Name:        "Taco Shop",
			Rating:      4.0,
			Price:       "$",
			Categories:  models.NewCategoryList("Mexican", "Restaurant"),
			ImageURL:    "https://s3-media4.fl.yelpcdn.com/bphoto/placeholder4.jpg",
			Address:     "101 Salsa St, New York, NY 10004",
			Coordinates: models.Coordinates{Latitude: 40.7418, Longitude: -73.9760},
			FetchedAt:   now,
		},
		{
			ID:          "restaurant-test-5",
			Name:        "Burger Joint",
			Rating:      4.3,
			Price:       "$$",
			Categories:  models.NewCategoryList("American", "Burgers", "Restaurant"),
			ImageURL:    "https://s3-media5.fl.yelpcdn.com/bphoto/placeholder5.jpg",
			Address:     "222 Patty Ln, New York, NY 10005",
			Coordinates: models.Coordinates{Latitude: 40.7518, Longitude: -73.9660},
			FetchedAt:   now,
		},
	}
}

// SyntheticVenue returns a deterministic detail record for a venue ID,
// including reviews. IDs prefixed "bar-" get the bar shape.
func SyntheticVenue(venueID string) *models.Venue {
	if strings.HasPrefix(venueID, "bar-") {
		return &models.Venue{
			ID:          venueID,
			Name:        "Test Bar",
			Rating:      4.5,
			Price:       "$$$",
			Categories:  models.NewCategoryList("Cocktail Bar", "Wine Bar"),
			ImageURL:    "https://s3-media1.fl.yelpcdn.com/bphoto/placeholder.jpg",
			Photos:      []string{"https://s3-media1.fl.yelpcdn.com/bphoto/placeholder1.jpg", "https://s3-media2.fl.yelpcdn.com/bphoto/placeholder2.jpg"},
			Address:     "123 Bar Ave",
			Phone:       "+12125551234",
			URL:         "https://www.yelp.com/biz/test-business",
			Coordinates: models.Coordinates{Latitude: 40.7128, Longitude: -74.0060},
			Reviews:     SyntheticReviews(venueID),
			FetchedAt:   time.Now(),
		}
	}

	return &models.Venue{
		ID:          venueID,
		Name:        "Test Restaurant",
		Rating:      4.5,
		Price:       "$$$",
		Categories:  models.NewCategoryList("Italian", "Restaurant"),
		ImageURL:    "https://s3-media1.fl.yelpcdn.com/bphoto/placeholder.jpg",
		Photos:      []string{"https://s3-media1.fl.yelpcdn.com/bphoto/placeholder1.jpg", "https://s3-media2.fl.yelpcdn.com/bphoto/placeholder2.jpg"},
		Address:     "123 Test Ave",
		Phone:       "+12125551234",
		URL:         "https://www.yelp.com/biz/test-business",
		Coordinates: models.Coordinates{Latitude: 40.7128, Longitude: -74.0060},
		Reviews:     SyntheticReviews(venueID),
		FetchedAt:   time.Now(),
	}
}

// SyntheticReviews returns fixed reviews matching the venue type of the ID.
func SyntheticReviews(venueID string) []models.Review {
	if strings.HasPrefix(venueID, "bar-") {
		return []models.Review{
			{
				Rating: 5,
				Text:   "This bar has an amazing atmosphere! The lighting is perfect for an evening out, and the staff is attentive without being intrusive. The cocktails are creative and delicious - definitely try their signature Old Fashioned variation.",
			},
			{
				Rating: 4,
				Text:   "Great drinks and atmosphere. It can get a bit crowded on weekend evenings, but the vibe is worth it. The wine selection is impressive and they have knowledgeable sommeliers who provide excellent recommendations.",
			},
			{
				Rating: 5,
				Text:   "One of the coziest bars in the city. The dim lighting and jazz music create a wonderful atmosphere. Their craft beer selection is excellent and constantly rotating with seasonal offerings!",
			},
		}
	}

	return []models.Review{
		{
			Rating: 5,
			Text:   "This restaurant has an amazing ambiance! The lighting is perfect for a romantic dinner, and the staff is attentive without being intrusive. The pasta is authentic and delicious - definitely try the homemade fettuccine.",
		},
		{
			Rating: 4,
			Text:   "Great food and atmosphere. It can get a bit crowded on weekend evenings, but the intimate setting makes it perfect for date night. The wine selection is impressive and pairs wonderfully with their dishes.",
		},
		{
			Rating: 5,
			Text:   "One of the coziest Italian spots in the city. The dim lighting and quiet background music create a wonderful atmosphere. Their tiramisu is to die for!",
		},
	}
}
