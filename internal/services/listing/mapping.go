package listing

import "strings"

// CategoriesForType maps a venue type and subtype to provider category
// aliases. Bar subtypes get their specific alias; restaurant subtypes are
// combined with the general restaurants alias.
func CategoriesForType(venueType, subtype string) string {
	if venueType == "bar" {
		switch subtype {
		case "cocktail":
			return "cocktailbars"
		case "wine":
			return "wine_bars"
		case "beer":
			return "beerbar,breweries"
		case "pub":
			return "pubs"
		case "sports":
			return "sportsbars"
		case "lounge":
			return "lounges"
		default:
			return "bars"
		}
	}

	if subtype != "" {
		return subtype + ",restaurants"
	}
	return "restaurants"
}

// isBarSearch reports whether the category aliases describe a bar search.
func isBarSearch(categories string) bool {
	switch categories {
	case "cocktailbars", "wine_bars", "beerbar", "beerbar,breweries", "pubs", "sportsbars", "lounges":
		return true
	}
	return strings.Contains(categories, "bar")
}

// isRestaurantSearch reports whether the category aliases or explicit type
// describe a restaurant search.
func isRestaurantSearch(categories, venueType string) bool {
	return strings.Contains(categories, "restaurant") || venueType == "restaurant"
}

// barCategoryTerms and restaurantCategoryTerms post-filter search results by
// the provider's human-readable category titles.
var (
	barCategoryTerms        = []string{"bar", "pub", "lounge", "beer", "wine", "cocktail"}
	restaurantCategoryTerms = []string{"restaurant", "food", "cafe"}
)
