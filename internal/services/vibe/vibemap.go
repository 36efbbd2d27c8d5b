package vibe

import "strings"

// SearchParams maps a vibe label to listing-provider search parameters.
type SearchParams struct {
	Attributes []string
	Categories []string
	Keywords   []string
}

// vibeMap maps user-friendly vibe labels to listing search parameters.
var vibeMap = map[string]SearchParams{
	"romantic": {
		Attributes: []string{"romantic", "intimate"},
		Categories: []string{"wine_bars", "french", "italian", "newamerican"},
		Keywords:   []string{"candlelight", "intimate", "romantic", "date night"},
	},
	"lively": {
		Attributes: []string{"lively", "loud"},
		Categories: []string{"bars", "newamerican", "tapas", "spanish"},
		Keywords:   []string{"energetic", "bustling", "vibrant", "happening"},
	},
	"cozy": {
		Attributes: []string{"cozy", "casual"},
		Categories: []string{"cafes", "bistro", "gastropubs", "italian"},
		Keywords:   []string{"warm", "homey", "comfortable", "relaxed"},
	},
	"upscale": {
		Attributes: []string{"upscale", "classy"},
		Categories: []string{"french", "newamerican", "steak", "japanese"},
		Keywords:   []string{"fine dining", "elegant", "refined", "sophisticated"},
	},
	"trendy": {
		Attributes: []string{"hot_and_new", "trending"},
		Categories: []string{"newamerican", "cocktailbars", "asian", "fusion"},
		Keywords:   []string{"hotspot", "popular", "instagram", "chic"},
	},
	"quiet": {
		Attributes: []string{"quiet"},
		Categories: []string{"wine_bars", "french", "japanese", "tearooms"},
		Keywords:   []string{"peaceful", "quiet conversation", "calm", "serene"},
	},
	"outdoor": {
		Attributes: []string{"outdoor_seating", "restaurants_outdoor_seating"},
		Categories: []string{"restaurants", "bars", "cafes", "wineries"},
		Keywords:   []string{"patio", "rooftop", "garden", "al fresco"},
	},
	"casual": {
		Attributes: []string{"casual"},
		Categories: []string{"pizza", "sandwiches", "burgers", "tacos"},
		Keywords:   []string{"relaxed", "laid-back", "informal", "everyday"},
	},
	"hipster": {
		Attributes: []string{"hipster"},
		Categories: []string{"coffee", "vegan", "breweries"},
		Keywords:   []string{"artisanal", "craft", "local", "sustainable"},
	},
	"classic": {
		Attributes: []string{"traditional_cuisine"},
		Categories: []string{"italian", "french", "steak", "seafood"},
		Keywords:   []string{"old-school", "established", "timeless", "iconic"},
	},
}

// vibeOrder fixes the fallback scan order so partial matches are
// deterministic.
var vibeOrder = []string{
	"romantic", "lively", "cozy", "upscale", "trendy",
	"quiet", "outdoor", "casual", "hipster", "classic",
}

// MapVibeToSearchParams resolves a free-form vibe label to listing search
// parameters. Exact label match wins, then partial label containment, then
// keyword containment. Unmatched vibes return empty parameters.
func MapVibeToSearchParams(vibe string) SearchParams {
	lowerVibe := strings.ToLower(strings.TrimSpace(vibe))

	if params, ok := vibeMap[lowerVibe]; ok {
		return params
	}

	for _, mappedVibe := range vibeOrder {
		params := vibeMap[mappedVibe]
		if strings.Contains(lowerVibe, mappedVibe) || strings.Contains(mappedVibe, lowerVibe) {
			return params
		}

		for _, keyword := range params.Keywords {
			if strings.Contains(lowerVibe, keyword) || strings.Contains(keyword, lowerVibe) {
				return params
			}
		}
	}

	return SearchParams{}
}

// AttributesString formats the mapped attributes for the listing API.
func AttributesString(vibe string) string {
	return strings.Join(MapVibeToSearchParams(vibe).Attributes, ",")
}
