package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultCategory is the generic label substituted when a venue arrives with
// no usable categories. The category set is never empty after normalization.
const DefaultCategory = "Restaurant"

// Venue represents a restaurant or bar from the listing provider, normalized
// into canonical form at ingestion.
type Venue struct {
	ID          string          `json:"id" badgerhold:"key"`
	Name        string          `json:"name"`
	Rating      float64         `json:"rating"`
	Price       string          `json:"price"` // "$".."$$$$"
	Categories  CategoryList    `json:"categories"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone,omitempty"`
	URL         string          `json:"url,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Photos      []string        `json:"photos,omitempty"`
	Coordinates Coordinates     `json:"coordinates"`
	Reviews     []Review        `json:"reviews,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"` // source payload for provenance
	FetchedAt   time.Time       `json:"fetched_at"`
}

// Coordinates is a geographic point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Review is a single user review from the listing provider
type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// PriceTier returns the ordinal price tier (1-4) derived from the "$" string,
// or 0 when the price is unknown.
func (v *Venue) PriceTier() int {
	return len(v.Price)
}

// CategoryList is a set of category labels. The listing provider sends
// categories either as plain strings or as {title: ...} records; both decode
// into plain strings here so nothing downstream branches on shape.
type CategoryList []string

// UnmarshalJSON accepts a JSON array of strings and/or {title} records, or a
// single bare string, and normalizes to a deduplicated list of labels.
func (c *CategoryList) UnmarshalJSON(data []byte) error {
	// Bare string form
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = normalizeCategories([]string{single})
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	labels := make([]string, 0, len(raw))
	for _, item := range raw {
		var label string
		if err := json.Unmarshal(item, &label); err == nil {
			labels = append(labels, label)
			continue
		}

		var record struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(item, &record); err == nil {
			labels = append(labels, record.Title)
		}
		// Anything else is silently dropped; normalization backfills the
		// generic label if the set ends up empty.
	}

	*c = normalizeCategories(labels)
	return nil
}

// NewCategoryList normalizes a set of raw labels into a canonical category list.
func NewCategoryList(labels ...string) CategoryList {
	return normalizeCategories(labels)
}

// normalizeCategories trims and dedupes labels, falling back to the generic
// label so the set is never empty.
func normalizeCategories(labels []string) CategoryList {
	seen := make(map[string]bool, len(labels))
	result := make(CategoryList, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, label)
	}

	if len(result) == 0 {
		return CategoryList{DefaultCategory}
	}
	return result
}

// ContainsAny reports whether any category label contains any of the given
// lowercase terms (substring match, case-insensitive).
func (c CategoryList) ContainsAny(terms ...string) bool {
	for _, label := range c {
		lower := strings.ToLower(label)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
