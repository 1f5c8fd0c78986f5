// internal/matching/catalog.go
// Static activity catalog and per-category related-tag tables

package matching

import (
	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

// DefaultCatalog returns the built-in date activity catalog, in the
// order used for tie-breaking recommendations.
func DefaultCatalog() []Activity {
	return []Activity{
		{
			ID:          "movie_night",
			Name:        "Movie Night",
			Category:    interests.CategoryEntertainment,
			Description: "Watch a romantic movie together and enjoy quality time",
			Duration:    "2-3 hours",
			Cost:        "Medium",
		},
		{
			ID:          "concert",
			Name:        "Concert",
			Category:    interests.CategoryEntertainment,
			Description: "Attend an exciting live concert",
			Duration:    "3-4 hours",
			Cost:        "High",
		},
		{
			ID:          "hiking_date",
			Name:        "Hiking Date",
			Category:    interests.CategorySports,
			Description: "Hike together and enjoy natural scenery",
			Duration:    "Half day",
			Cost:        "Low",
		},
		{
			ID:          "cooking_class",
			Name:        "Cooking Class",
			Category:    interests.CategoryFood,
			Description: "Learn to cook delicious meals together",
			Duration:    "2-3 hours",
			Cost:        "Medium",
		},
		{
			ID:          "beach_vacation",
			Name:        "Beach Vacation",
			Category:    interests.CategoryTravel,
			Description: "Enjoy sunshine, sand, and waves",
			Duration:    "Few days",
			Cost:        "High",
		},
		{
			ID:          "museum_visit",
			Name:        "Museum Visit",
			Category:    interests.CategoryTravel,
			Description: "Explore culture and history together",
			Duration:    "2-3 hours",
			Cost:        "Low",
		},
		{
			ID:          "game_night",
			Name:        "Game Night",
			Category:    interests.CategoryEntertainment,
			Description: "Play games together and enjoy friendly competition",
			Duration:    "2-3 hours",
			Cost:        "Low",
		},
		{
			ID:          "coffee_date",
			Name:        "Coffee Date",
			Category:    interests.CategoryFood,
			Description: "Enjoy a relaxing time at a coffee shop",
			Duration:    "1-2 hours",
			Cost:        "Low",
		},
	}
}

// relatedTags lists, per category, the tag ids that feed an activity's
// weighted related score.
var relatedTags = map[interests.Category][]string{
	interests.CategoryEntertainment: {"movies", "music", "games", "concerts", "theater", "art"},
	interests.CategorySports:        {"basketball", "football", "tennis", "swimming", "hiking", "yoga"},
	interests.CategoryFood:          {"chinese", "western", "japanese", "dessert", "coffee", "cooking"},
	interests.CategoryTravel:        {"beach", "mountains", "city", "countryside", "museum", "shopping"},
}
