// internal/interests/taxonomy.go
// Static interest taxonomy, supplied to the core as read-only configuration

package interests

// Taxonomy maps each category to its selectable tags. The core never
// mutates a taxonomy; callers may share one instance freely.
type Taxonomy map[Category][]InterestTag

// Contains reports whether any category carries the tag id.
func (t Taxonomy) Contains(tagID string) bool {
	for _, tags := range t {
		for _, tag := range tags {
			if tag.ID == tagID {
				return true
			}
		}
	}
	return false
}

// Tag looks up a tag by id.
func (t Taxonomy) Tag(tagID string) (InterestTag, bool) {
	for _, tags := range t {
		for _, tag := range tags {
			if tag.ID == tagID {
				return tag, true
			}
		}
	}
	return InterestTag{}, false
}

// DefaultTaxonomy returns the built-in interest table. Deployments can
// swap in their own via config, the engine only sees tag ids and
// categories.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		CategoryEntertainment: {
			{ID: "movies", Category: CategoryEntertainment, DisplayName: "Movies", Icon: "🎬"},
			{ID: "music", Category: CategoryEntertainment, DisplayName: "Music", Icon: "🎵"},
			{ID: "games", Category: CategoryEntertainment, DisplayName: "Gaming", Icon: "🎮"},
			{ID: "concerts", Category: CategoryEntertainment, DisplayName: "Concerts", Icon: "🎤"},
			{ID: "theater", Category: CategoryEntertainment, DisplayName: "Theater", Icon: "🎭"},
			{ID: "art", Category: CategoryEntertainment, DisplayName: "Art Exhibitions", Icon: "🎨"},
		},
		CategorySports: {
			{ID: "basketball", Category: CategorySports, DisplayName: "Basketball", Icon: "🏀"},
			{ID: "football", Category: CategorySports, DisplayName: "Football", Icon: "⚽"},
			{ID: "tennis", Category: CategorySports, DisplayName: "Tennis", Icon: "🎾"},
			{ID: "swimming", Category: CategorySports, DisplayName: "Swimming", Icon: "🏊"},
			{ID: "hiking", Category: CategorySports, DisplayName: "Hiking", Icon: "🥾"},
			{ID: "yoga", Category: CategorySports, DisplayName: "Yoga", Icon: "🧘"},
		},
		CategoryFood: {
			{ID: "chinese", Category: CategoryFood, DisplayName: "Chinese Food", Icon: "🥘"},
			{ID: "western", Category: CategoryFood, DisplayName: "Western Food", Icon: "🍝"},
			{ID: "japanese", Category: CategoryFood, DisplayName: "Japanese Food", Icon: "🍱"},
			{ID: "dessert", Category: CategoryFood, DisplayName: "Desserts", Icon: "🍰"},
			{ID: "coffee", Category: CategoryFood, DisplayName: "Coffee", Icon: "☕"},
			{ID: "cooking", Category: CategoryFood, DisplayName: "Cooking", Icon: "👨‍🍳"},
		},
		CategoryTravel: {
			{ID: "beach", Category: CategoryTravel, DisplayName: "Beach", Icon: "🏖️"},
			{ID: "mountains", Category: CategoryTravel, DisplayName: "Mountains", Icon: "🏔️"},
			{ID: "city", Category: CategoryTravel, DisplayName: "City", Icon: "🏙️"},
			{ID: "countryside", Category: CategoryTravel, DisplayName: "Countryside", Icon: "🌾"},
			{ID: "museum", Category: CategoryTravel, DisplayName: "Museums", Icon: "🏛️"},
			{ID: "shopping", Category: CategoryTravel, DisplayName: "Shopping", Icon: "🛍️"},
		},
	}
}
