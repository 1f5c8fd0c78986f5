// internal/interests/models.go
// Interest taxonomy data model shared by the scoring engine and session flow

package interests

import (
	"errors"
	"fmt"
)

// Category is one of the four fixed interest categories.
type Category string

const (
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
)

// Categories returns the four fixed categories in canonical order.
func Categories() []Category {
	return []Category{CategoryEntertainment, CategorySports, CategoryFood, CategoryTravel}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEntertainment, CategorySports, CategoryFood, CategoryTravel:
		return true
	}
	return false
}

// InterestTag is static reference data describing one selectable interest.
// It is owned by the presentation layer and passed into the core by value.
type InterestTag struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	DisplayName string   `json:"name"`
	Icon        string   `json:"icon"`
}

// WeightedChoice is one interest a participant picked, with how much
// they care about it on a 1..5 scale.
type WeightedChoice struct {
	TagID      string   `json:"id"`
	Category   Category `json:"category"`
	Importance int      `json:"importance" validate:"min=1,max=5"`
}

// Selection is a participant's ordered set of weighted choices,
// unique by tag id.
type Selection []WeightedChoice

var (
	ErrDuplicateTag         = errors.New("duplicate tag id in selection")
	ErrUnknownTag           = errors.New("unknown tag id")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrImportanceOutOfRange = errors.New("importance must be between 1 and 5")
)

// Validate checks uniqueness, importance range and, when a taxonomy is
// provided, that every tag id belongs to it.
func (s Selection) Validate(taxonomy Taxonomy) error {
	seen := make(map[string]bool, len(s))
	for _, choice := range s {
		if seen[choice.TagID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTag, choice.TagID)
		}
		seen[choice.TagID] = true

		if choice.Importance < 1 || choice.Importance > 5 {
			return fmt.Errorf("%w: %s has %d", ErrImportanceOutOfRange, choice.TagID, choice.Importance)
		}

		if !choice.Category.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, choice.Category)
		}

		if taxonomy != nil && !taxonomy.Contains(choice.TagID) {
			return fmt.Errorf("%w: %s", ErrUnknownTag, choice.TagID)
		}
	}
	return nil
}

// IDs returns the tag ids in selection order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for _, choice := range s {
		ids = append(ids, choice.TagID)
	}
	return ids
}

// IDSet returns the tag ids as a lookup set.
func (s Selection) IDSet() map[string]bool {
	set := make(map[string]bool, len(s))
	for _, choice := range s {
		set[choice.TagID] = true
	}
	return set
}

// ByCategory returns the subset of choices in the given category,
// preserving selection order.
func (s Selection) ByCategory(cat Category) Selection {
	var out Selection
	for _, choice := range s {
		if choice.Category == cat {
			out = append(out, choice)
		}
	}
	return out
}

// Importance returns the importance the participant assigned to the
// tag, or 0 if the tag is not in the selection.
func (s Selection) Importance(tagID string) int {
	for _, choice := range s {
		if choice.TagID == tagID {
			return choice.Importance
		}
	}
	return 0
}
