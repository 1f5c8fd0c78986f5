// internal/matching/engine_test.go

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

func choice(id string, cat interests.Category, importance int) interests.WeightedChoice {
	return interests.WeightedChoice{TagID: id, Category: cat, Importance: importance}
}

func TestCalculateMatchIdenticalSelections(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel := interests.Selection{choice("movies", interests.CategoryEntertainment, 5)}
	result := engine.CalculateMatch(sel, sel)

	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, 100, result.CategoryScores[interests.CategoryEntertainment])
	assert.Equal(t, 0, result.CategoryScores[interests.CategorySports])
	assert.Equal(t, 0, result.CategoryScores[interests.CategoryFood])
	assert.Equal(t, 0, result.CategoryScores[interests.CategoryTravel])
	assert.Equal(t, []string{"movies"}, result.CommonInterests)
	assert.Empty(t, result.UniqueInterests.Participant1)
	assert.Empty(t, result.UniqueInterests.Participant2)
}

func TestCalculateMatchEmptySelections(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	result := engine.CalculateMatch(interests.Selection{}, interests.Selection{})

	assert.Equal(t, 0, result.OverallScore)
	for _, cat := range interests.Categories() {
		assert.Equal(t, 0, result.CategoryScores[cat])
	}
	assert.Empty(t, result.CommonInterests)
	assert.Empty(t, result.UniqueInterests.Participant1)
	assert.Empty(t, result.UniqueInterests.Participant2)
	assert.Empty(t, result.RecommendedActivities)
}

func TestCalculateMatchDisjointCategories(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel1 := interests.Selection{choice("movies", interests.CategoryEntertainment, 3)}
	sel2 := interests.Selection{choice("basketball", interests.CategorySports, 3)}

	result := engine.CalculateMatch(sel1, sel2)

	assert.Equal(t, 12, result.OverallScore)
	assert.Equal(t, 9, result.CategoryScores[interests.CategoryEntertainment])
	assert.Equal(t, 9, result.CategoryScores[interests.CategorySports])
	assert.Equal(t, 0, result.CategoryScores[interests.CategoryFood])
	assert.Equal(t, 0, result.CategoryScores[interests.CategoryTravel])
	assert.Empty(t, result.CommonInterests)
	assert.Equal(t, []string{"movies"}, result.UniqueInterests.Participant1)
	assert.Equal(t, []string{"basketball"}, result.UniqueInterests.Participant2)

	// Every candidate lands below the recommendation floor
	assert.Empty(t, result.RecommendedActivities)
}

func TestCalculateMatchImportanceGap(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel1 := interests.Selection{choice("movies", interests.CategoryEntertainment, 5)}
	sel2 := interests.Selection{choice("movies", interests.CategoryEntertainment, 1)}

	result := engine.CalculateMatch(sel1, sel2)

	assert.Equal(t, 64, result.CategoryScores[interests.CategoryEntertainment])
	assert.Equal(t, 70, result.OverallScore)
}

func TestCalculateMatchSymmetry(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel1 := interests.Selection{
		choice("movies", interests.CategoryEntertainment, 5),
		choice("music", interests.CategoryEntertainment, 3),
		choice("basketball", interests.CategorySports, 2),
		choice("coffee", interests.CategoryFood, 4),
	}
	sel2 := interests.Selection{
		choice("movies", interests.CategoryEntertainment, 4),
		choice("hiking", interests.CategorySports, 5),
		choice("coffee", interests.CategoryFood, 2),
		choice("beach", interests.CategoryTravel, 3),
	}

	forward := engine.CalculateMatch(sel1, sel2)
	backward := engine.CalculateMatch(sel2, sel1)

	assert.Equal(t, forward.OverallScore, backward.OverallScore)
	assert.Equal(t, forward.CategoryScores, backward.CategoryScores)
	assert.Equal(t, forward.CommonInterests, backward.CommonInterests)
	assert.Equal(t, []string{"coffee", "movies"}, forward.CommonInterests)

	assert.Equal(t, forward.UniqueInterests.Participant1, backward.UniqueInterests.Participant2)
	assert.Equal(t, forward.UniqueInterests.Participant2, backward.UniqueInterests.Participant1)
}

func TestCalculateMatchDeterministic(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel1 := interests.Selection{
		choice("games", interests.CategoryEntertainment, 4),
		choice("yoga", interests.CategorySports, 2),
		choice("dessert", interests.CategoryFood, 5),
	}
	sel2 := interests.Selection{
		choice("games", interests.CategoryEntertainment, 4),
		choice("museum", interests.CategoryTravel, 3),
	}

	first := engine.CalculateMatch(sel1, sel2)
	second := engine.CalculateMatch(sel1, sel2)

	assert.Equal(t, first, second)
}

func TestCalculateMatchScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel1 := interests.Selection{
		choice("movies", interests.CategoryEntertainment, 5),
		choice("music", interests.CategoryEntertainment, 5),
		choice("hiking", interests.CategorySports, 5),
		choice("coffee", interests.CategoryFood, 5),
		choice("beach", interests.CategoryTravel, 5),
	}
	sel2 := interests.Selection{
		choice("movies", interests.CategoryEntertainment, 5),
		choice("music", interests.CategoryEntertainment, 5),
		choice("hiking", interests.CategorySports, 5),
		choice("coffee", interests.CategoryFood, 5),
		choice("beach", interests.CategoryTravel, 5),
	}

	result := engine.CalculateMatch(sel1, sel2)

	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	for cat, score := range result.CategoryScores {
		assert.GreaterOrEqualf(t, score, 0, "category %s", cat)
		assert.LessOrEqualf(t, score, 100, "category %s", cat)
	}
	for _, activity := range result.RecommendedActivities {
		assert.GreaterOrEqual(t, activity.MatchScore, 0)
		assert.LessOrEqual(t, activity.MatchScore, 100)
	}
}

func TestRecommendationsMatchingCategory(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel := interests.Selection{choice("movies", interests.CategoryEntertainment, 5)}
	result := engine.CalculateMatch(sel, sel)

	require.Len(t, result.RecommendedActivities, 3)
	for _, activity := range result.RecommendedActivities {
		assert.Equal(t, interests.CategoryEntertainment, activity.Category)
		assert.Equal(t, 83, activity.MatchScore)
	}

	// Equal scores keep catalog order
	assert.Equal(t, "movie_night", result.RecommendedActivities[0].ID)
	assert.Equal(t, "concert", result.RecommendedActivities[1].ID)
	assert.Equal(t, "game_night", result.RecommendedActivities[2].ID)
}

func TestRecommendationsSortedAndCapped(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	sel := interests.Selection{
		choice("movies", interests.CategoryEntertainment, 5),
		choice("music", interests.CategoryEntertainment, 5),
		choice("hiking", interests.CategorySports, 5),
		choice("coffee", interests.CategoryFood, 5),
		choice("cooking", interests.CategoryFood, 5),
		choice("beach", interests.CategoryTravel, 5),
		choice("museum", interests.CategoryTravel, 5),
	}

	result := engine.CalculateMatch(sel, sel)

	require.NotEmpty(t, result.RecommendedActivities)
	assert.LessOrEqual(t, len(result.RecommendedActivities), 6)
	for i := 1; i < len(result.RecommendedActivities); i++ {
		assert.GreaterOrEqual(t,
			result.RecommendedActivities[i-1].MatchScore,
			result.RecommendedActivities[i].MatchScore)
	}
	for _, activity := range result.RecommendedActivities {
		assert.Greater(t, activity.MatchScore, 25)
	}
}

func TestMatchLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Perfect Match 💕"},
		{90, "Perfect Match 💕"},
		{89, "Deep Connection 💖"},
		{80, "Deep Connection 💖"},
		{79, "Great Compatibility 💗"},
		{70, "Great Compatibility 💗"},
		{69, "Good Attraction 💓"},
		{60, "Good Attraction 💓"},
		{59, "Room to Grow 💝"},
		{0, "Room to Grow 💝"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchLevel(tt.score))
	}
}

func TestImportanceWeight(t *testing.T) {
	assert.Equal(t, 0.5, importanceWeight(1))
	assert.Equal(t, 1.0, importanceWeight(3))
	assert.Equal(t, 1.5, importanceWeight(5))

	// Out-of-range importances clamp to the nearest anchor
	assert.Equal(t, 0.5, importanceWeight(0))
	assert.Equal(t, 1.5, importanceWeight(9))
}

func TestConsistency(t *testing.T) {
	assert.InDelta(t, 1.0, consistency(3, 3), 1e-9)
	assert.InDelta(t, 0.8, consistency(3, 4), 1e-9)
	assert.InDelta(t, 0.2, consistency(1, 5), 1e-9)
}
