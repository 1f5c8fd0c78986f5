// internal/matching/engine.go
// Deterministic multi-factor compatibility scoring over two weighted selections

package matching

import (
	"math"
	"sort"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

// Engine computes a MatchResult from two participants' selections.
// CalculateMatch is pure: no I/O, no hidden state, and equal inputs
// always produce identical output. Empty selections yield a zeroed
// result, never an error.
type Engine interface {
	CalculateMatch(selection1, selection2 interests.Selection) *MatchResult
}

type engine struct {
	catalog []Activity
	related map[interests.Category][]string
}

// NewEngine creates an engine over the given activity catalog. Pass
// DefaultCatalog() for the built-in table; tests may inject synthetic
// catalogs.
func NewEngine(catalog []Activity) Engine {
	return &engine{
		catalog: catalog,
		related: relatedTags,
	}
}

// importanceWeights is the fixed monotonic importance → weight lookup.
var importanceWeights = map[int]float64{
	1: 0.5,
	2: 0.8,
	3: 1.0,
	4: 1.2,
	5: 1.5,
}

func importanceWeight(importance int) float64 {
	if w, ok := importanceWeights[importance]; ok {
		return w
	}
	if importance < 1 {
		return importanceWeights[1]
	}
	return importanceWeights[5]
}

// interpolatedWeight extends the integer lookup to fractional mean
// importances by linear interpolation between the anchor weights.
func interpolatedWeight(importance float64) float64 {
	if importance <= 1 {
		return importanceWeights[1]
	}
	if importance >= 5 {
		return importanceWeights[5]
	}
	lo := int(math.Floor(importance))
	frac := importance - float64(lo)
	return importanceWeights[lo] + (importanceWeights[lo+1]-importanceWeights[lo])*frac
}

// consistency is 1.0 for equal importances and falls linearly to 0 at
// a difference of 5.
func consistency(imp1, imp2 int) float64 {
	return math.Max(0, 1-0.2*math.Abs(float64(imp1-imp2)))
}

func (e *engine) CalculateMatch(selection1, selection2 interests.Selection) *MatchResult {
	common := commonIDs(selection1, selection2)

	categoryScores := make(map[interests.Category]int, 4)
	for _, cat := range interests.Categories() {
		categoryScores[cat] = categoryScore(
			selection1.ByCategory(cat),
			selection2.ByCategory(cat),
		)
	}

	return &MatchResult{
		OverallScore:    overallScore(categoryScores, selection1, selection2, common),
		CategoryScores:  categoryScores,
		CommonInterests: common,
		UniqueInterests: UniqueInterests{
			Participant1: exclusiveIDs(selection1, selection2),
			Participant2: exclusiveIDs(selection2, selection1),
		},
		RecommendedActivities: e.recommendActivities(selection1, selection2, categoryScores),
	}
}

// commonIDs returns the intersection of tag ids, sorted so the output
// is identical regardless of argument order.
func commonIDs(s1, s2 interests.Selection) []string {
	set2 := s2.IDSet()
	common := make([]string, 0)
	for _, choice := range s1 {
		if set2[choice.TagID] {
			common = append(common, choice.TagID)
		}
	}
	sort.Strings(common)
	return common
}

// exclusiveIDs returns the tag ids in s1 but not s2, in s1's order.
func exclusiveIDs(s1, s2 interests.Selection) []string {
	set2 := s2.IDSet()
	out := make([]string, 0)
	for _, choice := range s1 {
		if !set2[choice.TagID] {
			out = append(out, choice.TagID)
		}
	}
	return out
}

// avgNormalizedImportance is sum(importance) / (count*5), 0 for an
// empty subset.
func avgNormalizedImportance(s interests.Selection) float64 {
	if len(s) == 0 {
		return 0
	}
	total := 0
	for _, choice := range s {
		total += choice.Importance
	}
	return float64(total) / float64(len(s)*5)
}

func meanImportance(s interests.Selection) float64 {
	if len(s) == 0 {
		return 0
	}
	total := 0
	for _, choice := range s {
		total += choice.Importance
	}
	return float64(total) / float64(len(s))
}

// categoryScore blends overlap, weighted common interest, activity
// level and unique-interest compatibility for one category. The
// min(100, ...) clamp is applied once at the end; sub-terms are left
// unclamped on purpose.
func categoryScore(cat1, cat2 interests.Selection) int {
	if len(cat1) == 0 && len(cat2) == 0 {
		return 0
	}

	set1, set2 := cat1.IDSet(), cat2.IDSet()

	union := make(map[string]bool, len(set1)+len(set2))
	var common []string
	for id := range set1 {
		union[id] = true
		if set2[id] {
			common = append(common, id)
		}
	}
	for id := range set2 {
		union[id] = true
	}

	overlap := float64(len(common)) / math.Max(float64(len(union)), 1)

	var commonWeighted float64
	if len(common) > 0 {
		var sum float64
		for _, id := range common {
			imp1, imp2 := cat1.Importance(id), cat2.Importance(id)
			sum += (importanceWeight(imp1) + importanceWeight(imp2)) * consistency(imp1, imp2) * 0.5
		}
		commonWeighted = sum / float64(len(common))
	}

	norm1, norm2 := avgNormalizedImportance(cat1), avgNormalizedImportance(cat2)
	activity := 0.5 * (norm1 + norm2)

	uniqueCompat := 1.0
	exclusive1, exclusive2 := 0, 0
	for id := range set1 {
		if !set2[id] {
			exclusive1++
		}
	}
	for id := range set2 {
		if !set1[id] {
			exclusive2++
		}
	}
	if exclusive1 > 0 || exclusive2 > 0 {
		switch {
		case norm1 > 0.6 && norm2 > 0.6:
			uniqueCompat = 0.3
		case math.Abs(norm1-norm2) > 0.4:
			uniqueCompat = 0.6
		default:
			uniqueCompat = 0.8
		}
	}

	raw := 100 * (0.4*overlap + 0.4*commonWeighted + 0.1*activity + 0.1*uniqueCompat)
	return int(math.Round(math.Min(100, raw)))
}

// overallScore combines the per-category scores weighted by how much
// each participant invests in the category, plus consistency,
// diversity and common-interest bonuses.
func overallScore(categoryScores map[interests.Category]int, s1, s2 interests.Selection, common []string) int {
	weights1 := categoryWeights(s1)
	weights2 := categoryWeights(s2)

	var num, den float64
	for _, cat := range interests.Categories() {
		avg := (weights1[cat] + weights2[cat]) / 2
		num += float64(categoryScores[cat]) * avg
		den += avg
	}
	var weightedAverage float64
	if den > 0 {
		weightedAverage = num / den
	}

	var consistencyBonus float64
	if len(common) > 0 {
		var sum float64
		for _, id := range common {
			sum += consistency(s1.Importance(id), s2.Importance(id))
		}
		consistencyBonus = math.Round(10 * sum / float64(len(common)))
	}

	touched := make(map[interests.Category]bool)
	for _, choice := range s1 {
		touched[choice.Category] = true
	}
	for _, choice := range s2 {
		touched[choice.Category] = true
	}
	diversityBonus := math.Round(5 * float64(len(touched)) / 4)

	commonBonus := math.Min(15, 3*float64(len(common)))

	return int(math.Round(math.Min(100, weightedAverage+consistencyBonus+diversityBonus+commonBonus)))
}

// categoryWeights is the participant's importance distribution across
// the four categories, normalized by their total importance.
func categoryWeights(s interests.Selection) map[interests.Category]float64 {
	weights := make(map[interests.Category]float64, 4)
	total := 0
	for _, choice := range s {
		total += choice.Importance
	}
	if total == 0 {
		return weights
	}
	for _, choice := range s {
		weights[choice.Category] += float64(choice.Importance) / float64(total)
	}
	return weights
}

// recommendActivities scores every catalog activity, keeps those above
// the floor, and returns the top entries sorted by score with catalog
// order as tie-break.
func (e *engine) recommendActivities(s1, s2 interests.Selection, categoryScores map[interests.Category]int) []ScoredActivity {
	scored := make([]ScoredActivity, 0)

	for _, activity := range e.catalog {
		catScore := float64(categoryScores[activity.Category])

		var relatedScore float64
		for _, tagID := range e.related[activity.Category] {
			imp1, imp2 := s1.Importance(tagID), s2.Importance(tagID)
			switch {
			case imp1 > 0 && imp2 > 0:
				relatedScore += (importanceWeight(imp1) + importanceWeight(imp2)) * consistency(imp1, imp2) * 15
			case imp1 > 0:
				relatedScore += importanceWeight(imp1) * 5
			case imp2 > 0:
				relatedScore += importanceWeight(imp2) * 5
			}
		}

		prefScore := categoryPreference(
			s1.ByCategory(activity.Category),
			s2.ByCategory(activity.Category),
		)

		matchScore := int(math.Round(0.5*catScore + 0.3*relatedScore + 0.2*prefScore))
		if matchScore > 25 {
			scored = append(scored, ScoredActivity{Activity: activity, MatchScore: matchScore})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > 6 {
		scored = scored[:6]
	}
	return scored
}

// categoryPreference reflects how much both sides care about the
// activity's category, with a bonus when both hold at least one tag
// in it. A side with no tags in the category contributes nothing.
func categoryPreference(cat1, cat2 interests.Selection) float64 {
	var sum float64
	if len(cat1) > 0 {
		sum += interpolatedWeight(meanImportance(cat1)) * 50
	}
	if len(cat2) > 0 {
		sum += interpolatedWeight(meanImportance(cat2)) * 50
	}
	score := 0.5 * sum
	if len(cat1) > 0 && len(cat2) > 0 {
		score += 20
	}
	return math.Min(100, score)
}
