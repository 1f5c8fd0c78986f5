// internal/matching/models.go

package matching

import (
	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

// MatchResult is the full report produced by one engine run.
// CategoryScores always carries exactly the four fixed categories and
// every score sits in [0,100].
type MatchResult struct {
	OverallScore          int                          `json:"overallScore"`
	CategoryScores        map[interests.Category]int   `json:"categoryScores"`
	CommonInterests       []string                     `json:"commonInterests"`
	UniqueInterests       UniqueInterests              `json:"uniqueInterests"`
	RecommendedActivities []ScoredActivity             `json:"recommendedActivities"`
}

// UniqueInterests lists the tag ids held by exactly one participant.
type UniqueInterests struct {
	Participant1 []string `json:"participant1"`
	Participant2 []string `json:"participant2"`
}

// Activity is one entry of the static activity catalog, supplied to
// the engine as read-only configuration.
type Activity struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    interests.Category `json:"category"`
	Description string             `json:"description"`
	Duration    string             `json:"duration"`
	Cost        string             `json:"cost"`
}

// ScoredActivity is a catalog activity annotated with its computed score.
type ScoredActivity struct {
	Activity
	MatchScore int `json:"matchScore"`
}

// MatchLevel maps an overall score to its display tier.
func MatchLevel(score int) string {
	switch {
	case score >= 90:
		return "Perfect Match 💕"
	case score >= 80:
		return "Deep Connection 💖"
	case score >= 70:
		return "Great Compatibility 💗"
	case score >= 60:
		return "Good Attraction 💓"
	default:
		return "Room to Grow 💝"
	}
}
