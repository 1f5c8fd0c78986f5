package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesCalculated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_calculations_total",
			Help: "Total number of match calculations performed",
		},
	)

	overallScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_overall_scores",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendationCounts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_recommendations_per_match",
			Help:    "Number of recommended activities per match",
			Buckets: prometheus.LinearBuckets(0, 1, 7),
		},
	)
)

// RecordCalculation publishes metrics for one engine run. The engine
// itself stays pure; callers record after invoking it.
func RecordCalculation(result *MatchResult) {
	matchesCalculated.Inc()
	overallScores.Observe(float64(result.OverallScore))
	recommendationCounts.Observe(float64(len(result.RecommendedActivities)))
}
