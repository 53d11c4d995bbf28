package governance

import (
	"sort"

	"github.com/opsfabric/warden/model/decision"
)

// trustScore blends AI confidence, human adoption behaviour and realized
// outcome deviation into a saturating 0-100 composite.
func trustScore(config TrustScoreConfig, record *decision.Record, deviation *float64) float64 {
	score := config.ConfidenceWeight * record.AIConfidence

	switch record.Resolution() {
	case decision.ActionApprove:
		score += config.AdoptedScore
	case decision.ActionModify:
		score += config.ModifiedScore
	}

	if deviation != nil {
		buckets := append([]DeviationBucket(nil), config.DeviationBuckets...)
		sort.Slice(buckets, func(i, j int) bool { return buckets[i].MaxPercent < buckets[j].MaxPercent })
		for _, bucket := range buckets {
			if *deviation < bucket.MaxPercent {
				score += bucket.Score
				break
			}
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// resultDeviation computes |actual - expected| / expected * 100 from the
// "value" entries of both result maps. It returns nil when either value is
// absent or the expected value is zero.
func resultDeviation(actual, expected map[string]interface{}) *float64 {
	actualValue, hasActual := numericValue(actual)
	expectedValue, hasExpected := numericValue(expected)
	if !hasActual || !hasExpected || expectedValue == 0 {
		return nil
	}
	deviation := (actualValue - expectedValue) / expectedValue * 100
	if deviation < 0 {
		deviation = -deviation
	}
	return &deviation
}

func numericValue(m map[string]interface{}) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch actual := m["value"].(type) {
	case float64:
		return actual, true
	case int:
		return float64(actual), true
	case int64:
		return float64(actual), true
	}
	return 0, false
}
