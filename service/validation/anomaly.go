package validation

import "math"

// Anomaly is the result of the statistical anomaly detector.
type Anomaly struct {
	IsAnomaly  bool    `json:"isAnomaly"`
	Confidence float64 `json:"confidence"`
	ZScore     float64 `json:"zScore"`
}

// anomalyZThreshold is the z-score beyond which a value is flagged.
const anomalyZThreshold = 3.0

// DetectAnomaly computes a population-mean z-score of value against the
// historical series. A zero standard deviation or empty history never
// divides by zero and yields "not an anomaly".
func DetectAnomaly(value float64, historical []float64) Anomaly {
	if len(historical) == 0 {
		return Anomaly{}
	}
	var sum float64
	for _, v := range historical {
		sum += v
	}
	mean := sum / float64(len(historical))

	var variance float64
	for _, v := range historical {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(historical))
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return Anomaly{}
	}

	z := math.Abs(value-mean) / stddev
	return Anomaly{
		IsAnomaly:  z > anomalyZThreshold,
		Confidence: math.Min(z/5, 1.0),
		ZScore:     z,
	}
}
