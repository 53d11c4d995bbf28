package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAnomaly(t *testing.T) {
	historical := []float64{100, 110, 90, 105, 95}

	// Mean 100, stddev ~7.07; 1000 is far outside three sigma.
	anomaly := DetectAnomaly(1000, historical)
	assert.True(t, anomaly.IsAnomaly)
	assert.InDelta(t, 1.0, anomaly.Confidence, 1e-9)
	assert.Greater(t, anomaly.ZScore, anomalyZThreshold)

	anomaly = DetectAnomaly(102, historical)
	assert.False(t, anomaly.IsAnomaly)
	assert.Less(t, anomaly.ZScore, anomalyZThreshold)
	assert.Less(t, anomaly.Confidence, 1.0)
}

func TestDetectAnomalyDegenerateSeries(t *testing.T) {
	// Empty history can never flag.
	anomaly := DetectAnomaly(1000, nil)
	assert.False(t, anomaly.IsAnomaly)
	assert.Zero(t, anomaly.Confidence)
	assert.Zero(t, anomaly.ZScore)

	// Constant history has zero spread; no division by zero, no flag.
	anomaly = DetectAnomaly(1000, []float64{50, 50, 50})
	assert.False(t, anomaly.IsAnomaly)
	assert.Zero(t, anomaly.ZScore)
}

func TestDetectAnomalyConfidenceScaling(t *testing.T) {
	historical := []float64{100, 110, 90, 105, 95}

	near := DetectAnomaly(110, historical)
	far := DetectAnomaly(150, historical)
	assert.Greater(t, far.Confidence, near.Confidence)
	assert.LessOrEqual(t, far.Confidence, 1.0)
}
