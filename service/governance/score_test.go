package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsfabric/warden/model/decision"
)

func TestResultDeviation(t *testing.T) {
	deviation := resultDeviation(
		map[string]interface{}{"value": 104.0},
		map[string]interface{}{"value": 100.0},
	)
	if assert.NotNil(t, deviation) {
		assert.InDelta(t, 4.0, *deviation, 1e-9)
	}

	// Undershoot is measured as magnitude.
	deviation = resultDeviation(
		map[string]interface{}{"value": 80.0},
		map[string]interface{}{"value": 100.0},
	)
	if assert.NotNil(t, deviation) {
		assert.InDelta(t, 20.0, *deviation, 1e-9)
	}

	assert.Nil(t, resultDeviation(nil, map[string]interface{}{"value": 100.0}))
	assert.Nil(t, resultDeviation(map[string]interface{}{"value": 104.0}, nil))
	assert.Nil(t, resultDeviation(
		map[string]interface{}{"value": 104.0},
		map[string]interface{}{"value": 0.0},
	))
	assert.Nil(t, resultDeviation(
		map[string]interface{}{"value": "n/a"},
		map[string]interface{}{"value": 100.0},
	))
}

func TestTrustScoreBuckets(t *testing.T) {
	config := DefaultTrustScoreConfig()
	record := &decision.Record{
		AIConfidence: 0.5,
		ApprovalChain: []decision.ChainEntry{
			{Action: decision.ActionApprove, Actor: "mgr-1"},
		},
	}

	score := func(deviation float64) float64 {
		return trustScore(config, record, &deviation)
	}

	base := config.ConfidenceWeight*0.5 + config.AdoptedScore
	assert.InDelta(t, base+30, score(5), 1e-9)
	assert.InDelta(t, base+20, score(15), 1e-9)
	assert.InDelta(t, base+10, score(25), 1e-9)
	// Beyond the last bucket the deviation contributes nothing.
	assert.InDelta(t, base, score(45), 1e-9)
	// A boundary deviation falls into the next bucket up.
	assert.InDelta(t, base+20, score(10), 1e-9)

	// Unknown deviation contributes nothing.
	assert.InDelta(t, base, trustScore(config, record, nil), 1e-9)
}

func TestTrustScoreClamps(t *testing.T) {
	config := TrustScoreConfig{
		ConfidenceWeight: 90,
		AdoptedScore:     40,
		DeviationBuckets: []DeviationBucket{{MaxPercent: 10, Score: 30}},
	}
	record := &decision.Record{
		AIConfidence: 1.0,
		ApprovalChain: []decision.ChainEntry{
			{Action: decision.ActionApprove, Actor: "mgr-1"},
		},
	}
	deviation := 1.0
	assert.Equal(t, 100.0, trustScore(config, record, &deviation))
}
