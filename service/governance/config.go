package governance

// DeviationBucket maps a result deviation below MaxPercent to a score
// contribution. Buckets are evaluated in ascending MaxPercent order; a
// deviation matching no bucket (or an unknown deviation) contributes zero.
type DeviationBucket struct {
	MaxPercent float64 `json:"maxPercent" yaml:"maxPercent"`
	Score      float64 `json:"score" yaml:"score"`
}

// TrustScoreConfig parameterises the 0-100 trust score. All weights and
// thresholds are configuration, never constants baked into scoring logic.
type TrustScoreConfig struct {
	// ConfidenceWeight scales the AI confidence ([0,1]) contribution.
	ConfidenceWeight float64 `json:"confidenceWeight" yaml:"confidenceWeight" env:"WARDEN_TRUST_CONFIDENCE_WEIGHT"`

	// AdoptedScore and ModifiedScore reward human adoption behaviour;
	// rejection contributes zero.
	AdoptedScore  float64 `json:"adoptedScore" yaml:"adoptedScore" env:"WARDEN_TRUST_ADOPTED_SCORE"`
	ModifiedScore float64 `json:"modifiedScore" yaml:"modifiedScore" env:"WARDEN_TRUST_MODIFIED_SCORE"`

	// DeviationBuckets score the realized outcome deviation.
	DeviationBuckets []DeviationBucket `json:"deviationBuckets" yaml:"deviationBuckets"`
}

// DefaultTrustScoreConfig returns the stock weights.
func DefaultTrustScoreConfig() TrustScoreConfig {
	return TrustScoreConfig{
		ConfidenceWeight: 30,
		AdoptedScore:     40,
		ModifiedScore:    20,
		DeviationBuckets: []DeviationBucket{
			{MaxPercent: 10, Score: 30},
			{MaxPercent: 20, Score: 20},
			{MaxPercent: 30, Score: 10},
		},
	}
}
