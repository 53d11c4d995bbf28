package warden

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/opsfabric/warden/service/governance"
	"github.com/opsfabric/warden/service/validation"
)

// Config is a serialisable representation of the engine configuration. It
// can be populated from JSON, YAML or environment variables; the zero value
// of every nested field inherits its package default.
type Config struct {
	// RollbackWindowMinutes bounds compensating rollbacks.
	RollbackWindowMinutes int `json:"rollbackWindowMinutes" yaml:"rollbackWindowMinutes" env:"WARDEN_ROLLBACK_WINDOW_MINUTES"`

	TrustScore governance.TrustScoreConfig `json:"trustScore" yaml:"trustScore"`
	Validation validation.Config           `json:"validation" yaml:"validation"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		RollbackWindowMinutes: 30,
		TrustScore:            governance.DefaultTrustScoreConfig(),
		Validation:            validation.DefaultConfig(),
	}
}

// LoadEnv overlays environment variables onto the defaults.
func LoadEnv() (*Config, error) {
	config := DefaultConfig()
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("warden: failed to parse environment: %w", err)
	}
	return config, nil
}

// RollbackWindow returns the window as a duration.
func (c *Config) RollbackWindow() time.Duration {
	return time.Duration(c.RollbackWindowMinutes) * time.Minute
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.RollbackWindowMinutes <= 0 {
		return fmt.Errorf("rollbackWindowMinutes must be > 0")
	}
	if c.TrustScore.ConfidenceWeight < 0 {
		return fmt.Errorf("trustScore.confidenceWeight must be >= 0")
	}
	if c.Validation.BudgetWarningRatio <= 0 || c.Validation.BudgetWarningRatio > 1 {
		return fmt.Errorf("validation.budgetWarningRatio must be in (0, 1]")
	}
	if c.Validation.ConsumptionCriticalDeviation < c.Validation.ConsumptionWarningDeviation {
		return fmt.Errorf("validation.consumptionCriticalDeviation must be >= warning deviation")
	}
	return nil
}
