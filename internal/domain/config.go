package domain

import (
	"fmt"
	"time"
)

// AreaMode selects how repair area is computed from length and breadth.
type AreaMode string

const (
	AreaRectangular AreaMode = "rectangular"
	AreaElliptical  AreaMode = "elliptical"
)

func (m AreaMode) Valid() bool {
	return m == AreaRectangular || m == AreaElliptical
}

// BudgetConfig carries every constant the pricing and optimization code
// depends on. It is passed explicitly into each call; there is no
// process-wide default instance.
type BudgetConfig struct {
	MaterialCostPerM3 float64 `json:"material_cost_per_m3" mapstructure:"material_cost_per_m3"`
	LabourCostPerM2   float64 `json:"labour_cost_per_m2" mapstructure:"labour_cost_per_m2"`
	Mobilization      float64 `json:"mobilization" mapstructure:"mobilization"`

	SeverityWeights    map[Severity]float64 `json:"severity_weights" mapstructure:"severity_weights"`
	UrgencyMultipliers map[Urgency]float64  `json:"urgency_multipliers" mapstructure:"urgency_multipliers"`

	AreaMode AreaMode `json:"area_calculation_mode" mapstructure:"area_calculation_mode"`

	// IncludeDepthFactor controls whether the priority score multiplies in
	// the depth safety factor. Disabling it reproduces the simpler legacy
	// scoring formula.
	IncludeDepthFactor bool `json:"include_depth_factor" mapstructure:"include_depth_factor"`

	// SolveTimeout bounds the knapsack selector's exact search.
	SolveTimeout time.Duration `json:"solve_timeout" mapstructure:"solve_timeout"`
}

// DefaultBudgetConfig returns the standard Lagos road-maintenance rates:
// NGN 150k per cubic metre of material, 10k per square metre of labour,
// and a 20k fixed mobilization charge per repair.
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		MaterialCostPerM3: 150_000,
		LabourCostPerM2:   10_000,
		Mobilization:      20_000,
		SeverityWeights: map[Severity]float64{
			SeveritySevere:   3.0,
			SeverityModerate: 2.0,
			SeverityMinor:    1.0,
		},
		UrgencyMultipliers: map[Urgency]float64{
			UrgencyImmediate: 1.5,
			UrgencyUrgent:    1.2,
			UrgencyRoutine:   1.0,
		},
		AreaMode:           AreaRectangular,
		IncludeDepthFactor: true,
		SolveTimeout:       5 * time.Second,
	}
}

// Validate checks that the config can price every valid repair.
func (c BudgetConfig) Validate() error {
	if c.MaterialCostPerM3 < 0 {
		return fmt.Errorf("material_cost_per_m3 must be non-negative, got %v", c.MaterialCostPerM3)
	}
	if c.LabourCostPerM2 < 0 {
		return fmt.Errorf("labour_cost_per_m2 must be non-negative, got %v", c.LabourCostPerM2)
	}
	if c.Mobilization < 0 {
		return fmt.Errorf("mobilization must be non-negative, got %v", c.Mobilization)
	}
	if !c.AreaMode.Valid() {
		return fmt.Errorf("invalid area_calculation_mode: %q", c.AreaMode)
	}
	for _, s := range []Severity{SeverityMinor, SeverityModerate, SeveritySevere} {
		if w, ok := c.SeverityWeights[s]; !ok || w <= 0 {
			return fmt.Errorf("severity_weights missing positive weight for %q", s)
		}
	}
	for _, u := range []Urgency{UrgencyRoutine, UrgencyUrgent, UrgencyImmediate} {
		if m, ok := c.UrgencyMultipliers[u]; !ok || m <= 0 {
			return fmt.Errorf("urgency_multipliers missing positive multiplier for %q", u)
		}
	}
	if c.SolveTimeout < 0 {
		return fmt.Errorf("solve_timeout must be non-negative, got %v", c.SolveTimeout)
	}
	return nil
}
