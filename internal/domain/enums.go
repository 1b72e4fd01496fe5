package domain

import "fmt"

// Severity classifies how serious a damage site is.
type Severity string

const (
	SeverityMinor    Severity = "Minor"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// CostMultiplier maps Severity to the fixed cost multiplier used by the
// estimator. These are intentionally not configurable.
var CostMultiplier = map[Severity]float64{
	SeverityMinor:    0.85,
	SeverityModerate: 1.0,
	SeveritySevere:   1.4,
}

// Urgency classifies scheduling pressure for a repair.
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImmediate Urgency = "immediate"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyRoutine, UrgencyUrgent, UrgencyImmediate:
		return true
	}
	return false
}

// Strategy selects how the allocation engine distributes the budget.
type Strategy string

const (
	StrategyPriorityWeighted Strategy = "priority_weighted"
	StrategySeverityFirst    Strategy = "severity_first"
	StrategyProportional     Strategy = "proportional"
	StrategyHybrid           Strategy = "hybrid"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyPriorityWeighted, StrategySeverityFirst, StrategyProportional, StrategyHybrid:
		return true
	}
	return false
}

// Strategies lists all allocation strategies in a stable order.
var Strategies = []Strategy{
	StrategyPriorityWeighted,
	StrategySeverityFirst,
	StrategyProportional,
	StrategyHybrid,
}

// AllocationCategory tags hybrid-strategy allocations.
type AllocationCategory string

const (
	CategoryCritical AllocationCategory = "Critical"
	CategoryRegular  AllocationCategory = "Regular"
)

// SelectionStatus reports the outcome of a knapsack selection.
// "No feasible selection" is a business outcome, not an error.
type SelectionStatus string

const (
	SelectionOptimal      SelectionStatus = "optimal"
	SelectionEmptyInput   SelectionStatus = "infeasible-empty-input"
	SelectionNoBudget     SelectionStatus = "no-budget"
	SelectionNoActionable SelectionStatus = "no-actionable"
	SelectionTimeout      SelectionStatus = "timeout"
)

func (s SelectionStatus) Valid() bool {
	switch s {
	case SelectionOptimal, SelectionEmptyInput, SelectionNoBudget, SelectionNoActionable, SelectionTimeout:
		return true
	}
	return false
}

// SeverityOrder is the processing order for the severity_first strategy.
var SeverityOrder = []Severity{SeveritySevere, SeverityModerate, SeverityMinor}

// SeverityFromScore maps a numeric severity score to the categorical enum.
// Scores above 10 are treated as the 0-100 scale (thresholds 70/30);
// otherwise the 0-10 scale applies (thresholds 8/5).
func SeverityFromScore(score float64) Severity {
	if score > 10 {
		switch {
		case score >= 70:
			return SeveritySevere
		case score >= 30:
			return SeverityModerate
		default:
			return SeverityMinor
		}
	}
	switch {
	case score >= 8:
		return SeveritySevere
	case score >= 5:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// UrgencyFromScore derives a default urgency from a severity score on the
// 0-10 scale. Used only when the inbound record carries no explicit urgency.
func UrgencyFromScore(score float64) Urgency {
	switch {
	case score >= 8:
		return UrgencyImmediate
	case score >= 5:
		return UrgencyUrgent
	default:
		return UrgencyRoutine
	}
}

// NormalizeScore maps a severity score onto the 0-10 scale.
// Returns an error for negative scores or scores above 100.
func NormalizeScore(score float64) (float64, error) {
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("severity score %v out of range [0,100]", score)
	}
	if score > 10 {
		return score / 10, nil
	}
	return score, nil
}
