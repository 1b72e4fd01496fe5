// Package pricing turns repair geometry, severity, and urgency into a
// monetary cost estimate and a relative priority score. All computations are
// pure functions of the input and the BudgetConfig captured at construction.
package pricing

import (
	"fmt"
	"math"

	"github.com/roadwatch/budget-go/internal/domain"
)

// Estimator prices repairs against one immutable BudgetConfig.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	cfg domain.BudgetConfig
}

// NewEstimator validates the config once and returns an Estimator bound to it.
func NewEstimator(cfg domain.BudgetConfig) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	return &Estimator{cfg: cfg}, nil
}

// Config returns the config the estimator was built with.
func (e *Estimator) Config() domain.BudgetConfig {
	return e.cfg
}

// validate checks dimensions and categories, normalizing an empty urgency
// to routine. It returns the effective urgency.
func (e *Estimator) validate(in domain.RepairInput) (domain.Urgency, error) {
	if in.LengthCm <= 0 || in.BreadthCm <= 0 || in.DepthCm <= 0 {
		return "", fmt.Errorf("pricing: %w: length=%v breadth=%v depth=%v cm",
			domain.ErrInvalidDimension, in.LengthCm, in.BreadthCm, in.DepthCm)
	}
	if !in.Severity.Valid() {
		return "", fmt.Errorf("pricing: %w: severity %q", domain.ErrInvalidCategory, in.Severity)
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = domain.UrgencyRoutine
	}
	if !urgency.Valid() {
		return "", fmt.Errorf("pricing: %w: urgency %q", domain.ErrInvalidCategory, in.Urgency)
	}
	return urgency, nil
}

// area computes the repair surface in square metres per the configured mode.
// Elliptical mode treats length and breadth as the full axes.
func (e *Estimator) area(lengthCm, breadthCm float64) float64 {
	lengthM := lengthCm / 100
	breadthM := breadthCm / 100
	if e.cfg.AreaMode == domain.AreaElliptical {
		return math.Pi * (lengthM / 2) * (breadthM / 2)
	}
	return lengthM * breadthM
}

// EstimateCost produces the itemized cost estimate for one repair.
func (e *Estimator) EstimateCost(in domain.RepairInput) (domain.CostBreakdown, error) {
	urgency, err := e.validate(in)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	areaM2 := e.area(in.LengthCm, in.BreadthCm)
	volumeM3 := areaM2 * (in.DepthCm / 100)

	materialCost := e.cfg.MaterialCostPerM3 * volumeM3
	labourCost := e.cfg.LabourCostPerM2 * areaM2
	baseCost := materialCost + labourCost + e.cfg.Mobilization

	severityMult := domain.CostMultiplier[in.Severity]
	urgencyMult := e.cfg.UrgencyMultipliers[urgency]

	return domain.CostBreakdown{
		AreaM2:             areaM2,
		VolumeM3:           volumeM3,
		MaterialCost:       int64(math.Round(materialCost)),
		LabourCost:         int64(math.Round(labourCost)),
		BaseCost:           int64(math.Round(baseCost)),
		SeverityMultiplier: severityMult,
		UrgencyMultiplier:  urgencyMult,
		EstimatedCost:      int64(math.Round(baseCost * severityMult * urgencyMult)),
	}, nil
}

// PriorityScore produces the itemized priority score for one repair.
// Larger and deeper damage on higher-severity, higher-urgency sites scores
// higher. The depth factor is skipped when the config disables it.
func (e *Estimator) PriorityScore(in domain.RepairInput) (domain.PriorityBreakdown, error) {
	urgency, err := e.validate(in)
	if err != nil {
		return domain.PriorityBreakdown{}, err
	}

	severityWeight := e.cfg.SeverityWeights[in.Severity]
	urgencyMult := e.cfg.UrgencyMultipliers[urgency]
	areaFactor := math.Sqrt((in.LengthCm * in.BreadthCm) / 10000)
	depthFactor := 1.0
	if e.cfg.IncludeDepthFactor {
		depthFactor = 1 + in.DepthCm/100
	}

	return domain.PriorityBreakdown{
		SeverityWeight:    severityWeight,
		UrgencyMultiplier: urgencyMult,
		AreaFactor:        areaFactor,
		DepthFactor:       depthFactor,
		Score:             severityWeight * urgencyMult * areaFactor * depthFactor,
	}, nil
}

// NewRepair constructs a fully derived RepairRequest from a raw input.
// Inputs without an id get a generated one. The returned value is never
// mutated by this package afterwards.
func (e *Estimator) NewRepair(in domain.RepairInput) (domain.RepairRequest, error) {
	cost, err := e.EstimateCost(in)
	if err != nil {
		return domain.RepairRequest{}, err
	}
	priority, err := e.PriorityScore(in)
	if err != nil {
		return domain.RepairRequest{}, err
	}

	id := in.ID
	if id == "" {
		id = domain.NewRepairID()
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = domain.UrgencyRoutine
	}

	return domain.RepairRequest{
		ID:            id,
		LengthCm:      in.LengthCm,
		BreadthCm:     in.BreadthCm,
		DepthCm:       in.DepthCm,
		Severity:      in.Severity,
		Urgency:       urgency,
		DamageType:    in.DamageType,
		AreaM2:        cost.AreaM2,
		VolumeM3:      cost.VolumeM3,
		EstimatedCost: cost.EstimatedCost,
		PriorityScore: priority.Score,
		Cost:          cost,
		Priority:      priority,
	}, nil
}

// NewRepairs prices a batch, failing on the first invalid input. Callers
// that need skip-and-collect semantics should use the convert package.
func (e *Estimator) NewRepairs(inputs []domain.RepairInput) ([]domain.RepairRequest, error) {
	repairs := make([]domain.RepairRequest, 0, len(inputs))
	for i, in := range inputs {
		r, err := e.NewRepair(in)
		if err != nil {
			return nil, fmt.Errorf("repair %d: %w", i, err)
		}
		repairs = append(repairs, r)
	}
	return repairs, nil
}
