package domain

import (
	"github.com/google/uuid"
)

// RepairInput is the caller-supplied description of one damage site,
// before cost and priority derivation.
type RepairInput struct {
	ID         string   `json:"id,omitempty"`
	LengthCm   float64  `json:"length_cm"`
	BreadthCm  float64  `json:"breadth_cm"`
	DepthCm    float64  `json:"depth_cm"`
	Severity   Severity `json:"severity"`
	Urgency    Urgency  `json:"urgency,omitempty"`
	DamageType string   `json:"damage_type,omitempty"`
}

// NewRepairID generates an opaque repair identifier for inputs that
// arrive without one.
func NewRepairID() string {
	return "repair-" + uuid.NewString()
}

// CostBreakdown itemizes the cost estimate for one repair.
type CostBreakdown struct {
	AreaM2             float64 `json:"area_m2"`
	VolumeM3           float64 `json:"volume_m3"`
	MaterialCost       int64   `json:"material_cost"`
	LabourCost         int64   `json:"labour_cost"`
	BaseCost           int64   `json:"base_cost"`
	SeverityMultiplier float64 `json:"severity_multiplier"`
	UrgencyMultiplier  float64 `json:"urgency_multiplier"`
	EstimatedCost      int64   `json:"estimated_cost"`
}

// PriorityBreakdown itemizes the priority score for one repair.
type PriorityBreakdown struct {
	SeverityWeight    float64 `json:"severity_weight"`
	UrgencyMultiplier float64 `json:"urgency_multiplier"`
	AreaFactor        float64 `json:"area_factor"`
	DepthFactor       float64 `json:"depth_factor"`
	Score             float64 `json:"priority_score"`
}

// RepairRequest is one priced and prioritized damage site. Derived fields
// are computed once at construction and never mutated afterwards.
type RepairRequest struct {
	ID         string   `json:"id"`
	LengthCm   float64  `json:"length_cm"`
	BreadthCm  float64  `json:"breadth_cm"`
	DepthCm    float64  `json:"depth_cm"`
	Severity   Severity `json:"severity"`
	Urgency    Urgency  `json:"urgency"`
	DamageType string   `json:"damage_type,omitempty"`

	AreaM2        float64 `json:"area_m2"`
	VolumeM3      float64 `json:"volume_m3"`
	EstimatedCost int64   `json:"estimated_cost"`
	PriorityScore float64 `json:"priority_score"`

	Cost     CostBreakdown     `json:"cost_breakdown"`
	Priority PriorityBreakdown `json:"priority_breakdown"`
}

// AllocationResult is the funding decision for one repair.
type AllocationResult struct {
	RepairID        string             `json:"repair_id"`
	Severity        Severity           `json:"severity"`
	Urgency         Urgency            `json:"urgency"`
	PriorityScore   float64            `json:"priority_score"`
	EstimatedCost   int64              `json:"estimated_cost"`
	AllocatedBudget int64              `json:"allocated_budget"`
	FundingRatio    float64            `json:"funding_ratio"`
	CanComplete     bool               `json:"can_complete"`
	Category        AllocationCategory `json:"category,omitempty"`
}

// AllocationSet maps repair id to its allocation result.
type AllocationSet map[string]AllocationResult

// SeverityTotals summarizes allocations for one severity level.
type SeverityTotals struct {
	Count     int   `json:"count"`
	Allocated int64 `json:"allocated"`
	Estimated int64 `json:"estimated"`
}

// BudgetReport aggregates an allocation set against the total budget.
type BudgetReport struct {
	TotalBudget       int64                       `json:"total_budget"`
	TotalAllocated    int64                       `json:"total_allocated"`
	Unallocated       int64                       `json:"unallocated"`
	AllocationRate    float64                     `json:"allocation_rate"`
	TotalRepairs      int                         `json:"total_repairs"`
	FullyFunded       int                         `json:"fully_funded"`
	PartiallyFunded   int                         `json:"partially_funded"`
	SeverityBreakdown map[Severity]SeverityTotals `json:"severity_breakdown"`
}

// AllocationStats carries descriptive statistics over an allocation set.
type AllocationStats struct {
	TotalAllocated       int64   `json:"total_allocated"`
	TotalEstimated       int64   `json:"total_estimated"`
	AverageAllocated     float64 `json:"average_allocated"`
	AverageEstimated     float64 `json:"average_estimated"`
	MinFundingRatio      float64 `json:"min_funding_ratio"`
	MaxFundingRatio      float64 `json:"max_funding_ratio"`
	AverageFundingRatio  float64 `json:"average_funding_ratio"`
	FullyFundedCount     int     `json:"fully_funded_count"`
	PartiallyFundedCount int     `json:"partially_funded_count"`
}

// Candidate is one repair offered to the knapsack selector. SeverityScore
// is the raw numeric score, not the categorical enum.
type Candidate struct {
	ID            string  `json:"id"`
	Cost          int64   `json:"cost"`
	SeverityScore float64 `json:"severity"`
}

// BudgetContext situates a selection's spend against the available budget.
type BudgetContext struct {
	BudgetUsed      int64 `json:"budget_used"`
	BudgetAvailable int64 `json:"budget_available"`
	BudgetRemaining int64 `json:"budget_remaining"`
}

// SelectionResult is the outcome of a 0/1 knapsack selection.
type SelectionResult struct {
	SelectedIDs       []string        `json:"selected_ids"`
	TotalCost         int64           `json:"total_cost"`
	TotalSeverity     float64         `json:"total_severity"`
	BudgetUtilization float64         `json:"budget_utilization"`
	RepairsCount      int             `json:"repairs_count"`
	Status            SelectionStatus `json:"status"`
	Budget            BudgetContext   `json:"budget_context"`
}
