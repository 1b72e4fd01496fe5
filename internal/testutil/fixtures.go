// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/roadwatch/budget-go/internal/domain"
	"github.com/roadwatch/budget-go/internal/pricing"
)

// Input returns a repair input with the given id and categories over a
// standard 100x80x15 cm geometry.
func Input(id string, severity domain.Severity, urgency domain.Urgency) domain.RepairInput {
	return domain.RepairInput{
		ID:        id,
		LengthCm:  100,
		BreadthCm: 80,
		DepthCm:   15,
		Severity:  severity,
		Urgency:   urgency,
	}
}

// Repair prices an input against the default config, failing the test on
// any construction error.
func Repair(t *testing.T, in domain.RepairInput) domain.RepairRequest {
	t.Helper()
	est, err := pricing.NewEstimator(domain.DefaultBudgetConfig())
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	r, err := est.NewRepair(in)
	if err != nil {
		t.Fatalf("NewRepair(%q): %v", in.ID, err)
	}
	return r
}

// RepairWithCost returns a repair whose estimated cost and priority score
// are pinned directly, for allocation tests that need exact arithmetic.
func RepairWithCost(id string, severity domain.Severity, urgency domain.Urgency, cost int64, priority float64) domain.RepairRequest {
	return domain.RepairRequest{
		ID:            id,
		LengthCm:      100,
		BreadthCm:     80,
		DepthCm:       15,
		Severity:      severity,
		Urgency:       urgency,
		EstimatedCost: cost,
		PriorityScore: priority,
	}
}
