// Package convert maps loosely-typed damage records from the reporting and
// detection subsystems into validated repair inputs. Per-record failures are
// collected, never fatal: a batch always yields the convertible records plus
// a skipped list with reasons.
package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roadwatch/budget-go/internal/domain"
)

var validate = validator.New()

// InboundRecord is the data contract with the reporting/detection subsystems.
// SeverityScore may arrive on either the 0-10 or the 0-100 scale.
type InboundRecord struct {
	TrackingNumber string   `json:"tracking_number" validate:"required"`
	DamageType     string   `json:"damage_type" validate:"required"`
	SeverityScore  float64  `json:"severity_score" validate:"gte=0,lte=100"`
	EstimatedCost  *float64 `json:"estimated_cost,omitempty"`
	ImageFilename  string   `json:"image_filename,omitempty"`
	Urgency        string   `json:"urgency,omitempty"`
	LocationFactor float64  `json:"location_factor,omitempty"`
}

// SkippedRecord explains why one record in a batch was not converted.
type SkippedRecord struct {
	Index          int    `json:"index"`
	TrackingNumber string `json:"tracking_number"`
	Reason         string `json:"reason"`
}

// defaultDims holds the placeholder geometry (length, breadth, depth in cm)
// derived from damage-type keywords. Typical patterns observed in the field.
var defaultDims = []struct {
	keyword string
	length  float64
	breadth float64
	depth   float64
}{
	{"crack", 150, 100, 8},
	{"pothole", 100, 80, 15},
	{"rut", 200, 50, 12},
	{"spalling", 120, 90, 10},
}

const (
	fallbackLength  = 80
	fallbackBreadth = 60
	fallbackDepth   = 10

	minLengthCm  = 50
	minBreadthCm = 30
	minDepthCm   = 5
)

// ToRepairInput converts one inbound record to a repair input: categorical
// severity from the score, placeholder geometry from the damage type scaled
// by the normalized score, and urgency from the record or derived from the
// score when absent or unrecognized.
func ToRepairInput(rec InboundRecord) (domain.RepairInput, error) {
	if err := validate.Struct(rec); err != nil {
		return domain.RepairInput{}, fmt.Errorf("convert: record %q: %w", rec.TrackingNumber, err)
	}

	normalized, err := domain.NormalizeScore(rec.SeverityScore)
	if err != nil {
		return domain.RepairInput{}, fmt.Errorf("convert: record %q: %w", rec.TrackingNumber, err)
	}

	length, breadth, depth := float64(fallbackLength), float64(fallbackBreadth), float64(fallbackDepth)
	lowered := strings.ToLower(rec.DamageType)
	for _, d := range defaultDims {
		if strings.Contains(lowered, d.keyword) {
			length, breadth, depth = d.length, d.breadth, d.depth
			break
		}
	}

	// Scale by normalized severity (0-10 mapped onto a 0-2 multiplier),
	// clamped to physically plausible minimums.
	mult := normalized / 5
	length = math.Max(math.Round(length*mult), minLengthCm)
	breadth = math.Max(math.Round(breadth*mult), minBreadthCm)
	depth = math.Max(math.Round(depth*mult), minDepthCm)

	urgency := domain.Urgency(rec.Urgency)
	if !urgency.Valid() {
		urgency = domain.UrgencyFromScore(normalized)
	}

	return domain.RepairInput{
		ID:         rec.TrackingNumber,
		LengthCm:   length,
		BreadthCm:  breadth,
		DepthCm:    depth,
		Severity:   domain.SeverityFromScore(rec.SeverityScore),
		Urgency:    urgency,
		DamageType: rec.DamageType,
	}, nil
}

// Batch converts records with skip-and-collect semantics. The returned
// skipped list is empty (never nil) when everything converts.
func Batch(records []InboundRecord) ([]domain.RepairInput, []SkippedRecord) {
	inputs := make([]domain.RepairInput, 0, len(records))
	skipped := []SkippedRecord{}

	for i, rec := range records {
		in, err := ToRepairInput(rec)
		if err != nil {
			skipped = append(skipped, SkippedRecord{
				Index:          i,
				TrackingNumber: rec.TrackingNumber,
				Reason:         err.Error(),
			})
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, skipped
}

// ToCandidate converts one inbound record into a knapsack candidate. The
// cost comes from the record when present, otherwise from the severity-score
// cost table.
func ToCandidate(rec InboundRecord) (domain.Candidate, error) {
	if err := validate.Struct(rec); err != nil {
		return domain.Candidate{}, fmt.Errorf("convert: record %q: %w", rec.TrackingNumber, err)
	}

	normalized, err := domain.NormalizeScore(rec.SeverityScore)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("convert: record %q: %w", rec.TrackingNumber, err)
	}

	var cost int64
	if rec.EstimatedCost != nil && *rec.EstimatedCost > 0 {
		cost = int64(math.Round(*rec.EstimatedCost))
	} else {
		cost = CostFromScore(normalized, rec.LocationFactor)
	}

	return domain.Candidate{
		ID:            rec.TrackingNumber,
		Cost:          cost,
		SeverityScore: normalized,
	}, nil
}

// BatchCandidates converts records into knapsack candidates with the same
// skip-and-collect semantics as Batch.
func BatchCandidates(records []InboundRecord) ([]domain.Candidate, []SkippedRecord) {
	candidates := make([]domain.Candidate, 0, len(records))
	skipped := []SkippedRecord{}

	for i, rec := range records {
		c, err := ToCandidate(rec)
		if err != nil {
			skipped = append(skipped, SkippedRecord{
				Index:          i,
				TrackingNumber: rec.TrackingNumber,
				Reason:         err.Error(),
			})
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped
}
