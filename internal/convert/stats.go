package convert

import "github.com/roadwatch/budget-go/internal/domain"

// ConversionStats summarizes a batch of inbound records before conversion.
type ConversionStats struct {
	TotalReports           int                     `json:"total_reports"`
	SeverityDistribution   map[domain.Severity]int `json:"severity_distribution"`
	DamageTypeDistribution map[string]int          `json:"damage_type_distribution"`
	TotalEstimatedCost     float64                 `json:"total_estimated_cost"`
	AvgSeverityScore       float64                 `json:"avg_severity_score"`
}

// Stats computes distribution statistics over raw inbound records. Records
// are counted as-is; no validation or skipping applies here.
func Stats(records []InboundRecord) ConversionStats {
	stats := ConversionStats{
		TotalReports:           len(records),
		SeverityDistribution:   make(map[domain.Severity]int),
		DamageTypeDistribution: make(map[string]int),
	}

	var totalScore float64
	for _, rec := range records {
		stats.SeverityDistribution[domain.SeverityFromScore(rec.SeverityScore)]++

		damageType := rec.DamageType
		if damageType == "" {
			damageType = "unknown"
		}
		stats.DamageTypeDistribution[damageType]++

		if rec.EstimatedCost != nil {
			stats.TotalEstimatedCost += *rec.EstimatedCost
		}
		totalScore += rec.SeverityScore
	}

	if len(records) > 0 {
		stats.AvgSeverityScore = totalScore / float64(len(records))
	}
	return stats
}
