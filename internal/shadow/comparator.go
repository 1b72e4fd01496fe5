package shadow

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// sections are the top-level keys both optimizers emit.
var sections = []string{"allocations", "report"}

// defaultRelTol absorbs the legacy script's fractional-Naira allocations.
// The Go side rounds to whole Naira, so amounts differ by under one part in
// a million on realistic budgets; anything larger is a genuine divergence.
const defaultRelTol = 1e-6

// Compare diffs the Go and Python optimizer outputs section by section.
// Numbers are compared with a relative tolerance; everything else must match
// exactly.
func Compare(goJSON, pyJSON []byte) (*ComparisonResult, error) {
	return CompareWithTolerance(goJSON, pyJSON, defaultRelTol)
}

// CompareWithTolerance is Compare with an explicit relative tolerance for
// numeric leaves.
func CompareWithTolerance(goJSON, pyJSON []byte, relTol float64) (*ComparisonResult, error) {
	var goState, pyState map[string]any
	if err := json.Unmarshal(goJSON, &goState); err != nil {
		return nil, fmt.Errorf("parse Go output: %w", err)
	}
	if err := json.Unmarshal(pyJSON, &pyState); err != nil {
		return nil, fmt.Errorf("parse Python output: %w", err)
	}

	var comparisons []SectionComparison
	allMatch := true

	for _, section := range sections {
		goVal, _ := json.MarshalIndent(goState[section], "", "  ") // safe: values came from Unmarshal
		pyVal, _ := json.MarshalIndent(pyState[section], "", "  ") // safe: values came from Unmarshal

		match := valuesClose(goState[section], pyState[section], relTol)
		if !match {
			allMatch = false
		}

		sc := SectionComparison{
			Section:  section,
			GoOutput: string(goVal),
			PyOutput: string(pyVal),
			Match:    match,
		}
		if !match {
			sc.DiffLines = simpleDiff(string(goVal), string(pyVal))
		}
		comparisons = append(comparisons, sc)
	}

	summary := "all sections match"
	if !allMatch {
		var divergent []string
		for _, c := range comparisons {
			if !c.Match {
				divergent = append(divergent, c.Section)
			}
		}
		summary = fmt.Sprintf("divergence in: %s", strings.Join(divergent, ", "))
	}

	return &ComparisonResult{
		Sections: comparisons,
		AllMatch: allMatch,
		Summary:  summary,
	}, nil
}

// valuesClose compares two decoded JSON values structurally, treating numeric
// leaves as equal within the relative tolerance.
func valuesClose(a, b any, relTol float64) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !valuesClose(v, w, relTol) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesClose(av[i], bv[i], relTol) {
				return false
			}
		}
		return true
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		diff := math.Abs(av - bv)
		scale := math.Max(math.Abs(av), math.Abs(bv))
		return diff <= relTol*scale || diff == 0
	default:
		return a == b
	}
}

// simpleDiff returns a basic line-by-line diff indicator.
func simpleDiff(a, b string) string {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")
	var diffs []string

	maxLen := len(aLines)
	if len(bLines) > maxLen {
		maxLen = len(bLines)
	}

	for i := range maxLen {
		aLine := ""
		if i < len(aLines) {
			aLine = aLines[i]
		}
		bLine := ""
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			diffs = append(diffs, fmt.Sprintf("line %d:\n  go: %s\n  py: %s", i+1, aLine, bLine))
		}
	}
	return strings.Join(diffs, "\n")
}
