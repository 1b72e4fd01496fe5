// Package shadow provides offline parity checking between this optimizer and
// the legacy Python budget script it replaces. Both sides run on the same
// damage records and their allocation and report outputs are diffed.
package shadow

// ComparisonResult is the top-level output of a shadow-run comparison.
type ComparisonResult struct {
	Sections []SectionComparison `json:"sections"`
	AllMatch bool                `json:"all_match"`
	Summary  string              `json:"summary"`
}

// SectionComparison records the comparison for one output section.
type SectionComparison struct {
	Section   string `json:"section"`
	GoOutput  string `json:"go_output"`
	PyOutput  string `json:"py_output"`
	Match     bool   `json:"match"`
	DiffLines string `json:"diff_lines,omitempty"`
}
