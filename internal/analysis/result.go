// Package analysis defines the structured verdict the analyzer produces,
// parses model output into it, and renders it for the pull-request comment.
package analysis

import "sort"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

func (r RiskLevel) Rank() int { return riskRank[r] }

// ParseRiskLevel normalizes a risk string; anything unrecognized maps to
// low so the local blast-radius floor decides.
func ParseRiskLevel(s string) RiskLevel {
	r := RiskLevel(s)
	if _, ok := riskRank[r]; ok {
		return r
	}
	return RiskLow
}

// MaxRisk returns the higher of two risk levels. The locally computed
// blast-radius level is merged this way so a lenient or unparsed model
// response can never lower the verdict below the deterministic floor.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

type Finding struct {
	Severity RiskLevel `json:"severity"`
	Category string    `json:"category"`
	Resource string    `json:"resource,omitempty"`
	Detail   string    `json:"detail"`
}

// Result is the analyzer's verdict. Raw always carries the model's full
// response for audit; Unparsed marks the degraded variant where the
// response did not match the expected structure.
type Result struct {
	Risk     RiskLevel `json:"risk"`
	Summary  string    `json:"summary"`
	Findings []Finding `json:"findings"`
	Guidance string    `json:"guidance"`

	Raw      string `json:"-"`
	Unparsed bool   `json:"-"`

	// Deep-mode narrative sections, empty by default.
	ContextAnalysis   string `json:"-"`
	TechnicalAnalysis string `json:"-"`
}

// SortFindings orders findings by severity, highest first, then by resource
// address, then detail. Rendering after sorting is deterministic.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity.Rank() != findings[j].Severity.Rank() {
			return findings[i].Severity.Rank() > findings[j].Severity.Rank()
		}
		if findings[i].Resource != findings[j].Resource {
			return findings[i].Resource < findings[j].Resource
		}
		return findings[i].Detail < findings[j].Detail
	})
}
