// Package label derives privacy labels from analysis results. The
// scoring rule set is data, not control flow: a table of (category,
// weight) deductions applied once per matching occurrence.
package label

import (
	"fmt"
	"sort"
	"strings"

	"github.com/usestring/privlabel/pkg/types"
)

// timingCorrelationThreshold is the timing-observation count above
// which correlation is considered possible.
const timingCorrelationThreshold = 20

// dataExitTimingThreshold is the count above which timing patterns
// are listed as exiting data.
const dataExitTimingThreshold = 10

// multiServiceThreshold is the external-domain count above which the
// "multiple external services" recommendation fires.
const multiServiceThreshold = 3

// lowScoreThreshold is the score below which local alternatives are
// recommended.
const lowScoreThreshold = 50

// Deduction is one scoring rule: Weight points are subtracted per
// occurrence counted by Count.
type Deduction struct {
	Category string
	Weight   int
	Count    func(a *types.AnalysisResult) int
}

// Deductions is the complete scoring rule set. The score starts at 100
// and is floored at 0 after all deductions.
var Deductions = []Deduction{
	{
		Category: "external_domain",
		Weight:   10,
		Count:    func(a *types.AnalysisResult) int { return len(a.ExternalDomains) },
	},
	{
		Category: "query_exposure",
		Weight:   5,
		Count:    func(a *types.AnalysisResult) int { return len(a.QueryDataLeaked) },
	},
	{
		Category: "api_key_exposure",
		Weight:   15,
		Count:    func(a *types.AnalysisResult) int { return len(a.APIKeysExposed) },
	},
	{
		Category: "header_type",
		Weight:   3,
		Count:    func(a *types.AnalysisResult) int { return len(a.HeadersAnalysis) },
	},
	{
		Category: "high_risk_header",
		Weight:   5,
		Count:    highRiskHeaderCount,
	},
	{
		Category: "ip_exposure",
		Weight:   5,
		Count: func(a *types.AnalysisResult) int {
			if a.IPAddressExposure {
				return 1
			}
			return 0
		},
	},
	{
		Category: "timing_correlation",
		Weight:   3,
		Count: func(a *types.AnalysisResult) int {
			if len(a.TimingPatterns) > timingCorrelationThreshold {
				return 1
			}
			return 0
		},
	},
}

// Score applies the deduction table to a, clamped to [0, 100].
func Score(a *types.AnalysisResult) int {
	score := 100
	for _, d := range Deductions {
		score -= d.Weight * d.Count(a)
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Generate derives the privacy label from an analysis result. It is a
// pure function: equal inputs yield equal labels.
func Generate(a *types.AnalysisResult) *types.PrivacyLabel {
	if a.LocalhostOnly {
		return &types.PrivacyLabel{
			System:          types.SystemLocal,
			DataExitsDevice: []string{"None - all traffic stays local"},
			WhoHasAccess:    []string{"Only local system"},
			RetentionPolicy: "No external retention",
			PrivacyScore:    100,
			Recommendations: []string{"Excellent privacy - no data leaves device"},
		}
	}

	lbl := &types.PrivacyLabel{
		System:          types.SystemCloud,
		DataExitsDevice: []string{},
		WhoHasAccess:    []string{},
		RetentionPolicy: "Unknown - check provider privacy policy",
		Recommendations: []string{},
	}

	if len(a.QueryDataLeaked) > 0 {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			fmt.Sprintf("Search queries (%d unique queries)", uniqueQueryCount(a)))
	}

	headerTypes := sortedHeaderTypes(a)
	if len(headerTypes) > 0 {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			"HTTP headers: "+strings.Join(headerTypes, ", "))
	}

	if len(a.MetadataExposure) > 0 {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			fmt.Sprintf("URL parameters and metadata (%d sensitive parameters)", sensitiveParamCount(a)))
	}

	if len(a.APIKeysExposed) > 0 {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			fmt.Sprintf("API keys/tokens (%d exposed)", len(a.APIKeysExposed)))
	}

	if a.IPAddressExposure {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			"IP address (implicit via external connection)")
	}

	fingerprinting := highRiskHeaderTypes(a)
	if len(fingerprinting) > 0 {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			"Browser fingerprinting headers: "+strings.Join(fingerprinting, ", "))
	}

	if len(a.TimingPatterns) > dataExitTimingThreshold {
		lbl.DataExitsDevice = append(lbl.DataExitsDevice,
			fmt.Sprintf("Timing patterns (%d requests) - correlation possible", len(a.TimingPatterns)))
	}

	lbl.WhoHasAccess = append(lbl.WhoHasAccess, a.ExternalDomains...)

	lbl.PrivacyScore = Score(a)

	highRisk := highRiskHeaderCount(a)
	if lbl.PrivacyScore < lowScoreThreshold {
		lbl.Recommendations = append(lbl.Recommendations,
			"Consider using local/self-hosted alternatives")
	}
	if len(a.QueryDataLeaked) > 0 {
		lbl.Recommendations = append(lbl.Recommendations,
			"Queries are being sent to external servers")
	}
	if len(a.APIKeysExposed) > 0 {
		lbl.Recommendations = append(lbl.Recommendations,
			fmt.Sprintf("WARNING: %d API keys/tokens exposed in requests", len(a.APIKeysExposed)))
	}
	if a.IPAddressExposure {
		lbl.Recommendations = append(lbl.Recommendations,
			"IP address exposed to external servers")
	}
	if highRisk > 0 {
		lbl.Recommendations = append(lbl.Recommendations,
			fmt.Sprintf("Browser fingerprinting detected via %d high-risk headers", highRisk))
	}
	if len(a.ExternalDomains) > multiServiceThreshold {
		lbl.Recommendations = append(lbl.Recommendations,
			"Multiple external services contacted")
	}

	return lbl
}

// highRiskHeaderCount counts HIGH-risk header occurrences across all
// findings.
func highRiskHeaderCount(a *types.AnalysisResult) int {
	n := 0
	for _, findings := range a.HeadersAnalysis {
		for _, f := range findings {
			if strings.HasPrefix(f.PrivacyRisk, "HIGH") {
				n++
			}
		}
	}
	return n
}

// highRiskHeaderTypes lists header names with at least one HIGH-risk
// finding, sorted for stable output.
func highRiskHeaderTypes(a *types.AnalysisResult) []string {
	var out []string
	for name, findings := range a.HeadersAnalysis {
		for _, f := range findings {
			if strings.HasPrefix(f.PrivacyRisk, "HIGH") {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// sortedHeaderTypes lists the distinct header names seen, sorted for
// stable output.
func sortedHeaderTypes(a *types.AnalysisResult) []string {
	out := make([]string, 0, len(a.HeadersAnalysis))
	for name := range a.HeadersAnalysis {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func uniqueQueryCount(a *types.AnalysisResult) int {
	seen := make(map[string]bool, len(a.QueryDataLeaked))
	for _, q := range a.QueryDataLeaked {
		seen[q.Query] = true
	}
	return len(seen)
}

func sensitiveParamCount(a *types.AnalysisResult) int {
	n := 0
	for _, m := range a.MetadataExposure {
		n += len(m.SensitiveParams)
	}
	return n
}
