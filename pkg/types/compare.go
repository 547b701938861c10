package types

import "time"

// SystemReport pairs an analysis with the label derived from it.
type SystemReport struct {
	Analysis     *AnalysisResult `json:"analysis"`
	PrivacyLabel *PrivacyLabel   `json:"privacy_label"`
}

// SideMetric holds one metric for both sides of a comparison.
// Delta is local minus cloud.
type SideMetric struct {
	Local int `json:"local"`
	Cloud int `json:"cloud"`
	Delta int `json:"delta"`
}

// KeyDifferences is the computed delta view of a comparison.
type KeyDifferences struct {
	ExternalDomains SideMetric `json:"external_domains"`
	QueryExposure   SideMetric `json:"query_exposure"`
	PrivacyScore    SideMetric `json:"privacy_score"`
}

// ComparisonResult pairs two analyzed systems with their delta view.
// The first store is always labeled "local" and the second "cloud";
// the underlying metrics are computed identically for both sides.
type ComparisonResult struct {
	ComparisonDate time.Time      `json:"comparison_date"`
	LocalSystem    SystemReport   `json:"local_system"`
	CloudSystem    SystemReport   `json:"cloud_system"`
	KeyDifferences KeyDifferences `json:"key_differences"`
}
