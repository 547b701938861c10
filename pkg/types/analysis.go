package types

import "time"

// QueryExposure records one request that carried literal query text.
type QueryExposure struct {
	Domain string `json:"domain"`
	Query  string `json:"query"`
	URL    string `json:"url"`
}

// HeaderFinding is one occurrence of a privacy-relevant header.
// Value is truncated; PrivacyRisk is a "LEVEL - reason" string.
type HeaderFinding struct {
	Domain      string `json:"domain"`
	Value       string `json:"value"`
	PrivacyRisk string `json:"privacy_risk"`
}

// ParamExposure summarizes the URL/body parameters of one request,
// with the sensitive parameter names flagged.
type ParamExposure struct {
	Domain          string            `json:"domain"`
	Params          map[string]string `json:"params"`
	SensitiveParams []string          `json:"sensitive_params"`
}

// APIKeyExposure records an API key or token sent as a parameter.
type APIKeyExposure struct {
	Domain  string `json:"domain"`
	Param   string `json:"param"`
	Exposed bool   `json:"exposed"`
}

// TimingObservation is one (domain, timestamp) pair used to assess
// correlation risk.
type TimingObservation struct {
	Domain    string    `json:"domain"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionObservation records a session identifier observed on an
// external request. SessionID is truncated.
type SessionObservation struct {
	Domain    string `json:"domain"`
	SessionID string `json:"session_id"`
}

// AnalysisResult aggregates the exposure signals of one traffic log.
// It is a pure projection of the log, recomputed on demand.
type AnalysisResult struct {
	TotalRequests     int                        `json:"total_requests"`
	DomainsContacted  map[string]int             `json:"domains_contacted"`
	LocalhostOnly     bool                       `json:"localhost_only"`
	ExternalDomains   []string                   `json:"external_domains"`
	QueryDataLeaked   []QueryExposure            `json:"query_data_leaked"`
	HeadersAnalysis   map[string][]HeaderFinding `json:"headers_analysis"`
	MetadataExposure  []ParamExposure            `json:"metadata_exposure"`
	APIKeysExposed    []APIKeyExposure           `json:"api_keys_exposed"`
	IPAddressExposure bool                       `json:"ip_address_exposure"`
	TimingPatterns    []TimingObservation        `json:"timing_patterns"`
	SessionTracking   []SessionObservation       `json:"session_tracking"`
}

// PrivacyLabel is the scored, human-readable summary derived from an
// AnalysisResult. PrivacyScore is in [0, 100]; higher is more private.
type PrivacyLabel struct {
	System          string   `json:"system"`
	DataExitsDevice []string `json:"data_exits_device"`
	WhoHasAccess    []string `json:"who_has_access"`
	RetentionPolicy string   `json:"retention_policy"`
	PrivacyScore    int      `json:"privacy_score"`
	Recommendations []string `json:"recommendations"`
}

// System classifications used in privacy labels.
const (
	SystemLocal = "Local/Self-Hosted"
	SystemCloud = "Cloud/External"
)

// ReportDocument is the exported privacy report for a single log.
type ReportDocument struct {
	AnalysisDate    time.Time       `json:"analysis_date"`
	LogFile         string          `json:"log_file"`
	TrafficAnalysis *AnalysisResult `json:"traffic_analysis"`
	PrivacyLabel    *PrivacyLabel   `json:"privacy_label"`
}
