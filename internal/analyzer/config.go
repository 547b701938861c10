package analyzer

// Privacy risk levels assigned to header findings. The level prefix is
// what the label generator keys on; the suffix names the reason.
const (
	RiskUserAgent      = "HIGH - Browser fingerprinting"
	RiskCookie         = "HIGH - Tracking cookies"
	RiskReferer        = "MEDIUM - Referrer leakage"
	RiskAcceptLanguage = "MEDIUM - Language/location inference"
	RiskAccept         = "LOW - Content negotiation"
	RiskStandard       = "LOW - Standard header"
)

// HeaderRiskRule maps a header-name substring to a risk assessment.
// Rules are evaluated in order; the first match wins.
type HeaderRiskRule struct {
	Match string
	Risk  string
}

// Config enumerates the classification rules of an analysis pass.
// All rule sets are explicit inputs; the analyzer reads no ambient
// state.
type Config struct {
	// SensitiveHeaders are lowercased substrings; a header whose
	// lowercased name contains any of them yields a finding.
	SensitiveHeaders []string

	// ParamTokens are lowercased substrings; a parameter whose
	// lowercased name contains any of them is flagged sensitive.
	ParamTokens []string

	// APIKeyParams are exact lowercased parameter names that count as
	// an API key exposure (stricter than ParamTokens).
	APIKeyParams []string

	// HeaderRisks assess matched headers, first match wins;
	// DefaultRisk applies when no rule matches.
	HeaderRisks []HeaderRiskRule
	DefaultRisk string

	// HeaderValueLimit caps recorded header values; longer values are
	// truncated with an ellipsis.
	HeaderValueLimit int

	// SessionIDLimit caps recorded session identifiers.
	SessionIDLimit int
}

// DefaultConfig returns the standard rule set.
func DefaultConfig() Config {
	return Config{
		SensitiveHeaders: []string{
			"user-agent",
			"referer",
			"cookie",
			"accept",
			"accept-language",
			"accept-encoding",
			"dnt",
			"connection",
			"upgrade-insecure-requests",
		},
		ParamTokens: []string{
			"key", "token", "api", "secret", "auth", "session", "id", "uid",
		},
		APIKeyParams: []string{
			"key", "api_key", "apikey",
		},
		HeaderRisks: []HeaderRiskRule{
			{Match: "user-agent", Risk: RiskUserAgent},
			{Match: "cookie", Risk: RiskCookie},
			{Match: "referer", Risk: RiskReferer},
			{Match: "accept-language", Risk: RiskAcceptLanguage},
			{Match: "accept", Risk: RiskAccept},
		},
		DefaultRisk:      RiskStandard,
		HeaderValueLimit: 50,
		SessionIDLimit:   20,
	}
}
