// Package analyzer classifies and aggregates privacy-exposure signals
// from a loaded traffic log.
package analyzer

import (
	"sort"
	"strings"

	"github.com/usestring/privlabel/internal/store"
	"github.com/usestring/privlabel/pkg/types"
)

// Analyzer runs the exposure analysis pass over one store.
type Analyzer struct {
	store *store.Store
	cfg   Config
}

// New creates an Analyzer for st with the given rule set.
func New(st *store.Store, cfg Config) *Analyzer {
	return &Analyzer{store: st, cfg: cfg}
}

// Analyze iterates the store's RequestEvents in log order and
// aggregates their exposure signals. ResponseEvents are excluded from
// this pass. Localhost requests count toward totals and still have
// their query text, headers, parameters, and timing recorded; they are
// only excluded from the external-domain and IP-exposure signals.
func (a *Analyzer) Analyze() *types.AnalysisResult {
	res := &types.AnalysisResult{
		DomainsContacted: make(map[string]int),
		LocalhostOnly:    true,
		ExternalDomains:  []string{},
		QueryDataLeaked:  []types.QueryExposure{},
		HeadersAnalysis:  make(map[string][]types.HeaderFinding),
		MetadataExposure: []types.ParamExposure{},
		APIKeysExposed:   []types.APIKeyExposure{},
		TimingPatterns:   []types.TimingObservation{},
		SessionTracking:  []types.SessionObservation{},
	}

	seenExternal := make(map[string]bool)

	for _, ev := range a.store.Events {
		req, ok := ev.(*types.RequestEvent)
		if !ok {
			continue
		}
		res.TotalRequests++

		domain := req.Domain
		if domain == "" {
			domain = "unknown"
		}
		res.DomainsContacted[domain]++

		if !req.IsLocalhost {
			res.LocalhostOnly = false
			res.IPAddressExposure = true
			if !seenExternal[domain] {
				seenExternal[domain] = true
				res.ExternalDomains = append(res.ExternalDomains, domain)
			}
		}

		if req.QueryText != "" {
			res.QueryDataLeaked = append(res.QueryDataLeaked, types.QueryExposure{
				Domain: domain,
				Query:  req.QueryText,
				URL:    req.URL,
			})
		}

		a.scanHeaders(req, domain, res)
		a.scanParams(req, domain, res)

		if !req.Timestamp.IsZero() {
			res.TimingPatterns = append(res.TimingPatterns, types.TimingObservation{
				Domain:    domain,
				Timestamp: req.Timestamp,
			})
		}

		if req.SessionID != "" && !req.IsLocalhost {
			res.SessionTracking = append(res.SessionTracking, types.SessionObservation{
				Domain:    domain,
				SessionID: truncate(req.SessionID, a.cfg.SessionIDLimit),
			})
		}
	}

	return res
}

// scanHeaders records a finding for every header matching the
// sensitive set, with a truncated value and a risk assessment.
func (a *Analyzer) scanHeaders(req *types.RequestEvent, domain string, res *types.AnalysisResult) {
	// Sorted iteration keeps repeated analyses byte-identical.
	for _, name := range sortedKeys(req.Headers) {
		value := req.Headers[name]
		lower := strings.ToLower(name)
		matched := false
		for _, token := range a.cfg.SensitiveHeaders {
			if strings.Contains(lower, token) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		res.HeadersAnalysis[name] = append(res.HeadersAnalysis[name], types.HeaderFinding{
			Domain:      domain,
			Value:       truncate(value, a.cfg.HeaderValueLimit),
			PrivacyRisk: a.assessHeaderRisk(lower),
		})
	}
}

// assessHeaderRisk returns the risk string for a lowercased header
// name, first matching rule wins.
func (a *Analyzer) assessHeaderRisk(lowerName string) string {
	for _, rule := range a.cfg.HeaderRisks {
		if strings.Contains(lowerName, rule.Match) {
			return rule.Risk
		}
	}
	return a.cfg.DefaultRisk
}

// scanParams flags sensitive parameter names and records API key
// exposures for exact matches of the API key set.
func (a *Analyzer) scanParams(req *types.RequestEvent, domain string, res *types.AnalysisResult) {
	if len(req.Params) == 0 {
		return
	}

	exposure := types.ParamExposure{
		Domain:          domain,
		Params:          make(map[string]string, len(req.Params)),
		SensitiveParams: []string{},
	}

	for _, name := range sortedKeys(req.Params) {
		value := req.Params[name]
		lower := strings.ToLower(name)
		exposure.Params[name] = value

		sensitive := false
		for _, token := range a.cfg.ParamTokens {
			if strings.Contains(lower, token) {
				sensitive = true
				break
			}
		}
		if !sensitive {
			continue
		}

		for _, exact := range a.cfg.APIKeyParams {
			if lower == exact {
				res.APIKeysExposed = append(res.APIKeysExposed, types.APIKeyExposure{
					Domain:  domain,
					Param:   name,
					Exposed: true,
				})
				break
			}
		}
		exposure.SensitiveParams = append(exposure.SensitiveParams, name)
	}

	res.MetadataExposure = append(res.MetadataExposure, exposure)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncate caps s at limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
