package traffic

import (
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/usestring/privlabel/pkg/types"
)

// Summary returns aggregate statistics over the logged events.
// Returns a zero-value record when nothing has been logged yet.
func (l *Logger) Summary() types.SummaryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.events) == 0 {
		return types.SummaryRecord{}
	}
	return Summarize(l.events, l.sessionID)
}

// Summarize computes a SummaryRecord over an arbitrary event sequence.
func Summarize(events []types.Event, sessionID string) types.SummaryRecord {
	rec := types.SummaryRecord{
		Domains:   make(map[string]types.DomainStat),
		SessionID: sessionID,
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case *types.RequestEvent:
			rec.TotalRequests++

			domain := e.Domain
			if domain == "" {
				domain = "unknown"
			}
			stat, ok := rec.Domains[domain]
			if !ok {
				stat = types.DomainStat{IsLocalhost: e.IsLocalhost}
			}
			stat.Count++
			rec.Domains[domain] = stat

			if e.IsLocalhost {
				rec.LocalhostRequests++
			} else {
				rec.ExternalRequests++
			}
		case *types.ResponseEvent:
			rec.TotalResponses++
		}
	}

	rec.UniqueDomains = len(rec.Domains)
	return rec
}

// ExportSummary writes the summary together with the full event
// sequence to a single JSON document. A path ending in .gz is
// gzip-compressed.
func (l *Logger) ExportSummary(path string) (types.SummaryRecord, error) {
	l.mu.Lock()
	events := make([]types.Event, len(l.events))
	copy(events, l.events)
	sessionID := l.sessionID
	l.mu.Unlock()

	summary := Summarize(events, sessionID)
	doc := types.SummaryDocument{
		SummaryRecord: summary,
		AllLogs:       events,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return summary, err
	}

	f, err := os.Create(path)
	if err != nil {
		return summary, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			gz.Close()
			return summary, err
		}
		return summary, gz.Close()
	}

	_, err = f.Write(data)
	return summary, err
}
