package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/privlabel/pkg/types"
)

func sampleLabel() *types.PrivacyLabel {
	return &types.PrivacyLabel{
		System:          types.SystemCloud,
		DataExitsDevice: []string{"Search queries (1 unique queries)"},
		WhoHasAccess:    []string{"api.example.com"},
		RetentionPolicy: "Unknown - check provider privacy policy",
		PrivacyScore:    72,
		Recommendations: []string{"Queries are being sent to external servers"},
	}
}

func TestBuild(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	analysis := &types.AnalysisResult{TotalRequests: 1}
	lbl := sampleLabel()

	doc := Build("traffic_log.jsonl", analysis, lbl, at)

	assert.Equal(t, at, doc.AnalysisDate)
	assert.Equal(t, "traffic_log.jsonl", doc.LogFile)
	assert.Same(t, analysis, doc.TrafficAnalysis)
	assert.Same(t, lbl, doc.PrivacyLabel)
}

func TestWriteJSON(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	doc := Build("traffic_log.jsonl", &types.AnalysisResult{TotalRequests: 1}, sampleLabel(), at)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.ReportDocument
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "traffic_log.jsonl", got.LogFile)
	assert.Equal(t, 72, got.PrivacyLabel.PrivacyScore)
	assert.True(t, strings.HasPrefix(string(data), "{\n  "), "expected indented output")
}

func TestWriteJSONBadPath(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "missing", "report.json"), sampleLabel())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing document")
}

func TestRender(t *testing.T) {
	var buf strings.Builder
	Render(&buf, sampleLabel())
	out := buf.String()

	assert.Contains(t, out, "PRIVACY LABEL SUMMARY")
	assert.Contains(t, out, "System: Cloud/External")
	assert.Contains(t, out, "Privacy Score: 72/100")
	assert.Contains(t, out, "  - Search queries (1 unique queries)")
	assert.Contains(t, out, "  - api.example.com")
	assert.Contains(t, out, "Retention Policy: Unknown - check provider privacy policy")
	assert.Contains(t, out, "Recommendations:")
}

func TestRenderNoRecommendations(t *testing.T) {
	lbl := sampleLabel()
	lbl.Recommendations = nil

	var buf strings.Builder
	Render(&buf, lbl)
	assert.NotContains(t, buf.String(), "Recommendations:")
}

func TestRenderComparison(t *testing.T) {
	cmp := &types.ComparisonResult{
		LocalSystem: types.SystemReport{
			PrivacyLabel: &types.PrivacyLabel{PrivacyScore: 100},
		},
		CloudSystem: types.SystemReport{
			PrivacyLabel: &types.PrivacyLabel{PrivacyScore: 72},
		},
		KeyDifferences: types.KeyDifferences{
			ExternalDomains: types.SideMetric{Local: 0, Cloud: 1, Delta: -1},
			QueryExposure:   types.SideMetric{Local: 0, Cloud: 1, Delta: -1},
			PrivacyScore:    types.SideMetric{Local: 100, Cloud: 72, Delta: 28},
		},
	}

	var buf strings.Builder
	RenderComparison(&buf, cmp)
	out := buf.String()

	assert.Contains(t, out, "PRIVACY COMPARISON")
	assert.Contains(t, out, "Local system score:  100/100")
	assert.Contains(t, out, "Cloud system score:  72/100")
	assert.Contains(t, out, "External domains: 0 vs 1")
	assert.Contains(t, out, "Privacy score:    100 vs 72")
}
