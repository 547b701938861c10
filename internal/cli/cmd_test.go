package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `{"timestamp":"2025-01-15T10:30:00Z","session_id":"s","type":"request","method":"POST","url":"https://api.example.com/v1/search?q=weather","domain":"api.example.com","path":"/v1/search","scheme":"https","headers":{"User-Agent":"test-agent"},"params":{"q":"weather"},"query_type":"search","query_text":"weather","data_size":0,"params_size":9,"is_localhost":false}
{"timestamp":"2025-01-15T10:30:01Z","session_id":"s","type":"response","request_id":0,"status_code":200,"headers":{},"response_size":512,"response_time":0.2,"url":"https://api.example.com/v1/search?q=weather","domain":"api.example.com"}
`

const localLog = `{"timestamp":"2025-01-15T10:30:00Z","session_id":"s","type":"request","method":"POST","url":"http://localhost:8080/infer","domain":"localhost:8080","path":"/infer","scheme":"http","headers":{},"params":{},"data_size":0,"params_size":0,"is_localhost":true}
`

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestReportCommand(t *testing.T) {
	logPath := writeLog(t, "traffic.jsonl", sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "report", logPath, "-o", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "PRIVACY LABEL SUMMARY")
	assert.Contains(t, out, "Privacy Score: 72/100")
	assert.FileExists(t, outPath)
}

func TestReportCommandMissingFile(t *testing.T) {
	_, err := execute(t, "report", filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	localPath := writeLog(t, "local.jsonl", localLog)
	cloudPath := writeLog(t, "cloud.jsonl", sampleLog)

	out, err := execute(t, "compare", localPath, cloudPath)
	require.NoError(t, err)

	assert.Contains(t, out, "PRIVACY COMPARISON")
	assert.Contains(t, out, "Local system score:  100/100")
	assert.Contains(t, out, "Cloud system score:  72/100")
}

func TestSummaryCommand(t *testing.T) {
	logPath := writeLog(t, "traffic.jsonl", sampleLog)

	out, err := execute(t, "summary", logPath)
	require.NoError(t, err)

	assert.Contains(t, out, `"total_requests": 1`)
	assert.Contains(t, out, `"total_responses": 1`)
	assert.Contains(t, out, `"session_id": "s"`)
}

func TestSummaryCommandEnvDefaultLog(t *testing.T) {
	logPath := writeLog(t, "traffic.jsonl", sampleLog)
	t.Setenv("TRAFFIC_LOG_FILE", logPath)

	out, err := execute(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_requests": 1`)
}

func TestQueryCommand(t *testing.T) {
	logPath := writeLog(t, "traffic.jsonl", sampleLog)

	out, err := execute(t, "query", logPath, `select(.type == "request") | .domain`)
	require.NoError(t, err)
	assert.Contains(t, out, `"api.example.com"`)
}

func TestSearchCommand(t *testing.T) {
	logPath := writeLog(t, "traffic.jsonl", sampleLog)

	out, err := execute(t, "search", logPath, "--domain", "api.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "api.example.com")

	out, err = execute(t, "search", logPath, "--domain", "nowhere.example.com")
	require.NoError(t, err)
	assert.NotContains(t, out, "api.example.com")
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid log", func(t *testing.T) {
		logPath := writeLog(t, "traffic.jsonl", sampleLog)
		out, err := execute(t, "validate", logPath)
		require.NoError(t, err)
		assert.Contains(t, out, "2 records checked, 0 invalid")
	})

	t.Run("invalid record", func(t *testing.T) {
		logPath := writeLog(t, "bad.jsonl", `{"type":"request"}`+"\n")
		out, err := execute(t, "validate", logPath)
		require.Error(t, err)
		assert.Contains(t, out, "1 records checked, 1 invalid")
	})

	t.Run("oversized record", func(t *testing.T) {
		huge := `{"timestamp":"2025-01-15T10:30:00Z","session_id":"s","type":"request","method":"GET","url":"https://api.example.com/q","query_text":"` +
			strings.Repeat("w", 5*1024*1024) + `"}`
		logPath := writeLog(t, "huge.jsonl", huge+"\n"+sampleLog)
		out, err := execute(t, "validate", logPath)
		require.NoError(t, err)
		assert.Contains(t, out, "3 records checked, 0 invalid")
	})
}
