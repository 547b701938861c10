package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/privlabel/internal/store"
	"github.com/usestring/privlabel/pkg/types"
)

func testStore() *store.Store {
	return &store.Store{Events: []types.Event{
		&types.RequestEvent{
			Type: types.EventRequest, Method: "GET",
			URL: "http://localhost:8080/a", Domain: "localhost:8080", IsLocalhost: true,
		},
		&types.RequestEvent{
			Type: types.EventRequest, Method: "POST",
			URL: "https://api.example.com/b", Domain: "api.example.com", QueryText: "weather",
		},
		&types.ResponseEvent{
			Type: types.EventResponse, StatusCode: 200, Domain: "api.example.com",
		},
	}}
}

func TestEventsSimpleField(t *testing.T) {
	result, err := NewEngine().Events(testStore(), ".domain", false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"localhost:8080", "api.example.com", "api.example.com"}, result.Values)
	assert.Equal(t, 3, result.RawCount)
	assert.Empty(t, result.Errors)
}

func TestEventsSelect(t *testing.T) {
	expr := `select(.type == "request" and (.is_localhost | not)) | .url`
	result, err := NewEngine().Events(testStore(), expr, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"https://api.example.com/b"}, result.Values)
}

func TestEventsDeduplicate(t *testing.T) {
	result, err := NewEngine().Events(testStore(), ".domain", true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"localhost:8080", "api.example.com"}, result.Values)
	assert.Equal(t, 3, result.RawCount)
}

func TestEventsMaxResults(t *testing.T) {
	result, err := NewEngine().Events(testStore(), ".domain", false, 2)
	require.NoError(t, err)
	assert.Len(t, result.Values, 2)
}

func TestEventsInvalidExpression(t *testing.T) {
	_, err := NewEngine().Events(testStore(), ".domain |", false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEventsPerEventErrors(t *testing.T) {
	// ascii_downcase errors on non-string inputs per event, but the
	// query itself still succeeds.
	result, err := NewEngine().Events(testStore(), ".status_code | ascii_downcase", false, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Errors)
}
