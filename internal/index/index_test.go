package index

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
			URL: "http://localhost:8080/infer", Domain: "localhost:8080", IsLocalhost: true,
			QueryType: "llm", QueryText: "what is the weather",
		},
		&types.ResponseEvent{Type: types.EventResponse, StatusCode: 200, Domain: "localhost:8080"},
		&types.RequestEvent{
			Type: types.EventRequest, Method: "POST",
			URL: "https://api.example.com/v1/search?q=weather", Domain: "api.example.com",
			QueryType: "search", QueryText: "weather",
			Headers: map[string]string{"User-Agent": "test"},
		},
		&types.RequestEvent{
			Type: types.EventRequest, Method: "GET",
			URL: "https://api.example.com/v1/news", Domain: "api.example.com",
			QueryType: "search",
		},
	}}
}

func TestBuildIndexesRequestsOnly(t *testing.T) {
	ix := Build(testStore())
	assert.Equal(t, 3, ix.Len())
	assert.ElementsMatch(t, []string{"localhost:8080", "api.example.com"}, ix.Domains())
}

func TestSearchFacets(t *testing.T) {
	ix := Build(testStore())

	tests := []struct {
		name     string
		query    Query
		wantPos  []int
	}{
		{"by domain", Query{Domain: "api.example.com"}, []int{2, 3}},
		{"domain is case insensitive", Query{Domain: "API.Example.Com"}, []int{2, 3}},
		{"by method", Query{Method: "post"}, []int{2}},
		{"by query type", Query{QueryType: "llm"}, []int{0}},
		{"by header name", Query{HeaderName: "user-agent"}, []int{2}},
		{"facets are ANDed", Query{Domain: "api.example.com", Method: "GET"}, []int{3}},
		{"no match", Query{Domain: "nowhere.example.com"}, []int{}},
		{"text over query text", Query{Text: "weather"}, []int{0, 2}},
		{"text over url tokens", Query{Text: "news"}, []int{3}},
		{"text tokens are ANDed", Query{Text: "weather search"}, []int{2}},
		{"empty query matches all requests", Query{}, []int{0, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := ix.Search(tt.query, 0)
			positions := make([]int, 0, len(matches))
			for _, m := range matches {
				positions = append(positions, m.Pos)
			}
			assert.Equal(t, tt.wantPos, positions)
		})
	}
}

func TestSearchLimit(t *testing.T) {
	ix := Build(testStore())
	matches := ix.Search(Query{}, 2)
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Pos)
	assert.Equal(t, 2, matches[1].Pos)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"splits on delimiters", "api.example.com/v1/search", []string{"api", "example", "com", "v1", "search"}},
		{"lowercases", "Hello World", []string{"hello", "world"}},
		{"drops short tokens", "a b cd", []string{"cd"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenizeURL(t *testing.T) {
	tokens := TokenizeURL("https://api.example.com/v1/search?q=weather")
	assert.Contains(t, tokens, "api")
	assert.Contains(t, tokens, "search")
	assert.Contains(t, tokens, "weather")
	assert.NotContains(t, tokens, "https")
}
