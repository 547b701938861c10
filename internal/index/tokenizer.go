package index

import (
	"net/url"
	"strings"
	"unicode"
)

// tokenDelimiters defines characters that separate tokens.
const tokenDelimiters = "/?&=.-_:"

// Tokenize splits a string into searchable tokens. Splits on
// / ? & = . - _ : and whitespace, lowercases everything, and drops
// tokens shorter than 2 characters.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= 2 {
			result = append(result, t)
		}
	}
	return result
}

// TokenizeURL extracts tokens from a full URL: host, path segments,
// and query keys and values.
func TokenizeURL(rawURL string) []string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Tokenize(rawURL)
	}

	var parts []string
	if parsed.Host != "" {
		parts = append(parts, parsed.Host)
	}
	if parsed.Path != "" {
		parts = append(parts, parsed.Path)
	}
	if parsed.RawQuery != "" {
		parts = append(parts, parsed.RawQuery)
	}
	return Tokenize(strings.Join(parts, " "))
}
