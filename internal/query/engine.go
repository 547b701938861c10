// Package query provides JQ-based querying over traffic log events.
package query

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/itchyny/gojq"

	"github.com/usestring/privlabel/internal/store"
)

// Engine executes JQ expressions against event records.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the results of a JQ query over a store.
type Result struct {
	Values   []any    `json:"values"`
	Errors   []string `json:"errors,omitempty"`
	RawCount int      `json:"raw_count"`
}

// Events runs expression against every event record of the store, in
// log order. Each record is presented to the expression as a plain
// JSON object, so `.domain`, `select(.type == "request")`, etc. work
// directly. Per-event errors are collected, not fatal.
func (e *Engine) Events(st *store.Store, expression string, deduplicate bool, maxResults int) (*Result, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compiling jq expression: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}
	seen := make(map[string]bool)
	seenErrors := make(map[string]bool)

	for i, ev := range st.Events {
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}

		input, err := toAny(ev)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("event[%d]: %v", i, err))
			continue
		}

		iter := code.Run(input)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if qerr, isErr := v.(error); isErr {
				msg := fmt.Sprintf("event[%d]: %v", i, qerr)
				if !seenErrors[msg] {
					result.Errors = append(result.Errors, msg)
					seenErrors[msg] = true
				}
				continue
			}
			if v == nil {
				continue
			}

			result.RawCount++

			if deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			result.Values = append(result.Values, v)
			if maxResults > 0 && len(result.Values) >= maxResults {
				break
			}
		}
	}

	return result, nil
}

// toAny round-trips a typed event through JSON to the untyped form
// gojq operates on.
func toAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// valueKey produces a stable deduplication key for a query value.
func valueKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
