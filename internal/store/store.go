// Package store loads persisted traffic logs. It accepts line-delimited
// JSONL stores, aggregate summary documents, and gzip-compressed
// variants of either.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/usestring/privlabel/pkg/types"
)

// LoadError reports a log file that is missing or entirely
// unparseable. Individual malformed lines do not cause a LoadError;
// they are skipped during loading.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading traffic log %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is a fully loaded, immutable traffic log.
type Store struct {
	Path   string
	Events []types.Event
}

// Requests returns the RequestEvents of the store in log order.
func (s *Store) Requests() []*types.RequestEvent {
	var out []*types.RequestEvent
	for _, ev := range s.Events {
		if req, ok := ev.(*types.RequestEvent); ok {
			out = append(out, req)
		}
	}
	return out
}

// Load reads a persisted traffic log from path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	events, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &Store{Path: path, Events: events}, nil
}

// Parse decodes a traffic log from raw bytes. An aggregate summary
// document is tried first; anything else is treated as line-delimited
// records, skipping malformed lines. Content with no parseable event
// at all is an error.
func Parse(data []byte) ([]types.Event, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if events, ok := parseAggregate(data); ok {
		return events, nil
	}

	events := parseLines(data)
	if len(events) == 0 {
		return nil, errors.New("no parseable event records")
	}
	return events, nil
}

// aggregateDoc matches the summary-document export format. The event
// list lives under "all_logs"; "logs" is accepted for older exports.
type aggregateDoc struct {
	AllLogs []json.RawMessage `json:"all_logs"`
	Logs    []json.RawMessage `json:"logs"`
}

func parseAggregate(data []byte) ([]types.Event, bool) {
	var doc aggregateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}

	raw := doc.AllLogs
	if raw == nil {
		raw = doc.Logs
	}
	if raw == nil {
		return nil, false
	}

	events := make([]types.Event, 0, len(raw))
	for _, rec := range raw {
		ev, err := decodeEvent(rec)
		if err != nil {
			slog.Debug("skipping malformed event record", "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, true
}

// parseLines splits data on newlines and decodes each record. Record
// size is unbounded; the logger's writer does not cap line length, so
// a log with one huge header or query value must still round-trip.
func parseLines(data []byte) []types.Event {
	var events []types.Event

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		ev, err := decodeEvent(line)
		if err != nil {
			// Tolerates partial trailing lines of an in-progress log.
			slog.Debug("skipping malformed log line", "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events
}

// decodeEvent dispatches a raw record on its "type" field.
func decodeEvent(raw []byte) (types.Event, error) {
	var head struct {
		Type types.EventType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case types.EventRequest:
		var ev types.RequestEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case types.EventResponse:
		var ev types.ResponseEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", head.Type)
	}
}
