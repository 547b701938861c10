// Package traffic logs outgoing HTTP requests and responses for
// privacy analysis. Events are appended to a JSONL store, one
// independently parseable record per line.
package traffic

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/usestring/privlabel/pkg/types"
)

// localhostHosts are the hostnames treated as never leaving the device.
var localhostHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// sensitiveHeaderTokens mark headers whose values are redacted in the
// persisted redacted header map.
var sensitiveHeaderTokens = []string{
	"authorization",
	"cookie",
	"token",
	"api-key",
	"secret",
}

// RequestInfo carries the optional parts of a logged request.
type RequestInfo struct {
	Headers   map[string]string
	Params    map[string]string
	Body      []byte
	BodySize  int // used when Body is nil, e.g. streaming requests
	QueryType string
	QueryText string
}

// ResponseInfo carries the optional parts of a logged response.
type ResponseInfo struct {
	Headers map[string]string
	Size    int
	Elapsed time.Duration
}

// Logger records traffic events in memory and appends each one to a
// durable JSONL store. Safe for concurrent use: the append-to-store
// step is serialized so interleaved writes never corrupt a record.
type Logger struct {
	mu        sync.Mutex
	logFile   string
	sessionID string
	events    []types.Event
}

// NewLogger creates a Logger that appends to logFile.
func NewLogger(logFile string) *Logger {
	return &Logger{logFile: logFile}
}

// StartSession assigns a new session identifier combining the current
// timestamp and name. Calling it again overwrites the session id for
// subsequent events only; already-logged events keep theirs.
func (l *Logger) StartSession(name string) {
	if name == "" {
		name = "session"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessionID = time.Now().Format(time.RFC3339) + "_" + name
}

// SessionID returns the current session identifier.
func (l *Logger) SessionID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessionID
}

// LogRequest records an outgoing HTTP request and appends it to the
// store. A store write failure is logged as a warning and swallowed;
// the returned in-memory event is always valid and the logical
// session continues.
func (l *Logger) LogRequest(method, rawURL string, info RequestInfo) *types.RequestEvent {
	var domain, path, scheme, hostname string
	if u, err := url.Parse(rawURL); err == nil {
		domain = u.Host
		path = u.Path
		scheme = u.Scheme
		hostname = u.Hostname()
	}

	dataSize := len(info.Body)
	if dataSize == 0 {
		dataSize = info.BodySize
	}

	ev := &types.RequestEvent{
		EntryID:         uuid.NewString(),
		Timestamp:       time.Now(),
		Type:            types.EventRequest,
		Method:          method,
		URL:             rawURL,
		Domain:          domain,
		Path:            path,
		Scheme:          scheme,
		Headers:         copyMap(info.Headers),
		Params:          copyMap(info.Params),
		QueryType:       info.QueryType,
		QueryText:       info.QueryText,
		DataSize:        dataSize,
		ParamsSize:      paramsSize(info.Params),
		IsLocalhost:     localhostHosts[hostname],
		HeadersRedacted: redactHeaders(info.Headers),
	}

	l.mu.Lock()
	if l.sessionID == "" {
		l.sessionID = time.Now().Format(time.RFC3339) + "_session"
	}
	ev.SessionID = l.sessionID
	ev.Seq = len(l.events)
	l.events = append(l.events, ev)
	l.appendLocked(ev)
	l.mu.Unlock()

	return ev
}

// LogResponse records the response to a previously logged request.
// The back-reference and the URL/domain copies come from req.
// Same durability contract as LogRequest.
func (l *Logger) LogResponse(req *types.RequestEvent, statusCode int, info ResponseInfo) *types.ResponseEvent {
	ev := &types.ResponseEvent{
		EntryID:      uuid.NewString(),
		Timestamp:    time.Now(),
		Type:         types.EventResponse,
		RequestID:    req.Seq,
		StatusCode:   statusCode,
		Headers:      copyMap(info.Headers),
		ResponseSize: info.Size,
		ResponseTime: info.Elapsed.Seconds(),
		URL:          req.URL,
		Domain:       req.Domain,
	}

	l.mu.Lock()
	ev.SessionID = l.sessionID
	l.events = append(l.events, ev)
	l.appendLocked(ev)
	l.mu.Unlock()

	return ev
}

// Events returns a snapshot of the in-memory event sequence.
func (l *Logger) Events() []types.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.Event, len(l.events))
	copy(out, l.events)
	return out
}

// appendLocked serializes ev and appends it as one line to the store.
// Callers must hold l.mu.
func (l *Logger) appendLocked(ev types.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("failed to encode traffic log entry", "error", err)
		return
	}

	f, err := os.OpenFile(l.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("failed to write traffic log", "file", l.logFile, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		slog.Warn("failed to write traffic log", "file", l.logFile, "error", err)
	}
}

// redactHeaders returns a copy of headers with sensitive values
// replaced by the redaction marker. Returns nil for empty input.
func redactHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		lower := strings.ToLower(k)
		redacted := false
		for _, token := range sensitiveHeaderTokens {
			if strings.Contains(lower, token) {
				out[k] = types.RedactionMarker
				redacted = true
				break
			}
		}
		if !redacted {
			out[k] = v
		}
	}
	return out
}

// paramsSize is the URL-encoded length of the parameter map.
func paramsSize(params map[string]string) int {
	if len(params) == 0 {
		return 0
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return len(values.Encode())
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
