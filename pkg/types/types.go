// Package types provides shared types for privlabel.
// These types are used across multiple packages and mirror the on-disk
// record format of the traffic log, so they are designed for external
// consumption.
package types

import "time"

// EventType discriminates the two record kinds in a traffic log.
type EventType string

const (
	EventRequest  EventType = "request"
	EventResponse EventType = "response"
)

// RedactionMarker replaces the value of sensitive headers in the
// persisted redacted header map. The header name is preserved.
const RedactionMarker = "[REDACTED]"

// Event is one durably logged request or response observation.
type Event interface {
	Kind() EventType
	Session() string
}

// RequestEvent records one outgoing HTTP request.
type RequestEvent struct {
	EntryID    string            `json:"entry_id,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionID  string            `json:"session_id"`
	Type       EventType         `json:"type"`
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	Domain     string            `json:"domain"`
	Path       string            `json:"path"`
	Scheme     string            `json:"scheme"`
	Headers    map[string]string `json:"headers"`
	Params     map[string]string `json:"params"`
	QueryType  string            `json:"query_type,omitempty"`
	QueryText  string            `json:"query_text,omitempty"`
	DataSize   int               `json:"data_size"`
	ParamsSize int               `json:"params_size"`
	// IsLocalhost is true iff the resolved host is localhost, 127.0.0.1
	// or ::1. Localhost traffic never leaves the device.
	IsLocalhost bool `json:"is_localhost"`
	// HeadersRedacted preserves header names but replaces the value of
	// any header whose name contains a sensitive token.
	HeadersRedacted map[string]string `json:"headers_redacted,omitempty"`

	// Seq is the event's position in the logger's in-memory sequence.
	// Assigned at append time, never persisted.
	Seq int `json:"-"`
}

func (e *RequestEvent) Kind() EventType { return EventRequest }
func (e *RequestEvent) Session() string { return e.SessionID }

// ResponseEvent records the response to an earlier RequestEvent.
// RequestID points at the originating request's position in the log;
// a response never precedes its request.
type ResponseEvent struct {
	EntryID      string            `json:"entry_id,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
	SessionID    string            `json:"session_id"`
	Type         EventType         `json:"type"`
	RequestID    int               `json:"request_id"`
	StatusCode   int               `json:"status_code"`
	Headers      map[string]string `json:"headers"`
	ResponseSize int               `json:"response_size"`
	ResponseTime float64           `json:"response_time"` // seconds
	// URL and Domain are copied from the originating request for
	// analyzer convenience.
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

func (e *ResponseEvent) Kind() EventType { return EventResponse }
func (e *ResponseEvent) Session() string { return e.SessionID }

// DomainStat is the per-domain entry in a SummaryRecord.
type DomainStat struct {
	Count       int  `json:"count"`
	IsLocalhost bool `json:"is_localhost"`
}

// SummaryRecord holds aggregate statistics over a logging session.
type SummaryRecord struct {
	TotalRequests     int                   `json:"total_requests"`
	TotalResponses    int                   `json:"total_responses"`
	LocalhostRequests int                   `json:"localhost_requests"`
	ExternalRequests  int                   `json:"external_requests"`
	UniqueDomains     int                   `json:"unique_domains"`
	Domains           map[string]DomainStat `json:"domains"`
	SessionID         string                `json:"session_id"`
}

// SummaryDocument is the aggregate export format: the summary fields
// plus the full event sequence under "all_logs". It is accepted as an
// alternate load path by the analyzer.
type SummaryDocument struct {
	SummaryRecord
	AllLogs []Event `json:"all_logs"`
}
