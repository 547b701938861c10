package traffic

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs every request and
// response passing through it, transparently to caller code.
type Transport struct {
	logger *Logger
	base   http.RoundTripper
}

// NewTransport wraps base with traffic logging. A nil base uses
// http.DefaultTransport.
func NewTransport(l *Logger, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{logger: l, base: base}
}

// NewClient returns an *http.Client whose every call is logged to l.
func NewClient(l *Logger) *http.Client {
	return &http.Client{Transport: NewTransport(l, nil)}
}

// RoundTrip logs the request, forwards it to the base transport, and
// logs the response on success.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	bodySize := 0
	if req.ContentLength > 0 {
		bodySize = int(req.ContentLength)
	}

	entry := t.logger.LogRequest(req.Method, req.URL.String(), RequestInfo{
		Headers:  flattenHeader(req.Header),
		Params:   flattenQuery(req.URL.Query()),
		BodySize: bodySize,
	})

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	respSize := 0
	if resp.ContentLength > 0 {
		respSize = int(resp.ContentLength)
	}

	t.logger.LogResponse(entry, resp.StatusCode, ResponseInfo{
		Headers: flattenHeader(resp.Header),
		Size:    respSize,
		Elapsed: time.Since(start),
	})

	return resp, nil
}

// flattenHeader keeps the first value of each header, which is all the
// exposure analysis inspects.
func flattenHeader(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}

func flattenQuery(values map[string][]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			out[name] = vals[0]
		}
	}
	return out
}
