package telemetry

import (
	"net/http"
	"strconv"
	"time"
)

// UpstreamTransport is an http.RoundTripper that records request counts
// and durations for calls to the Lanyard API.
type UpstreamTransport struct {
	base    http.RoundTripper
	metrics *Metrics
}

// NewUpstreamTransport wraps base with upstream request metrics. A nil
// base falls back to http.DefaultTransport.
func NewUpstreamTransport(base http.RoundTripper, metrics *Metrics) *UpstreamTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &UpstreamTransport{
		base:    base,
		metrics: metrics,
	}
}

// RoundTrip implements http.RoundTripper. Transport failures are
// recorded under the "error" label.
func (t *UpstreamTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)

	duration := time.Since(start)
	statusCode := "error"
	if err == nil {
		statusCode = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.RecordUpstreamRequest(statusCode, duration)

	return resp, err
}
