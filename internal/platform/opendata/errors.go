package opendata

import "fmt"

// Each failure class a page fetch can hit gets its own type so callers
// can tell a dead network apart from a bad payload or the API reporting
// its own failure despite HTTP 200.

// TransportError wraps a network-level failure.
type TransportError struct {
	Page int
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on page %d: %v", e.Page, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Page       int
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d on page %d", e.StatusCode, e.Page)
}

// DecodeError reports a malformed or undecodable response body.
type DecodeError struct {
	Page int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable payload on page %d: %v", e.Page, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UpstreamError reports the API's own embedded failure code, which can
// arrive on an otherwise successful HTTP response.
type UpstreamError struct {
	Page    int
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error on page %d: code=%s msg=%s", e.Page, e.Code, e.Message)
}
