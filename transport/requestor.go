package transport

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/casualjim/apacai/pkg/jsonx"
)

// Response is the envelope a requestor hands back for one decoded payload.
type Response struct {
	// Data is the decoded JSON body: ordered maps, slices and scalars.
	Data any
	// Organization is the organization the API attributed the request to, if reported.
	Organization string
	// ResponseMS is the server processing time in milliseconds, if reported.
	ResponseMS *int
	// RequestID is the id the request was sent with.
	RequestID string
}

// Call describes one outbound API request.
type Call struct {
	Method    string
	Path      string
	Params    *jsonx.Map
	Headers   map[string]string
	Stream    bool
	RequestID string
	// Timeout bounds the whole request including retries, zero means no timeout.
	Timeout time.Duration
}

// Result is what a requestor returns for a Call.
//
// Exactly one of Response and Chunks is set, depending on Stream.
type Result struct {
	Response *Response
	Chunks   iter.Seq2[*Response, error]
	Stream   bool
	// APIKey is the key the request was authenticated with.
	APIKey string
}

// Requestor performs API calls. Implementations own retries, authentication and
// the wire protocol.
type Requestor interface {
	Request(ctx context.Context, call Call) (Result, error)
}

// Factory builds a requestor for a resolved configuration.
type Factory func(Config) (Requestor, error)

// APIError is returned for non-success responses and for errors reported inside a stream.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d, request %s): %s", e.StatusCode, e.RequestID, msg)
	}
	return fmt.Sprintf("api error (request %s): %s", e.RequestID, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err carries an *APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
