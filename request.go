package apacai

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/transport"
)

// Request is one call issued on behalf of an object.
type Request struct {
	Method string
	Path   string
	// Params are sent as the query for GET and DELETE, as the JSON body otherwise.
	// When nil the object's retrieve params are used.
	Params  any
	Headers map[string]string
	Stream  bool
	// PlainOldData returns the decoded response without materializing it.
	PlainOldData bool
	RequestID    string
	Timeout      time.Duration
}

// Outcome is the result of Issue: a single materialized value, or a lazy stream of
// materialized chunks when the request was streamed.
type Outcome struct {
	Value  any
	Stream iter.Seq2[any, error]
}

// Streaming reports whether the outcome is a stream.
func (o Outcome) Streaming() bool {
	return o.Stream != nil
}

// Resource returns the value as a Resource when it is one.
func (o Outcome) Resource() (Resource, bool) {
	r, ok := o.Value.(Resource)
	return r, ok
}

// Issue performs req with a requestor built from the object's identity and
// materializes the response. Streamed chunks are materialized one at a time as the
// stream is consumed.
func (o *Object) Issue(ctx context.Context, req Request) (Outcome, error) {
	e := env()
	call, err := o.call(req)
	if err != nil {
		return Outcome{}, err
	}

	requestor, err := e.factory(o.requestorConfig(e.config))
	if err != nil {
		return Outcome{}, err
	}
	res, err := requestor.Request(ctx, call)
	if err != nil {
		return Outcome{}, err
	}

	identity := Identity{
		APIKey:       res.APIKey,
		APIVersion:   o.apiVersion,
		APIType:      o.apiType,
		Organization: o.organization,
	}
	if res.Stream {
		return Outcome{Stream: materializeStream(res.Chunks, identity, req.PlainOldData)}, nil
	}
	if res.Response == nil {
		return Outcome{}, fmt.Errorf("requestor returned no response for %s %s", call.Method, call.Path)
	}
	return Outcome{Value: materialize(res.Response, identity, req.PlainOldData)}, nil
}

// IssueAsync runs Issue in the background.
func (o *Object) IssueAsync(ctx context.Context, req Request) *Future[Outcome] {
	f := NewFuture[Outcome]()
	go func() {
		f.resolve(o.Issue(ctx, req))
	}()
	return f
}

func (o *Object) call(req Request) (transport.Call, error) {
	params := o.retrieveParams
	if req.Params != nil {
		p, err := jsonx.ToOrderedJSON(req.Params)
		if err != nil {
			return transport.Call{}, fmt.Errorf("invalid request params: %w", err)
		}
		params = p
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	return transport.Call{
		Method:    method,
		Path:      req.Path,
		Params:    params,
		Headers:   req.Headers,
		Stream:    req.Stream,
		RequestID: req.RequestID,
		Timeout:   req.Timeout,
	}, nil
}

func materializeStream(chunks iter.Seq2[*transport.Response, error], identity Identity, plain bool) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		if chunks == nil {
			return
		}
		for chunk, err := range chunks {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(materialize(chunk, identity, plain), nil) {
				return
			}
		}
	}
}
