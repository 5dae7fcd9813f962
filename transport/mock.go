package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/rpcparams"
)

// Request is a call recorded by Mock.
type Request struct {
	Method string
	Params []json.RawMessage
}

// response is one scripted reply.
type response struct {
	result json.RawMessage
	err    error
}

// Mock is a scripted Transport for tests. Replies for a method are handed out
// in order and the last one repeats. Unscripted methods fail like an unknown
// method on a real server.
type Mock struct {
	mu        sync.Mutex
	responses map[string][]response
	requests  []Request
}

// A compile time check to ensure Mock implements Transport.
var _ Transport = (*Mock)(nil)

// NewMock returns an empty Mock.
func NewMock() *Mock {
	return &Mock{
		responses: make(map[string][]response),
	}
}

// OnRaw scripts a raw JSON result for method.
func (m *Mock) OnRaw(method string, raw string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses[method] = append(m.responses[method], response{
		result: json.RawMessage(raw),
	})

	return m
}

// On scripts a result for method, encoded with encoding/json.
func (m *Mock) On(method string, result any) *Mock {
	return m.OnRaw(method, string(rpcparams.MustMarshal(result)))
}

// OnError scripts an error for method. The error is returned as is, so tests
// can inject any kind.
func (m *Mock) OnError(method string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses[method] = append(m.responses[method], response{err: err})

	return m
}

// OnServerError scripts a JSON-RPC error object for method.
func (m *Mock) OnServerError(method string, code int, message string) *Mock {
	return m.OnError(method, rpcerr.New(
		rpcerr.KindProtocol, method, &rpcerr.ServerError{
			Code:    code,
			Message: message,
		},
	))
}

// Call implements Transport.
func (m *Mock) Call(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	if err := ctx.Err(); err != nil {
		return nil, transportError(method, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, Request{
		Method: method,
		Params: append([]json.RawMessage(nil), params...),
	})

	queue := m.responses[method]
	if len(queue) == 0 {
		return nil, rpcerr.New(
			rpcerr.KindProtocol, method, &rpcerr.ServerError{
				Code:    rpcerr.CodeMethodNotFound,
				Message: fmt.Sprintf(
					"Method not found: %v", method,
				),
			},
		)
	}

	next := queue[0]
	if len(queue) > 1 {
		m.responses[method] = queue[1:]
	}

	if next.err != nil {
		return nil, next.err
	}

	return normalizeResult(next.result), nil
}

// Requests returns the calls made so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Request(nil), m.requests...)
}

// LastRequest returns the most recent call for method.
func (m *Mock) LastRequest(method string) (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.requests) - 1; i >= 0; i-- {
		if m.requests[i].Method == method {
			return m.requests[i], true
		}
	}

	return Request{}, false
}
