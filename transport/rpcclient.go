package transport

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
)

// RPCClient is a JSON-RPC 1.0 transport built on btcd's rpcclient in HTTP
// POST mode.
type RPCClient struct {
	conn    *rpcclient.Client
	timeout time.Duration
}

// A compile time check to ensure RPCClient implements Transport.
var _ Transport = (*RPCClient)(nil)

// NewRPCClient builds the transport and resolves its credentials. No
// connection is made until the first call.
func NewRPCClient(cfg *Config) (*RPCClient, error) {
	user, pass, err := cfg.credentials()
	if err != nil {
		return nil, err
	}

	conn, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:                 cfg.endpoint(),
		User:                 user,
		Pass:                 pass,
		DisableConnectOnNew:  true,
		DisableAutoReconnect: false,
		DisableTLS:           cfg.DisableTLS,
		HTTPPostMode:         true,
	}, nil)
	if err != nil {
		return nil, err
	}

	log.Infof("Created JSON-RPC 1.0 transport for %v", cfg.endpoint())

	return &RPCClient{conn: conn, timeout: cfg.timeout()}, nil
}

type rawResult struct {
	result json.RawMessage
	err    error
}

// Call implements Transport. A ctx without a deadline is bounded by the
// configured timeout. The request keeps running in the background if ctx
// expires first, since rpcclient offers no way to abort it.
func (r *RPCClient) Call(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logRequest(method, params)

	resultChan := make(chan rawResult, 1)
	go func() {
		result, err := r.conn.RawRequest(method, params)
		resultChan <- rawResult{result: result, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, r.mapError(method, res.err)
		}

		result := normalizeResult(res.result)
		logResult(method, result)

		return result, nil

	case <-ctx.Done():
		return nil, transportError(method, ctx.Err())
	}
}

// mapError separates server error objects from transport failures.
func (r *RPCClient) mapError(method string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return serverError(method, int(rpcErr.Code), rpcErr.Message)
	}

	return transportError(method, err)
}

// Shutdown releases the underlying client.
func (r *RPCClient) Shutdown() {
	r.conn.Shutdown()
}
