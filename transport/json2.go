package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/lightningnetwork/corerpc/rpcparams"
)

// JSON2 is a JSON-RPC 2.0 transport over HTTP POST, accepted by bitcoind v28
// and later.
type JSON2 struct {
	url    string
	user   string
	pass   string
	client *http.Client
}

// A compile time check to ensure JSON2 implements Transport.
var _ Transport = (*JSON2)(nil)

// NewJSON2 builds the transport and resolves its credentials.
func NewJSON2(cfg *Config) (*JSON2, error) {
	user, pass, err := cfg.credentials()
	if err != nil {
		return nil, err
	}

	endpoint := cfg.scheme() + "://" + cfg.endpoint()
	log.Infof("Created JSON-RPC 2.0 transport for %v", endpoint)

	return &JSON2{
		url:    endpoint,
		user:   user,
		pass:   pass,
		client: &http.Client{Timeout: cfg.timeout()},
	}, nil
}

// Call implements Transport.
func (j *JSON2) Call(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	logRequest(method, params)

	if params == nil {
		params = []json.RawMessage{}
	}

	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return nil, transportError(method, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, j.url, bytes.NewReader(body),
	)
	if err != nil {
		return nil, transportError(method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(j.user, j.pass)

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, transportError(method, err)
	}
	defer cleanlyCloseBody(resp.Body)

	// bitcoind answers authentication failures with an empty body.
	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden {

		return nil, transportError(method, fmt.Errorf(
			"authentication rejected: %v", resp.Status,
		))
	}

	var result json.RawMessage
	err = json2.DecodeClientResponse(resp.Body, &result)
	switch {
	case errors.Is(err, json2.ErrNullResult):
		logResult(method, rpcparams.Null)
		return rpcparams.Null, nil

	case err != nil:
		var rpcErr *json2.Error
		if errors.As(err, &rpcErr) {
			return nil, serverError(
				method, int(rpcErr.Code), rpcErr.Message,
			)
		}

		return nil, transportError(method, fmt.Errorf(
			"%v: %w", resp.Status, err,
		))
	}

	result = normalizeResult(result)
	logResult(method, result)

	return result, nil
}

// cleanlyCloseBody drains the body so the connection can be reused.
func cleanlyCloseBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
