// Package transport carries JSON-RPC calls to bitcoind. Every failure is
// returned as an *rpcerr.Error of kind Transport or Protocol.
package transport

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/lightningnetwork/corerpc/lnutils"
	"github.com/lightningnetwork/corerpc/rpcauth"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/rpcparams"
)

// Transport sends one named method with positional parameters and returns
// the raw result. A JSON null result is returned as rpcparams.Null.
type Transport interface {
	Call(ctx context.Context, method string,
		params []json.RawMessage) (json.RawMessage, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error)

// Call implements Transport.
func (f Func) Call(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	return f(ctx, method, params)
}

// DefaultTimeout bounds a call made without a context deadline.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings shared by the HTTP transports.
type Config struct {
	// Host is the host:port of the RPC server.
	Host string

	// Auth supplies the credentials. It is resolved once when the
	// transport is built.
	Auth rpcauth.Auth

	// Wallet sends calls to the named wallet endpoint when set.
	Wallet string

	// DisableTLS selects plain HTTP. bitcoind itself never serves TLS.
	DisableTLS bool

	// Timeout is the per call HTTP timeout.
	Timeout time.Duration
}

// endpoint returns the host with the wallet path appended.
func (c *Config) endpoint() string {
	host := strings.TrimSuffix(c.Host, "/")
	if c.Wallet == "" {
		return host
	}

	return host + "/wallet/" + url.PathEscape(c.Wallet)
}

// scheme returns the URL scheme for the config.
func (c *Config) scheme() string {
	if c.DisableTLS {
		return "http"
	}

	return "https"
}

// timeout returns the configured timeout or the default.
func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}

	return c.Timeout
}

// credentials resolves the configured auth.
func (c *Config) credentials() (string, string, error) {
	auth := c.Auth
	if auth == nil {
		auth = rpcauth.None{}
	}

	return auth.Resolve()
}

// normalizeResult maps an empty result to null.
func normalizeResult(raw json.RawMessage) json.RawMessage {
	if rpcparams.IsNull(raw) {
		return rpcparams.Null
	}

	return raw
}

// serverError builds the Protocol error for a JSON-RPC error object.
func serverError(method string, code int, message string) error {
	log.Debugf("Server error for %v: code=%d, message=%v", method, code,
		message)

	return rpcerr.New(rpcerr.KindProtocol, method, &rpcerr.ServerError{
		Code:    code,
		Message: message,
	})
}

// transportError builds the Transport error for a failed round trip.
func transportError(method string, err error) error {
	return rpcerr.New(rpcerr.KindTransport, method, err)
}

// logRequest logs an outgoing call at debug.
func logRequest(method string, params []json.RawMessage) {
	log.DebugS(context.Background(), "Sending request", "method",
		method, lnutils.LogParams("params", params))
}

// logResult logs a result body at trace.
func logResult(method string, raw json.RawMessage) {
	log.Tracef("Result for %v: %v", method, lnutils.RawLogClosure(raw, 0))
}
