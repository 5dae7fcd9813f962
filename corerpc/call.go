package corerpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/rpcparams"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/corerpc/transport"
	"github.com/lightningnetwork/lnd/fn/v2"
)

var (
	// ErrUnknownMethod is returned by Invoke for a method the version
	// does not declare.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrTooManyArgs is returned by Invoke when more arguments are given
	// than the method declares.
	ErrTooManyArgs = errors.New("too many arguments")
)

// core is the version independent part of a client: the transport, the
// chain parameters used for addresses and the version's method table.
type core struct {
	version   Version
	transport transport.Transport
	params    *chaincfg.Params
	methods   map[string]Descriptor
}

// newCore builds the core of a client for version v.
func newCore(v Version, t transport.Transport, opts *options) *core {
	return &core{
		version:   v,
		transport: t,
		params:    opts.params,
		methods:   registry[v],
	}
}

// Version returns the release line the client speaks.
func (c *core) Version() Version {
	return c.version
}

// Params returns the chain parameters addresses are decoded against.
func (c *core) Params() *chaincfg.Params {
	return c.params
}

// encode builds the parameter array of a typed call. Typed calls always pass
// one argument per declared parameter, so any failure here is a broken
// declaration and panics.
func (c *core) encode(method string, args []any) []json.RawMessage {
	desc, ok := c.methods[method]
	if !ok {
		panic(fmt.Sprintf("%v: method %v is not declared", c.version,
			method))
	}

	b := rpcparams.NewBuilder()
	for _, arg := range args {
		b.Add(arg)
	}

	raw, err := b.Args()
	if err != nil {
		panic(fmt.Sprintf("%v: unable to encode %v: %v", c.version,
			method, err))
	}

	params, err := desc.Params.Encode(raw)
	if err != nil {
		panic(fmt.Sprintf("%v: invalid call of %v: %v", c.version,
			method, err))
	}

	return params
}

// roundTrip sends params and returns the raw result. Errors from transports
// that do not classify their failures are treated as transport errors.
func (c *core) roundTrip(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	raw, err := c.transport.Call(ctx, method, params)
	if err != nil {
		if _, ok := rpcerr.KindOf(err); !ok {
			err = rpcerr.New(rpcerr.KindTransport, method, err)
		}

		return nil, err
	}

	return raw, nil
}

// decode unmarshals raw into W and converts it.
func decode[W schema.Converter[M], M any](method string, raw json.RawMessage,
	params *chaincfg.Params) (M, error) {

	var (
		wire W
		zero M
	)
	if err := json.Unmarshal(raw, &wire); err != nil {
		return zero, rpcerr.New(rpcerr.KindDecode, method, err)
	}

	if na, ok := any(&wire).(schema.NetworkAware); ok {
		na.SetParams(params)
	}

	m, err := wire.ToModel()
	if err != nil {
		return zero, rpcerr.New(rpcerr.KindConversion, method, err)
	}

	return m, nil
}

// call runs a typed call: it encodes args, sends them, decodes the result
// into the wire type W and converts it to M.
func call[W schema.Converter[M], M any](ctx context.Context, c *core,
	method string, args ...any) (M, error) {

	var zero M

	raw, err := c.roundTrip(ctx, method, c.encode(method, args))
	if err != nil {
		return zero, err
	}

	if rpcparams.IsNull(raw) && !c.methods[method].NullResult {
		return zero, rpcerr.New(
			rpcerr.KindDecode, method, rpcerr.ErrUnexpectedNull,
		)
	}

	return decode[W, M](method, raw, c.params)
}

// callOptional is call for methods where null means no result.
func callOptional[W schema.Converter[M], M any](ctx context.Context,
	c *core, method string, args ...any) (fn.Option[M], error) {

	raw, err := c.roundTrip(ctx, method, c.encode(method, args))
	if err != nil {
		return fn.None[M](), err
	}

	if rpcparams.IsNull(raw) {
		return fn.None[M](), nil
	}

	m, err := decode[W, M](method, raw, c.params)
	if err != nil {
		return fn.None[M](), err
	}

	return fn.Some(m), nil
}

// Invoke calls any declared method with already encoded arguments and
// returns its converted result in the default form. Missing trailing
// arguments are treated as unset. A null result from a method that may
// return one is returned as nil.
func (c *core) Invoke(ctx context.Context, method string,
	args ...json.RawMessage) (any, error) {

	desc, ok := c.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w %v for %v", ErrUnknownMethod, method,
			c.version)
	}

	if len(args) > len(desc.Params) {
		return nil, fmt.Errorf("%w: %v takes %d, got %d",
			ErrTooManyArgs, method, len(desc.Params), len(args))
	}

	padded := make([]json.RawMessage, len(desc.Params))
	for i := range padded {
		padded[i] = rpcparams.Null
		if i < len(args) {
			padded[i] = args[i]
		}
	}

	params, err := desc.Params.Encode(padded)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", method, err)
	}

	raw, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if rpcparams.IsNull(raw) {
		if desc.NullResult {
			return nil, nil
		}

		return nil, rpcerr.New(
			rpcerr.KindDecode, method, rpcerr.ErrUnexpectedNull,
		)
	}

	result := desc.NewResult()
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, rpcerr.New(rpcerr.KindDecode, method, err)
	}
	result.SetParams(c.params)

	m, err := result.Model()
	if err != nil {
		return nil, rpcerr.New(rpcerr.KindConversion, method, err)
	}

	return m, nil
}
