package rpcparams

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/shopspring/decimal"
)

// Marshal encodes a single argument. A nil value encodes as null.
func Marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return Null, nil
	}

	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// MustMarshal is Marshal for constants. It panics if v cannot be encoded.
func MustMarshal(v any) json.RawMessage {
	b, err := Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("unable to encode %v: %v", v, err))
	}

	return b
}

// Optional unwraps an optional argument so that an unset value encodes as
// null.
func Optional[T any](o fn.Option[T]) any {
	var value any
	o.WhenSome(func(t T) {
		value = t
	})

	return value
}

// Amount encodes a satoshi amount as a decimal BTC value with exactly eight
// fractional digits.
func Amount(a btcutil.Amount) json.RawMessage {
	return json.RawMessage(
		decimal.New(int64(a), -8).StringFixed(8),
	)
}

// FeeRate encodes a fee rate in BTC/kvB, the unit bitcoind expects for its
// fee rate arguments.
func FeeRate(rate model.SatPerKVByte) json.RawMessage {
	return Amount(btcutil.Amount(rate))
}

// Param declares one positional parameter of a method.
type Param struct {
	// Name is the server side name of the parameter.
	Name string

	// Optional marks a parameter the caller may leave unset.
	Optional bool

	// Default is sent in place of an unset optional parameter that sits in
	// front of a set one. Null means the parameter has no safe default.
	Default json.RawMessage
}

// Required declares a mandatory parameter.
func Required(name string) Param {
	return Param{Name: name}
}

// OptionalParam declares an optional parameter and its default. A nil
// default declares a parameter that can only be left unset at the end of the
// list.
func OptionalParam(name string, def any) Param {
	return Param{
		Name:     name,
		Optional: true,
		Default:  MustMarshal(def),
	}
}

// ErrBadSignature is returned for a parameter list whose optional parameters
// are not all at the end.
var ErrBadSignature = errors.New("required parameter after optional one")

// Signature is the ordered parameter list of a method.
type Signature []Param

// NumOptional returns the number of optional parameters.
func (s Signature) NumOptional() int {
	var n int
	for _, p := range s {
		if p.Optional {
			n++
		}
	}

	return n
}

// Validate checks that the optional parameters form a suffix of the list.
func (s Signature) Validate() error {
	seenOptional := false
	for _, p := range s {
		switch {
		case p.Optional:
			seenOptional = true

		case seenOptional:
			return fmt.Errorf("%w: %s", ErrBadSignature, p.Name)
		}
	}

	return nil
}

// Defaults returns the defaults of the optional suffix, aligned with it.
func (s Signature) Defaults() []json.RawMessage {
	defaults := make([]json.RawMessage, 0, s.NumOptional())
	for _, p := range s {
		if p.Optional {
			defaults = append(defaults, p.Default)
		}
	}

	return defaults
}

// Encode checks the argument count against the signature and applies default
// elision.
func (s Signature) Encode(args []json.RawMessage) ([]json.RawMessage, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if len(args) != len(s) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(s),
			len(args))
	}

	for i, p := range s {
		if !p.Optional && IsNull(args[i]) {
			return nil, fmt.Errorf("required argument %s is null",
				p.Name)
		}
	}

	return TryHandleDefaults(args, s.Defaults())
}

// Builder collects the arguments of one call. The first encoding failure is
// kept and reported by Args.
type Builder struct {
	args []json.RawMessage
	err  error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add encodes and appends one argument.
func (b *Builder) Add(v any) *Builder {
	if b.err != nil {
		return b
	}

	raw, err := Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("argument %d: %w", len(b.args), err)
		return b
	}
	b.args = append(b.args, raw)

	return b
}

// AddRaw appends an already encoded argument.
func (b *Builder) AddRaw(raw json.RawMessage) *Builder {
	if b.err == nil {
		b.args = append(b.args, raw)
	}

	return b
}

// Args returns the collected arguments.
func (b *Builder) Args() ([]json.RawMessage, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.args, nil
}
