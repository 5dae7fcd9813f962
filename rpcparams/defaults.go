// Package rpcparams builds the positional parameter arrays sent with each
// JSON-RPC call. Trailing optional parameters that were left unset are cut off
// so the server applies its own defaults, while unset parameters that sit in
// front of a set one are backfilled with their declared default.
package rpcparams

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// Null is the JSON null literal. An unset optional argument slot holds
	// this value.
	Null = json.RawMessage("null")

	// ErrMissingDefault is returned when an unset optional parameter comes
	// before a set one and has no default to send in its place.
	ErrMissingDefault = errors.New("optional parameter has no default")

	// ErrTooManyDefaults is returned when more defaults are given than
	// there are argument slots.
	ErrTooManyDefaults = errors.New("more defaults than arguments")
)

// GapError identifies the argument slot that could not be backfilled.
type GapError struct {
	// Position is the zero based index of the slot in the argument list.
	Position int
}

// Error returns the error string.
func (e *GapError) Error() string {
	return fmt.Sprintf("argument %d: %v", e.Position, ErrMissingDefault)
}

// Unwrap returns ErrMissingDefault.
func (e *GapError) Unwrap() error {
	return ErrMissingDefault
}

// IsNull reports whether the encoded value is JSON null. A nil or empty
// message counts as null.
func IsNull(m json.RawMessage) bool {
	trimmed := bytes.TrimSpace(m)

	return len(trimmed) == 0 || bytes.Equal(trimmed, Null)
}

// TryHandleDefaults returns the prefix of args that should be sent to the
// server. The last len(defaults) slots of args are optional and defaults is
// aligned with them.
//
// The optional slots are scanned from last to first. Null slots to the right
// of the rightmost set slot are dropped. Null slots to its left are replaced
// by their default, and if that default is itself null the declaration has a
// gap and a *GapError is returned. When no optional slot is set only the
// required prefix is returned.
//
// The args slice is not modified.
func TryHandleDefaults(args,
	defaults []json.RawMessage) ([]json.RawMessage, error) {

	if len(defaults) > len(args) {
		return nil, fmt.Errorf("%w: %d defaults for %d arguments",
			ErrTooManyDefaults, len(defaults), len(args))
	}

	required := len(args) - len(defaults)

	out := make([]json.RawMessage, len(args))
	copy(out, args)

	rightmost := -1
	for i := len(out) - 1; i >= required; i-- {
		if !IsNull(out[i]) {
			if rightmost == -1 {
				rightmost = i
			}

			continue
		}

		// Nothing set further right, so this slot may still be
		// trimmed away.
		if rightmost == -1 {
			continue
		}

		def := defaults[i-required]
		if IsNull(def) {
			return nil, &GapError{Position: i}
		}
		out[i] = def
	}

	if rightmost == -1 {
		return out[:required], nil
	}

	return out[:rightmost+1], nil
}

// HandleDefaults is TryHandleDefaults for method declarations that are known
// to be correct. A gap without a default is a programming error and causes a
// panic rather than a request carrying null in the middle of its parameters.
func HandleDefaults(args, defaults []json.RawMessage) []json.RawMessage {
	out, err := TryHandleDefaults(args, defaults)
	if err != nil {
		panic(fmt.Sprintf("invalid parameter declaration: %v", err))
	}

	return out
}
