// Package rpcerr defines the closed set of failures a versioned RPC call can
// produce. Every error returned by the client is, or wraps, an *Error whose
// Kind tells the caller whether the failure is worth retrying.
package rpcerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the layers a call can fail in.
type Kind uint8

const (
	// KindTransport is a connection, timeout or HTTP level failure.
	KindTransport Kind = iota + 1

	// KindProtocol means the server ran the call and answered with a
	// JSON-RPC error object.
	KindProtocol

	// KindDecode means the result was not JSON or did not have the wire
	// shape of the requested version.
	KindDecode

	// KindConversion means the wire value decoded but could not be turned
	// into its model type.
	KindConversion

	// KindVersionMismatch means the server reported a version outside the
	// client's expected set.
	KindVersionMismatch

	// KindCredential means no usable credentials were available.
	KindCredential
)

// String returns the human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	case KindConversion:
		return "conversion"
	case KindVersionMismatch:
		return "version mismatch"
	case KindCredential:
		return "credential"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Retryable reports whether a failure of this kind may succeed when the same
// call is issued again. Conversion, version and credential failures are
// permanent for a given server and configuration.
func (k Kind) Retryable() bool {
	return k == KindTransport || k == KindProtocol
}

var (
	// ErrMissingUserPassword is returned when a client is built without any
	// credentials.
	ErrMissingUserPassword = errors.New("missing user and password")

	// ErrInvalidCookieFile is returned when the cookie file cannot be read
	// or does not contain a user:password line.
	ErrInvalidCookieFile = errors.New("invalid cookie file")

	// ErrUnknownVariant is returned when a wire enum holds a string outside
	// the known set.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrUnexpectedNull is returned when the server answered null for a
	// method that always returns a value.
	ErrUnexpectedNull = errors.New("unexpected null result")
)

// Error is the single caller facing error type. Method is empty for failures
// that happen before any call, such as credential resolution.
type Error struct {
	Kind   Kind
	Method string
	Err    error
}

// New wraps err with its kind and the method being called.
func New(kind Kind, method string, err error) *Error {
	return &Error{
		Kind:   kind,
		Method: method,
		Err:    err,
	}
}

// Error returns the error string.
func (e *Error) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("%v error: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %v error: %v", e.Method, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain. Bare conversion
// and version errors are classified even when they have not been wrapped yet.
func KindOf(err error) (Kind, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Kind, true
	}

	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return KindConversion, true
	}

	var numErr *NumericError
	if errors.As(err, &numErr) {
		return KindConversion, true
	}

	var versionErr *VersionMismatchError
	if errors.As(err, &versionErr) {
		return KindVersionMismatch, true
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return KindProtocol, true
	}

	return 0, false
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)

	return ok && k == kind
}

// IsRetryable reports whether err is of a retryable kind.
func IsRetryable(err error) bool {
	k, ok := KindOf(err)

	return ok && k.Retryable()
}

// ServerError is a JSON-RPC error object returned by the server. Message is
// kept exactly as the server sent it.
type ServerError struct {
	Code    int
	Message string
}

// Common bitcoind error codes.
const (
	CodeInvalidRequest     = -32600
	CodeMethodNotFound     = -32601
	CodeInvalidParams      = -32602
	CodeInternalError      = -32603
	CodeParseError         = -32700
	CodeMiscError          = -1
	CodeInvalidParameter   = -8
	CodeWalletNotFound     = -18
	CodeWalletNotSpecified = -19
	CodeInWarmup           = -28
)

// Error returns the error string.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// VersionMismatchError is returned when the server reports a version outside
// the expected set.
type VersionMismatchError struct {
	Got      int
	Expected []int
}

// Error returns the error string.
func (e *VersionMismatchError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, v := range e.Expected {
		expected[i] = fmt.Sprintf("%d", v)
	}

	return fmt.Sprintf("unexpected server version %d, expected one of "+
		"[%s]", e.Got, strings.Join(expected, ", "))
}
