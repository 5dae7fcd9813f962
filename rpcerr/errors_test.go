package rpcerr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKindOf checks that every failure kind can be told apart without
// looking at message text.
func TestKindOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		err       error
		kind      Kind
		retryable bool
	}{
		{
			name:      "transport",
			err:       New(KindTransport, "getblock", errors.New("eof")),
			kind:      KindTransport,
			retryable: true,
		},
		{
			name: "protocol",
			err: New(KindProtocol, "getblock", &ServerError{
				Code: CodeInvalidParameter, Message: "bad",
			}),
			kind:      KindProtocol,
			retryable: true,
		},
		{
			name:      "bare server error",
			err:       &ServerError{Code: CodeMiscError},
			kind:      KindProtocol,
			retryable: true,
		},
		{
			name: "wrapped conversion",
			err: fmt.Errorf("outer: %w", NewConversionError(
				"bestblock", hex.ErrLength,
			)),
			kind: KindConversion,
		},
		{
			name: "numeric",
			err: &NumericError{
				Kind: NumericNegative, Field: "height", Value: -1,
			},
			kind: KindConversion,
		},
		{
			name: "version",
			err: &VersionMismatchError{
				Got: 270100, Expected: []int{280000},
			},
			kind: KindVersionMismatch,
		},
		{
			name: "credential",
			err:  New(KindCredential, "", ErrMissingUserPassword),
			kind: KindCredential,
		},
		{
			name: "decode",
			err:  New(KindDecode, "uptime", errors.New("bad json")),
			kind: KindDecode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kind, ok := KindOf(tc.err)
			require.True(t, ok)
			require.Equal(t, tc.kind, kind)
			require.True(t, Is(tc.err, tc.kind))
			require.Equal(t, tc.retryable, IsRetryable(tc.err))
		})
	}

	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)
}

// TestErrorChain makes sure the root cause survives every layer of
// wrapping.
func TestErrorChain(t *testing.T) {
	t.Parallel()

	serverErr := &ServerError{
		Code:    CodeWalletNotFound,
		Message: "Requested wallet does not exist or is not loaded",
	}
	err := New(KindProtocol, "getbalance", serverErr)

	var target *ServerError
	require.ErrorAs(t, err, &target)
	require.Equal(t, serverErr.Message, target.Message)
	require.Contains(t, err.Error(), "getbalance")
	require.Contains(t, err.Error(), serverErr.Message)

	convErr := New(KindConversion, "gettxout", NewConversionError(
		"bestblock", hex.InvalidByteError('z'),
	))
	require.ErrorIs(t, convErr, hex.InvalidByteError('z'))

	cookieErr := New(KindCredential, "", fmt.Errorf("%w: no colon",
		ErrInvalidCookieFile))
	require.ErrorIs(t, cookieErr, ErrInvalidCookieFile)
}

// TestConversionErrorPath checks that nested conversion errors build up a
// full field path.
func TestConversionErrorPath(t *testing.T) {
	t.Parallel()

	inner := NewConversionError("address", ErrUnknownVariant)
	indexed := NewConversionError("[2]", inner)
	outer := NewConversionError("details", indexed)

	require.Equal(t, "details[2].address", outer.Field)
	require.ErrorIs(t, outer, ErrUnknownVariant)

	numeric := &NumericError{
		Kind: NumericOverflow, Field: "port", Value: 1 << 40,
	}
	wrapped := NewConversionError(
		"localaddresses", NewConversionError("[0]", numeric),
	)
	require.Equal(t, "localaddresses[0].port", wrapped.Field)

	var numErr *NumericError
	require.ErrorAs(t, wrapped, &numErr)
	require.Equal(t, NumericOverflow, numErr.Kind)
}

// TestVersionMismatchError checks that both values are carried.
func TestVersionMismatchError(t *testing.T) {
	t.Parallel()

	err := &VersionMismatchError{
		Got:      270100,
		Expected: []int{280000},
	}
	require.Equal(
		t, "unexpected server version 270100, expected one of "+
			"[280000]", err.Error(),
	)
}
