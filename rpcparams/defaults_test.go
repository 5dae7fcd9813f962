package rpcparams

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

// TestHandleDefaults covers the edge cases of default elision.
func TestHandleDefaults(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []json.RawMessage
		defaults []json.RawMessage
		expected []json.RawMessage
		gapAt    int
	}{
		{
			name:     "no optional parameters",
			args:     []json.RawMessage{raw(`"a"`), raw(`1`)},
			expected: []json.RawMessage{raw(`"a"`), raw(`1`)},
		},
		{
			name: "all optional unset",
			args: []json.RawMessage{
				raw(`"a"`), Null, Null,
			},
			defaults: []json.RawMessage{raw(`""`), raw(`""`)},
			expected: []json.RawMessage{raw(`"a"`)},
		},
		{
			name: "nil slot counts as unset",
			args: []json.RawMessage{
				raw(`"a"`), nil,
			},
			defaults: []json.RawMessage{raw(`true`)},
			expected: []json.RawMessage{raw(`"a"`)},
		},
		{
			name: "only last optional set",
			args: []json.RawMessage{
				raw(`"a"`), Null, raw(`"bech32"`),
			},
			defaults: []json.RawMessage{raw(`""`), Null},
			expected: []json.RawMessage{
				raw(`"a"`), raw(`""`), raw(`"bech32"`),
			},
		},
		{
			name: "first optional set",
			args: []json.RawMessage{
				raw(`"a"`), raw(`"label"`), Null,
			},
			defaults: []json.RawMessage{raw(`""`), Null},
			expected: []json.RawMessage{raw(`"a"`), raw(`"label"`)},
		},
		{
			name: "gap without default",
			args: []json.RawMessage{
				Null, raw(`"00"`),
			},
			defaults: []json.RawMessage{Null, Null},
			gapAt:    1,
		},
		{
			name: "every slot optional",
			args: []json.RawMessage{
				Null, Null,
			},
			defaults: []json.RawMessage{Null, Null},
			expected: []json.RawMessage{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := TryHandleDefaults(tc.args, tc.defaults)
			if tc.gapAt != 0 || tc.expected == nil {
				require.ErrorIs(t, err, ErrMissingDefault)

				var gapErr *GapError
				require.ErrorAs(t, err, &gapErr)
				require.Equal(t, tc.gapAt-1, gapErr.Position)

				require.Panics(t, func() {
					HandleDefaults(tc.args, tc.defaults)
				})

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
			require.Equal(
				t, tc.expected,
				HandleDefaults(tc.args, tc.defaults),
			)
		})
	}
}

// TestHandleDefaultsNoMutation makes sure the caller's slice is left alone
// when a gap is backfilled.
func TestHandleDefaultsNoMutation(t *testing.T) {
	t.Parallel()

	args := []json.RawMessage{Null, raw(`1`)}
	out := HandleDefaults(args, []json.RawMessage{raw(`0`), Null})

	require.Equal(t, []json.RawMessage{raw(`0`), raw(`1`)}, out)
	require.Equal(t, Null, args[0])
}

// TestTooManyDefaults checks the length precondition.
func TestTooManyDefaults(t *testing.T) {
	t.Parallel()

	_, err := TryHandleDefaults(nil, []json.RawMessage{Null})
	require.ErrorIs(t, err, ErrTooManyDefaults)
}

// TestHandleDefaultsProperty checks the output length and backfill rules for
// arbitrary argument lists.
func TestHandleDefaultsProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		k := rapid.IntRange(0, n).Draw(t, "k")
		required := n - k

		args := make([]json.RawMessage, n)
		for i := 0; i < required; i++ {
			args[i] = MustMarshal(i)
		}

		rightmost := -1
		for i := required; i < n; i++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("set%d", i)) {
				args[i] = MustMarshal(i)
				rightmost = i
			} else {
				args[i] = Null
			}
		}

		defaults := make([]json.RawMessage, k)
		gap := false
		for i := range defaults {
			hasDefault := rapid.Bool().Draw(
				t, fmt.Sprintf("default%d", i),
			)
			if hasDefault {
				defaults[i] = MustMarshal(-(i + 1))
				continue
			}

			defaults[i] = Null
			pos := required + i
			if pos < rightmost && IsNull(args[pos]) {
				gap = true
			}
		}

		out, err := TryHandleDefaults(args, defaults)
		if gap {
			if err == nil {
				t.Fatalf("expected gap error, got %v", out)
			}

			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expectedLen := required
		if rightmost != -1 {
			expectedLen = rightmost + 1
		}
		if len(out) != expectedLen {
			t.Fatalf("expected %d slots, got %d", expectedLen,
				len(out))
		}

		for i, slot := range out {
			if IsNull(slot) {
				t.Fatalf("slot %d left null in %s", i, out)
			}
		}
	})
}

// TestSignatureEncode checks declaration validation and encoding through a
// signature.
func TestSignatureEncode(t *testing.T) {
	t.Parallel()

	sig := Signature{
		Required("address"),
		Required("amount"),
		OptionalParam("comment", ""),
		OptionalParam("comment_to", ""),
	}
	require.NoError(t, sig.Validate())
	require.Equal(t, 2, sig.NumOptional())

	args, err := NewBuilder().
		Add("bcrt1qexample").
		AddRaw(Amount(btcutil.Amount(50_000))).
		Add(Optional(fn.None[string]())).
		Add(Optional(fn.Some("bob"))).
		Args()
	require.NoError(t, err)

	out, err := sig.Encode(args)
	require.NoError(t, err)
	require.Equal(t, []json.RawMessage{
		raw(`"bcrt1qexample"`), raw(`0.00050000`), raw(`""`),
		raw(`"bob"`),
	}, out)

	_, err = sig.Encode(args[:2])
	require.Error(t, err)

	_, err = sig.Encode([]json.RawMessage{Null, Null, Null, Null})
	require.Error(t, err)

	bad := Signature{OptionalParam("a", 1), Required("b")}
	require.ErrorIs(t, bad.Validate(), ErrBadSignature)
}

// TestAmountEncoding checks the exact decimal rendering of amounts.
func TestAmountEncoding(t *testing.T) {
	t.Parallel()

	require.Equal(t, raw(`0.00050000`), Amount(50_000))
	require.Equal(t, raw(`21000000.00000000`), Amount(btcutil.MaxSatoshi))
	require.Equal(t, raw(`-0.10000000`), Amount(-10_000_000))
	require.Equal(t, raw(`0.00000000`), Amount(0))

	rapid.Check(t, func(t *rapid.T) {
		sats := rapid.Int64Range(0, btcutil.MaxSatoshi).Draw(t, "sats")

		var btc float64
		if err := json.Unmarshal(Amount(btcutil.Amount(sats)), &btc); err != nil {
			t.Fatalf("invalid json: %v", err)
		}

		amt, err := btcutil.NewAmount(btc)
		if err != nil {
			t.Fatalf("unable to convert back: %v", err)
		}
		if int64(amt) != sats {
			t.Fatalf("round trip changed %d to %d", sats, amt)
		}
	})
}
