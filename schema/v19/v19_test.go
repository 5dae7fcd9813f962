package v19

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/stretchr/testify/require"
)

// TestSoftforksMap converts the v19 softfork layout.
func TestSoftforksMap(t *testing.T) {
	t.Parallel()

	raw := `{
		"softforks": {
			"bip34": {"type": "buried", "active": true, "height": 500},
			"taproot": {
				"type": "bip9",
				"bip9": {
					"status": "active",
					"start_time": -1,
					"timeout": 9223372036854775807,
					"since": 0
				},
				"height": 0,
				"active": true
			}
		},
		"warnings": ""
	}`

	var wire GetBlockchainInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	softforks, err := wire.SoftforksToModel()
	require.NoError(t, err)

	bip34 := softforks["bip34"]
	require.Equal(t, model.SoftforkBuried, bip34.Type)
	require.Equal(t, uint32(500), bip34.Height.UnwrapOr(0))
	require.True(t, bip34.Bip9.IsNone())

	taproot := softforks["taproot"]
	require.Equal(t, model.SoftforkBip9, taproot.Type)
	require.True(t, taproot.Bip9.IsSome())
	require.True(t, taproot.Active)

	negative := int64(-1)
	wire.Softforks["bip34"] = Softfork{Type: "buried", Height: &negative}
	_, err = wire.SoftforksToModel()

	var numErr *rpcerr.NumericError
	require.ErrorAs(t, err, &numErr)
	require.Equal(t, rpcerr.NumericNegative, numErr.Kind)
}

// TestGetBalances checks the optional watch-only section.
func TestGetBalances(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		raw       string
		watchOnly bool
	}{
		{
			name: "mine only",
			raw: `{"mine": {"trusted": 1.5, "untrusted_pending": 0,
				"immature": 50}}`,
		},
		{
			name: "with watch only",
			raw: `{"mine": {"trusted": 1.5, "untrusted_pending": 0,
				"immature": 50, "used": 0.1},
				"watchonly": {"trusted": 2, "untrusted_pending": 0,
				"immature": 0}}`,
			watchOnly: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var wire GetBalances
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &wire))

			balances, err := wire.ToModel()
			require.NoError(t, err)
			require.Equal(
				t, btcutil.Amount(150_000_000),
				balances.Mine.Trusted,
			)
			require.Equal(
				t, btcutil.Amount(5_000_000_000),
				balances.Mine.Immature,
			)
			require.Equal(t, tc.watchOnly, balances.WatchOnly.IsSome())
			require.Equal(
				t, tc.watchOnly, balances.Mine.Used.IsSome(),
			)
		})
	}
}
