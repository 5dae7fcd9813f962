package v28

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/stretchr/testify/require"
)

// TestWarningsList checks warnings are passed through as a list.
func TestWarningsList(t *testing.T) {
	t.Parallel()

	wire := GetBlockchainInfo{Warnings: []string{"a", "b"}}
	wire.Chain = "signet"
	wire.BestBlockHash = chainhash.Hash{}.String()
	wire.ChainWork = "01"

	info, err := wire.ToModel()
	require.NoError(t, err)
	require.Equal(t, model.NetworkSignet, info.Chain)
	require.Equal(t, []string{"a", "b"}, info.Warnings)

	wire.Warnings = nil
	info, err = wire.ToModel()
	require.NoError(t, err)
	require.NotNil(t, info.Warnings)
	require.Empty(t, info.Warnings)

	wire.Chain = "mars"
	_, err = wire.ToModel()

	var convErr *rpcerr.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, "chain", convErr.Field)
}

// TestSubmitPackage converts a package result keyed by wtxid.
func TestSubmitPackage(t *testing.T) {
	t.Parallel()

	wtxid := chainhash.Hash{1}
	txid := chainhash.Hash{2}
	replaced := chainhash.Hash{3}

	raw := fmt.Sprintf(`{
		"package_msg": "success",
		"tx-results": {
			%[1]q: {
				"txid": %[2]q,
				"vsize": 141,
				"fees": {
					"base": 0.00001410,
					"effective-feerate": 0.00010000,
					"effective-includes": [%[1]q]
				}
			}
		},
		"replaced-transactions": [%[3]q]
	}`, wtxid, txid, replaced)

	var wire SubmitPackage
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	pkg, err := wire.ToModel()
	require.NoError(t, err)
	require.Equal(t, "success", pkg.PackageMsg)
	require.Equal(t, []chainhash.Hash{replaced}, pkg.ReplacedTransactions)

	result, ok := pkg.TxResults[wtxid]
	require.True(t, ok)
	require.Equal(t, txid, result.Txid)
	require.Equal(t, uint32(141), result.VSize.UnwrapOr(0))

	fees, err := result.Fees.UnwrapOrErr(fmt.Errorf("no fees"))
	require.NoError(t, err)
	require.EqualValues(t, 1410, fees.Base)
	require.Equal(
		t, model.SatPerKWeight(2500),
		fees.EffectiveFeeRate.UnwrapOr(0),
	)
	require.Equal(t, []chainhash.Hash{wtxid}, fees.EffectiveIncludes)
}
