package v22

import (
	"encoding/json"
	"testing"

	"github.com/lightningnetwork/corerpc/model"
	"github.com/stretchr/testify/require"
)

// TestGetNetworkInfo checks the fields added in v22.
func TestGetNetworkInfo(t *testing.T) {
	t.Parallel()

	raw := `{
		"version": 220000,
		"subversion": "/Satoshi:22.0.0/",
		"protocolversion": 70016,
		"localservices": "0000000000000409",
		"localservicesnames": ["NETWORK", "WITNESS", "NETWORK_LIMITED"],
		"localrelay": true,
		"timeoffset": 0,
		"networkactive": true,
		"connections": 10,
		"connections_in": 2,
		"connections_out": 8,
		"networks": [],
		"relayfee": 0.00001,
		"incrementalfee": 0.00001,
		"localaddresses": [],
		"warnings": ""
	}`

	var wire GetNetworkInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &wire))

	info, err := wire.ToModel()
	require.NoError(t, err)
	require.EqualValues(t, 220000, info.Version)
	require.Equal(t, model.SatPerKWeight(250), info.RelayFee)
	require.Len(t, info.LocalServicesNames, 3)
	require.Equal(t, uint32(2), info.ConnectionsIn.UnwrapOr(0))
	require.Equal(t, uint32(8), info.ConnectionsOut.UnwrapOr(0))
	require.Empty(t, info.Warnings)
}

// TestWalletResults checks the unloadwallet warning.
func TestWalletResults(t *testing.T) {
	t.Parallel()

	var unload UnloadWallet
	require.NoError(t, json.Unmarshal(
		[]byte(`{"warning": "wallet is busy"}`), &unload,
	))
	unloaded, err := unload.ToModel()
	require.NoError(t, err)
	require.Equal(t, []string{"wallet is busy"}, unloaded.Warnings)
}
