package corerpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcauth"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/transport"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

var (
	testHash = chainhash.Hash{1, 2, 3}

	testWork = "00000000000000000000000000000000" +
		"0000000000000000000000000100010001"
)

// blockchainInfo returns a getblockchaininfo result. extra is spliced in
// before the closing brace.
func blockchainInfo(extra string) string {
	return fmt.Sprintf(`{
		"chain": "regtest",
		"blocks": 200,
		"headers": 200,
		"bestblockhash": %q,
		"difficulty": 4.656542373906925e-10,
		"mediantime": 1700000000,
		"verificationprogress": 1,
		"initialblockdownload": false,
		"chainwork": %q,
		"size_on_disk": 60000,
		"pruned": false,
		%s
	}`, testHash, testWork, extra)
}

// networkInfo returns a getnetworkinfo result in the v22 and later layout.
func networkInfo(version int, warnings string) string {
	return fmt.Sprintf(`{
		"version": %d,
		"subversion": "/Satoshi:%d.0.0/",
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
		"warnings": %s
	}`, version, version/10000, warnings)
}

// regtestAddress returns a P2WPKH regtest address and its script in hex.
func regtestAddress(t *testing.T, seed byte) (btcutil.Address, string) {
	t.Helper()

	addr, err := btcutil.NewAddressWitnessPubKeyHash(
		bytes.Repeat([]byte{seed}, 20), &chaincfg.RegressionNetParams,
	)
	require.NoError(t, err)

	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return addr, hex.EncodeToString(script)
}

// newClient returns a regtest client of version v on top of mock.
func newClient(t *testing.T, v Version, mock *transport.Mock) Client {
	t.Helper()

	c, err := New(v, mock, WithNetwork(model.NetworkRegtest))
	require.NoError(t, err)

	return c
}

// paramStrings returns the parameters of the last call of method.
func paramStrings(t *testing.T, mock *transport.Mock,
	method string) []string {

	t.Helper()

	req, ok := mock.LastRequest(method)
	require.True(t, ok, method)

	params := make([]string, len(req.Params))
	for i, p := range req.Params {
		params[i] = string(p)
	}

	return params
}

// TestNewCapabilities checks which optional methods each version exposes.
func TestNewCapabilities(t *testing.T) {
	t.Parallel()

	for _, v := range Versions() {
		t.Run(v.String(), func(t *testing.T) {
			t.Parallel()

			c, err := New(v, transport.NewMock())
			require.NoError(t, err)
			require.Equal(t, v, c.Version())
			require.Equal(t, chaincfg.MainNetParams.Name,
				c.Params().Name)

			_, softforks := c.(SoftforkClient)
			require.Equal(t, v <= V22, softforks)

			_, generate := c.(GenerateClient)
			require.Equal(t, v <= V18, generate)

			_, balances := c.(BalancesClient)
			require.Equal(t, v >= V19, balances)

			_, pkg := c.(PackageClient)
			require.Equal(t, v == V28, pkg)
		})
	}

	_, err := New(Version(16), transport.NewMock())
	require.ErrorIs(t, err, ErrUnknownVersion)

	_, err = New(Version(29), transport.NewMock())
	require.ErrorIs(t, err, ErrUnknownVersion)
}

// TestRegistry checks the method tables follow the release history.
func TestRegistry(t *testing.T) {
	t.Parallel()

	for _, v := range Versions() {
		methods := Methods(v)
		require.Contains(t, methods, "getblockchaininfo")
		require.Contains(t, methods, "gettxout")
		require.IsIncreasing(t, methods)

		_, ok := Describe(v, "generate")
		require.Equal(t, v <= V18, ok, v.String())

		_, ok = Describe(v, "getbalances")
		require.Equal(t, v >= V19, ok, v.String())

		_, ok = Describe(v, "submitpackage")
		require.Equal(t, v == V28, ok, v.String())

		unload, ok := Describe(v, "unloadwallet")
		require.True(t, ok)
		require.Equal(t, v < V22, unload.NullResult, v.String())

		txOut, ok := Describe(v, "gettxout")
		require.True(t, ok)
		require.True(t, txOut.NullResult)
		require.Len(t, txOut.Params, 3)
	}
}

// TestCheckExpectedServerVersion compares the reported version with the
// client's expected set.
func TestCheckExpectedServerVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mock := transport.NewMock().
		OnRaw("getnetworkinfo", networkInfo(280000, "[]"))
	c := newClient(t, V28, mock)

	version, err := c.ServerVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 280000, version)
	require.NoError(t, c.CheckExpectedServerVersion(ctx))

	mock = transport.NewMock().
		OnRaw("getnetworkinfo", networkInfo(270100, "[]"))
	c = newClient(t, V28, mock)

	err = c.CheckExpectedServerVersion(ctx)
	require.True(t, rpcerr.Is(err, rpcerr.KindVersionMismatch))

	var mismatch *rpcerr.VersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, 270100, mismatch.Got)
}

// TestGetTxOut checks the null result and parameter elision of gettxout.
func TestGetTxOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	addr, scriptHex := regtestAddress(t, 7)

	raw := fmt.Sprintf(`{
		"bestblock": %q,
		"confirmations": 0,
		"value": 0.0005,
		"scriptPubKey": {
			"asm": "0 0707070707070707070707070707070707070707",
			"hex": %q,
			"type": "witness_v0_keyhash",
			"address": %q
		},
		"coinbase": false
	}`, testHash, scriptHex, addr.EncodeAddress())

	mock := transport.NewMock().
		OnRaw("gettxout", "null").
		OnRaw("gettxout", raw)
	c := newClient(t, V28, mock)

	out, err := c.GetTxOut(ctx, testHash, 1, fn.None[bool]())
	require.NoError(t, err)
	require.True(t, out.IsNone())
	require.Equal(
		t, []string{fmt.Sprintf("%q", testHash), "1"},
		paramStrings(t, mock, "gettxout"),
	)

	out, err = c.GetTxOut(ctx, testHash, 0, fn.Some(false))
	require.NoError(t, err)
	require.Equal(
		t, []string{fmt.Sprintf("%q", testHash), "0", "false"},
		paramStrings(t, mock, "gettxout"),
	)

	txOut, err := out.UnwrapOrErr(errors.New("no output"))
	require.NoError(t, err)
	require.EqualValues(t, 50_000, txOut.TxOut.Value)
	require.Zero(t, txOut.Confirmations)
	require.Equal(t, testHash, txOut.BestBlock)
	require.Len(t, txOut.Addresses, 1)
	require.Equal(t, addr.EncodeAddress(), txOut.Addresses[0].String())
}

// TestWalletParams checks the encoding of wallet call arguments.
func TestWalletParams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	addr, _ := regtestAddress(t, 9)

	mock := transport.NewMock().
		On("getnewaddress", addr.EncodeAddress()).
		On("sendtoaddress", testHash.String())
	c := newClient(t, V25, mock)

	got, err := c.GetNewAddress(
		ctx, fn.None[string](), fn.Some(model.AddressBech32),
	)
	require.NoError(t, err)
	require.Equal(t, addr.EncodeAddress(), got.String())
	require.Equal(
		t, []string{`""`, `"bech32"`},
		paramStrings(t, mock, "getnewaddress"),
	)

	_, err = c.GetNewAddress(
		ctx, fn.None[string](), fn.None[model.AddressType](),
	)
	require.NoError(t, err)
	require.Empty(t, paramStrings(t, mock, "getnewaddress"))

	sent, err := c.SendToAddress(ctx, addr, 50_000)
	require.NoError(t, err)
	require.Equal(t, testHash, sent.Txid)
	require.Equal(
		t, []string{fmt.Sprintf("%q", addr.EncodeAddress()),
			"0.00050000"},
		paramStrings(t, mock, "sendtoaddress"),
	)
}

// TestGetChainTxStatsWindow checks the optional window arguments.
func TestGetChainTxStatsWindow(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		window fn.Option[ChainTxStatsWindow]
		params []string
	}{
		{
			name:   "server default",
			window: fn.None[ChainTxStatsWindow](),
			params: []string{},
		},
		{
			name: "block count",
			window: fn.Some(ChainTxStatsWindow{
				NBlocks:   10,
				BlockHash: fn.None[chainhash.Hash](),
			}),
			params: []string{"10"},
		},
		{
			name: "ending at hash",
			window: fn.Some(ChainTxStatsWindow{
				NBlocks:   10,
				BlockHash: fn.Some(testHash),
			}),
			params: []string{"10", fmt.Sprintf("%q", testHash)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock := transport.NewMock().OnServerError(
				"getchaintxstats", rpcerr.CodeInvalidParameter,
				"Invalid block count",
			)
			c := newClient(t, V17, mock)

			_, err := c.GetChainTxStats(
				context.Background(), tc.window,
			)
			require.True(t, rpcerr.Is(err, rpcerr.KindProtocol))
			require.Equal(
				t, tc.params,
				paramStrings(t, mock, "getchaintxstats"),
			)
		})
	}
}

// TestErrorKinds checks each failure is reported with its kind.
func TestErrorKinds(t *testing.T) {
	t.Parallel()

	const warmup = "Loading block index..."

	testCases := []struct {
		name  string
		mock  *transport.Mock
		kind  rpcerr.Kind
		cause error
	}{
		{
			name: "server error",
			mock: transport.NewMock().OnServerError(
				"getbestblockhash", rpcerr.CodeInWarmup, warmup,
			),
			kind: rpcerr.KindProtocol,
		},
		{
			name: "malformed result",
			mock: transport.NewMock().
				OnRaw("getbestblockhash", `{"hash": 1}`),
			kind: rpcerr.KindDecode,
		},
		{
			name: "unexpected null",
			mock: transport.NewMock().
				OnRaw("getbestblockhash", "null"),
			kind:  rpcerr.KindDecode,
			cause: rpcerr.ErrUnexpectedNull,
		},
		{
			name: "bad hash",
			mock: transport.NewMock().
				OnRaw("getbestblockhash", `"zz"`),
			kind:  rpcerr.KindConversion,
			cause: hex.ErrLength,
		},
		{
			name: "unclassified transport failure",
			mock: transport.NewMock().OnError(
				"getbestblockhash",
				errors.New("connection reset"),
			),
			kind: rpcerr.KindTransport,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, V28, tc.mock)

			_, err := c.GetBestBlockHash(context.Background())
			require.Error(t, err)

			kind, ok := rpcerr.KindOf(err)
			require.True(t, ok)
			require.Equal(t, tc.kind, kind)

			if tc.cause != nil {
				require.ErrorIs(t, err, tc.cause)
			}
		})
	}

	mock := transport.NewMock().OnServerError(
		"getbestblockhash", rpcerr.CodeInWarmup, warmup,
	)
	_, err := newClient(t, V28, mock).GetBestBlockHash(
		context.Background(),
	)

	var serverErr *rpcerr.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, rpcerr.CodeInWarmup, serverErr.Code)
	require.Equal(t, warmup, serverErr.Message)
}

// TestInvoke checks the dynamic call path.
func TestInvoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mock := transport.NewMock().
		On("getblockcount", 840000).
		OnRaw("gettxout", "null")
	c := newClient(t, V19, mock)

	count, err := c.Invoke(ctx, "getblockcount")
	require.NoError(t, err)
	require.Equal(t, uint64(840000), count)

	out, err := c.Invoke(
		ctx, "gettxout", json.RawMessage(`"`+testHash.String()+`"`),
		json.RawMessage("0"),
	)
	require.NoError(t, err)
	require.Nil(t, out)
	require.Len(t, paramStrings(t, mock, "gettxout"), 2)

	_, err = c.Invoke(ctx, "generate", json.RawMessage("1"))
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = c.Invoke(ctx, "getblockcount", json.RawMessage("1"))
	require.ErrorIs(t, err, ErrTooManyArgs)

	// A missing required argument is caller input, not a server failure.
	_, err = c.Invoke(ctx, "getblockhash")
	require.Error(t, err)
	_, ok := rpcerr.KindOf(err)
	require.False(t, ok)

	require.Len(t, mock.Requests(), 2)
}

// TestGetSoftforks reads the v19 softforks map.
func TestGetSoftforks(t *testing.T) {
	t.Parallel()

	info := blockchainInfo(`
		"softforks": {
			"bip34": {
				"type": "buried", "active": true, "height": 500
			}
		},
		"warnings": ""
	`)
	mock := transport.NewMock().OnRaw("getblockchaininfo", info)
	c := newClient(t, V21, mock)

	sc, ok := c.(SoftforkClient)
	require.True(t, ok)

	softforks, err := sc.GetSoftforks(context.Background())
	require.NoError(t, err)
	require.Contains(t, softforks, "bip34")
	require.Equal(t, model.SoftforkBuried, softforks["bip34"].Type)

	chain, err := c.GetBlockchainInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.NetworkRegtest, chain.Chain)
	require.EqualValues(t, 200, chain.Blocks)
	require.Empty(t, chain.Warnings)
}

// TestSnapshot reads the chain state concurrently.
func TestSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mock := transport.NewMock().
		OnRaw("getblockchaininfo", blockchainInfo(`"warnings": []`)).
		OnRaw("getnetworkinfo", networkInfo(280000, "[]")).
		On("getbestblockhash", testHash.String())

	snapshot, err := Snapshot(ctx, newClient(t, V28, mock))
	require.NoError(t, err)
	require.Equal(t, testHash, snapshot.BestBlock)
	require.Equal(t, testHash, snapshot.Blockchain.BestBlockHash)
	require.EqualValues(t, 280000, snapshot.Network.Version)

	mock = transport.NewMock().
		OnRaw("getblockchaininfo", blockchainInfo(`"warnings": []`)).
		On("getbestblockhash", testHash.String())

	_, err = Snapshot(ctx, newClient(t, V28, mock))
	require.True(t, rpcerr.Is(err, rpcerr.KindProtocol))
}

// TestNewWithAuth checks credential resolution and server url parsing.
func TestNewWithAuth(t *testing.T) {
	t.Parallel()

	_, err := NewWithAuth(V28, "127.0.0.1:18443", rpcauth.None{})
	require.ErrorIs(t, err, rpcerr.ErrMissingUserPassword)
	require.True(t, rpcerr.Is(err, rpcerr.KindCredential))

	auth := rpcauth.UserPass{User: "user", Pass: "pass"}

	testCases := []struct {
		rawURL     string
		host       string
		wallet     string
		disableTLS bool
	}{
		{
			rawURL:     "127.0.0.1:18443",
			host:       "127.0.0.1:18443",
			disableTLS: true,
		},
		{
			rawURL:     "http://node:8332/wallet/hot",
			host:       "node:8332",
			wallet:     "hot",
			disableTLS: true,
		},
		{
			rawURL: "https://proxy.example.com",
			host:   "proxy.example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.rawURL, func(t *testing.T) {
			t.Parallel()

			cfg, err := transportConfig(tc.rawURL, auth)
			require.NoError(t, err)
			require.Equal(t, tc.host, cfg.Host)
			require.Equal(t, tc.wallet, cfg.Wallet)
			require.Equal(t, tc.disableTLS, cfg.DisableTLS)
		})
	}

	c, err := NewWithAuth(V17, "127.0.0.1:18443", auth)
	require.NoError(t, err)
	require.IsType(t, &V17Client{}, c)
}
