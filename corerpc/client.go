// Package corerpc is a typed bitcoind JSON-RPC client that returns the same
// model types whichever server release answered. A client is built for one
// release line with New, and only has the methods that release can answer
// in a convertible shape.
package corerpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcparams"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Client is the method set every supported release shares.
type Client interface {
	// Version returns the release line the client speaks.
	Version() Version

	// Params returns the chain parameters addresses are decoded
	// against.
	Params() *chaincfg.Params

	// Invoke calls a declared method with encoded arguments and returns
	// its converted result.
	Invoke(ctx context.Context, method string,
		args ...json.RawMessage) (any, error)

	// ServerVersion returns the version integer reported by
	// getnetworkinfo.
	ServerVersion(ctx context.Context) (int, error)

	// CheckExpectedServerVersion fails with a VersionMismatch error if
	// the server is not one of the releases this client was built for.
	CheckExpectedServerVersion(ctx context.Context) error

	GetBestBlockHash(ctx context.Context) (chainhash.Hash, error)
	GetBlock(ctx context.Context, hash chainhash.Hash) (*wire.MsgBlock,
		error)
	GetBlockVerbose(ctx context.Context,
		hash chainhash.Hash) (*model.GetBlockVerbose, error)
	GetBlockchainInfo(ctx context.Context) (*model.GetBlockchainInfo,
		error)
	GetBlockCount(ctx context.Context) (uint64, error)
	GetBlockHash(ctx context.Context, height uint32) (chainhash.Hash,
		error)
	GetBlockHeader(ctx context.Context,
		hash chainhash.Hash) (*wire.BlockHeader, error)
	GetBlockHeaderVerbose(ctx context.Context,
		hash chainhash.Hash) (*model.GetBlockHeaderVerbose, error)
	GetBlockStats(ctx context.Context,
		height uint32) (*model.GetBlockStats, error)
	GetBlockStatsByHash(ctx context.Context,
		hash chainhash.Hash) (*model.GetBlockStats, error)
	GetChainTips(ctx context.Context) ([]model.ChainTip, error)
	GetChainTxStats(ctx context.Context,
		window fn.Option[ChainTxStatsWindow]) (*model.GetChainTxStats,
		error)
	GetDifficulty(ctx context.Context) (float64, error)
	GetMempoolAncestors(ctx context.Context,
		txid chainhash.Hash) ([]chainhash.Hash, error)
	GetMempoolAncestorsVerbose(ctx context.Context,
		txid chainhash.Hash) (model.MempoolAncestorsVerbose, error)
	GetTxOut(ctx context.Context, txid chainhash.Hash, vout uint32,
		includeMempool fn.Option[bool]) (fn.Option[*model.GetTxOut],
		error)

	GetMemoryInfo(ctx context.Context) (model.GetMemoryInfoStats, error)
	Logging(ctx context.Context) (model.Logging, error)
	Stop(ctx context.Context) (string, error)
	Uptime(ctx context.Context) (time.Duration, error)

	GenerateToAddress(ctx context.Context, nblocks uint32,
		addr btcutil.Address) (model.Generate, error)

	GetAddedNodeInfo(ctx context.Context,
		node fn.Option[string]) ([]model.AddedNodeInfo, error)
	GetNetTotals(ctx context.Context) (*model.GetNetTotals, error)
	GetNetworkInfo(ctx context.Context) (*model.GetNetworkInfo, error)
	GetPeerInfo(ctx context.Context) ([]model.PeerInfo, error)

	SendRawTransaction(ctx context.Context,
		tx *wire.MsgTx) (chainhash.Hash, error)

	CreateWallet(ctx context.Context, name string) (*model.CreateWallet,
		error)
	LoadWallet(ctx context.Context, name string) (*model.LoadWallet,
		error)
	UnloadWallet(ctx context.Context,
		name fn.Option[string]) (*model.UnloadWallet, error)
	GetNewAddress(ctx context.Context, label fn.Option[string],
		addrType fn.Option[model.AddressType]) (model.Address, error)
	GetBalance(ctx context.Context) (btcutil.Amount, error)
	SendToAddress(ctx context.Context, addr btcutil.Address,
		amount btcutil.Amount) (*model.SendToAddress, error)
	GetTransaction(ctx context.Context,
		txid chainhash.Hash) (*model.GetTransaction, error)
}

// SoftforkClient is implemented by clients for v17 to v22, whose
// getblockchaininfo still reports softfork deployments.
type SoftforkClient interface {
	Client

	// GetSoftforks returns the deployments reported by
	// getblockchaininfo.
	GetSoftforks(ctx context.Context) (model.Softforks, error)
}

// GenerateClient is implemented by clients for v17 and v18, the last
// releases with the wallet generate method.
type GenerateClient interface {
	Client

	// Generate mines nblocks blocks to a new wallet address.
	Generate(ctx context.Context, nblocks uint32) (model.Generate, error)
}

// BalancesClient is implemented by clients for v19 and later.
type BalancesClient interface {
	Client

	// GetBalances returns the wallet balances by trust level.
	GetBalances(ctx context.Context) (*model.GetBalances, error)
}

// PackageClient is implemented by clients for v28 and later.
type PackageClient interface {
	Client

	// SubmitPackage submits a package of raw transactions to the
	// mempool.
	SubmitPackage(ctx context.Context, txs []*wire.MsgTx,
		maxFeeRate fn.Option[model.SatPerKVByte],
		maxBurnAmount fn.Option[btcutil.Amount]) (*model.SubmitPackage,
		error)
}

// client is the part of a client that changes wire shape across releases.
// Each type parameter is the wire type one method decodes into.
type client[
	BI schema.Converter[*model.GetBlockchainInfo],
	NI schema.Converter[*model.GetNetworkInfo],
	UW schema.Converter[*model.UnloadWallet],
	CW schema.Converter[*model.CreateWallet],
	LW schema.Converter[*model.LoadWallet],
] struct {
	*core
}

// GetBlockchainInfo returns the state of the chain.
func (c *client[BI, NI, UW, CW, LW]) GetBlockchainInfo(
	ctx context.Context) (*model.GetBlockchainInfo, error) {

	return call[BI, *model.GetBlockchainInfo](
		ctx, c.core, "getblockchaininfo",
	)
}

// GetNetworkInfo returns the state of the P2P network.
func (c *client[BI, NI, UW, CW, LW]) GetNetworkInfo(
	ctx context.Context) (*model.GetNetworkInfo, error) {

	return call[NI, *model.GetNetworkInfo](ctx, c.core, "getnetworkinfo")
}

// ServerVersion returns the version integer reported by getnetworkinfo.
func (c *client[BI, NI, UW, CW, LW]) ServerVersion(
	ctx context.Context) (int, error) {

	info, err := c.GetNetworkInfo(ctx)
	if err != nil {
		return 0, err
	}

	return int(info.Version), nil
}

// CheckExpectedServerVersion fails with a VersionMismatch error if the server
// is not one of the releases this client was built for.
func (c *client[BI, NI, UW, CW, LW]) CheckExpectedServerVersion(
	ctx context.Context) error {

	version, err := c.ServerVersion(ctx)
	if err != nil {
		return err
	}

	err = CheckVersion(c.version.ExpectedVersions(), version)
	if err != nil {
		return err
	}

	log.Debugf("Server version %d matches %v client", version, c.version)

	return nil
}

// CreateWallet creates and loads a wallet with the given name.
func (c *client[BI, NI, UW, CW, LW]) CreateWallet(ctx context.Context,
	name string) (*model.CreateWallet, error) {

	return call[CW, *model.CreateWallet](
		ctx, c.core, "createwallet", name, nil,
	)
}

// LoadWallet loads the wallet with the given name.
func (c *client[BI, NI, UW, CW, LW]) LoadWallet(ctx context.Context,
	name string) (*model.LoadWallet, error) {

	return call[LW, *model.LoadWallet](ctx, c.core, "loadwallet", name)
}

// UnloadWallet unloads the named wallet, or the wallet of the endpoint when
// name is unset.
func (c *client[BI, NI, UW, CW, LW]) UnloadWallet(ctx context.Context,
	name fn.Option[string]) (*model.UnloadWallet, error) {

	return call[UW, *model.UnloadWallet](
		ctx, c.core, "unloadwallet", rpcparams.Optional(name),
	)
}
