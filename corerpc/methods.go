package corerpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcparams"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// ChainTxStatsWindow selects the blocks getchaintxstats averages over. The
// window ends at BlockHash, or the tip when it is unset.
type ChainTxStatsWindow struct {
	NBlocks   uint32
	BlockHash fn.Option[chainhash.Hash]
}

// hashArg encodes an optional hash argument.
func hashArg(hash fn.Option[chainhash.Hash]) any {
	return rpcparams.Optional(fn.MapOption(func(h chainhash.Hash) string {
		return h.String()
	})(hash))
}

// txArg hex encodes a transaction argument.
func txArg(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf.Bytes()), nil
}

// GetBestBlockHash returns the hash of the chain tip.
func (c *core) GetBestBlockHash(ctx context.Context) (chainhash.Hash, error) {
	return call[v17.GetBestBlockHash, chainhash.Hash](
		ctx, c, "getbestblockhash",
	)
}

// GetBlock returns the block with the given hash.
func (c *core) GetBlock(ctx context.Context,
	hash chainhash.Hash) (*wire.MsgBlock, error) {

	return call[v17.GetBlockVerboseZero, *wire.MsgBlock](
		ctx, c, "getblock", hash.String(), 0,
	)
}

// GetBlockVerbose returns the block summary with the txids of the block.
func (c *core) GetBlockVerbose(ctx context.Context,
	hash chainhash.Hash) (*model.GetBlockVerbose, error) {

	return call[v17.GetBlockVerboseOne, *model.GetBlockVerbose](
		ctx, c, "getblock", hash.String(), 1,
	)
}

// GetBlockCount returns the height of the chain tip.
func (c *core) GetBlockCount(ctx context.Context) (uint64, error) {
	return call[v17.GetBlockCount, uint64](ctx, c, "getblockcount")
}

// GetBlockHash returns the hash of the main chain block at height.
func (c *core) GetBlockHash(ctx context.Context,
	height uint32) (chainhash.Hash, error) {

	return call[v17.GetBlockHash, chainhash.Hash](
		ctx, c, "getblockhash", height,
	)
}

// GetBlockHeader returns the header of the block with the given hash.
func (c *core) GetBlockHeader(ctx context.Context,
	hash chainhash.Hash) (*wire.BlockHeader, error) {

	return call[v17.GetBlockHeader, *wire.BlockHeader](
		ctx, c, "getblockheader", hash.String(), false,
	)
}

// GetBlockHeaderVerbose returns the header with its chain context.
func (c *core) GetBlockHeaderVerbose(ctx context.Context,
	hash chainhash.Hash) (*model.GetBlockHeaderVerbose, error) {

	return call[v17.GetBlockHeaderVerbose, *model.GetBlockHeaderVerbose](
		ctx, c, "getblockheader", hash.String(), true,
	)
}

// GetBlockStats returns the statistics of the main chain block at height.
func (c *core) GetBlockStats(ctx context.Context,
	height uint32) (*model.GetBlockStats, error) {

	return call[v17.GetBlockStats, *model.GetBlockStats](
		ctx, c, "getblockstats", height, nil,
	)
}

// GetBlockStatsByHash returns the statistics of the block with the given
// hash.
func (c *core) GetBlockStatsByHash(ctx context.Context,
	hash chainhash.Hash) (*model.GetBlockStats, error) {

	return call[v17.GetBlockStats, *model.GetBlockStats](
		ctx, c, "getblockstats", hash.String(), nil,
	)
}

// GetChainTips returns every known tip of the block tree.
func (c *core) GetChainTips(ctx context.Context) ([]model.ChainTip, error) {
	return call[v17.GetChainTips, []model.ChainTip](
		ctx, c, "getchaintips",
	)
}

// GetChainTxStats returns transaction rate statistics. Without a window
// the server picks one month of blocks ending at the tip.
func (c *core) GetChainTxStats(ctx context.Context,
	window fn.Option[ChainTxStatsWindow]) (*model.GetChainTxStats, error) {

	var nblocks, blockHash any
	window.WhenSome(func(w ChainTxStatsWindow) {
		nblocks = w.NBlocks
		blockHash = hashArg(w.BlockHash)
	})

	return call[v17.GetChainTxStats, *model.GetChainTxStats](
		ctx, c, "getchaintxstats", nblocks, blockHash,
	)
}

// GetDifficulty returns the proof of work difficulty of the tip.
func (c *core) GetDifficulty(ctx context.Context) (float64, error) {
	return call[v17.GetDifficulty, float64](ctx, c, "getdifficulty")
}

// GetMempoolAncestors returns the txids of the in-mempool ancestors of txid.
func (c *core) GetMempoolAncestors(ctx context.Context,
	txid chainhash.Hash) ([]chainhash.Hash, error) {

	return call[v17.GetMempoolAncestors, []chainhash.Hash](
		ctx, c, "getmempoolancestors", txid.String(), false,
	)
}

// GetMempoolAncestorsVerbose returns the mempool entries of the ancestors of
// txid. The entries are left unconverted.
func (c *core) GetMempoolAncestorsVerbose(ctx context.Context,
	txid chainhash.Hash) (model.MempoolAncestorsVerbose, error) {

	return call[
		v17.GetMempoolAncestorsVerbose, model.MempoolAncestorsVerbose,
	](ctx, c, "getmempoolancestors", txid.String(), true)
}

// GetTxOut returns the unspent output txid:vout, or None if it is spent or
// unknown. The mempool is included unless includeMempool is false.
func (c *core) GetTxOut(ctx context.Context, txid chainhash.Hash, vout uint32,
	includeMempool fn.Option[bool]) (fn.Option[*model.GetTxOut], error) {

	return callOptional[v17.GetTxOut, *model.GetTxOut](
		ctx, c, "gettxout", txid.String(), vout,
		rpcparams.Optional(includeMempool),
	)
}

// GetMemoryInfo returns the memory usage of the server.
func (c *core) GetMemoryInfo(ctx context.Context) (model.GetMemoryInfoStats,
	error) {

	return call[v17.GetMemoryInfoStats, model.GetMemoryInfoStats](
		ctx, c, "getmemoryinfo", nil,
	)
}

// Logging returns the debug logging categories and whether each is on.
func (c *core) Logging(ctx context.Context) (model.Logging, error) {
	return call[v17.Logging, model.Logging](ctx, c, "logging", nil, nil)
}

// Stop asks the server to shut down and returns its message.
func (c *core) Stop(ctx context.Context) (string, error) {
	return call[v17.Stop, string](ctx, c, "stop")
}

// Uptime returns how long the server has been running.
func (c *core) Uptime(ctx context.Context) (time.Duration, error) {
	secs, err := call[v17.Uptime, uint64](ctx, c, "uptime")
	if err != nil {
		return 0, err
	}

	return time.Duration(secs) * time.Second, nil
}

// GenerateToAddress mines nblocks blocks paying to addr. It is only
// accepted on regtest.
func (c *core) GenerateToAddress(ctx context.Context, nblocks uint32,
	addr btcutil.Address) (model.Generate, error) {

	return call[v17.Generate, model.Generate](
		ctx, c, "generatetoaddress", nblocks, addr.EncodeAddress(),
		nil,
	)
}

// GetAddedNodeInfo returns the nodes added with addnode, or only node when
// set.
func (c *core) GetAddedNodeInfo(ctx context.Context,
	node fn.Option[string]) ([]model.AddedNodeInfo, error) {

	return call[v17.GetAddedNodeInfo, []model.AddedNodeInfo](
		ctx, c, "getaddednodeinfo", rpcparams.Optional(node),
	)
}

// GetNetTotals returns the network traffic counters.
func (c *core) GetNetTotals(ctx context.Context) (*model.GetNetTotals,
	error) {

	return call[v17.GetNetTotals, *model.GetNetTotals](
		ctx, c, "getnettotals",
	)
}

// GetPeerInfo returns the connected peers.
func (c *core) GetPeerInfo(ctx context.Context) ([]model.PeerInfo, error) {
	return call[v17.GetPeerInfo, []model.PeerInfo](ctx, c, "getpeerinfo")
}

// SendRawTransaction broadcasts tx and returns its txid. The server's
// default fee rate limit applies.
func (c *core) SendRawTransaction(ctx context.Context,
	tx *wire.MsgTx) (chainhash.Hash, error) {

	txHex, err := txArg(tx)
	if err != nil {
		return chainhash.Hash{}, err
	}

	return call[v17.SendRawTransaction, chainhash.Hash](
		ctx, c, "sendrawtransaction", txHex, nil,
	)
}

// GetNewAddress derives a new receive address. The server's default label
// and address type are used when unset.
func (c *core) GetNewAddress(ctx context.Context, label fn.Option[string],
	addrType fn.Option[model.AddressType]) (model.Address, error) {

	return call[v17.GetNewAddress, model.Address](
		ctx, c, "getnewaddress", rpcparams.Optional(label),
		rpcparams.Optional(addrType),
	)
}

// GetBalance returns the trusted balance of the wallet.
func (c *core) GetBalance(ctx context.Context) (btcutil.Amount, error) {
	return call[v17.GetBalance, btcutil.Amount](ctx, c, "getbalance")
}

// SendToAddress pays amount to addr from the wallet.
func (c *core) SendToAddress(ctx context.Context, addr btcutil.Address,
	amount btcutil.Amount) (*model.SendToAddress, error) {

	return call[v17.SendToAddress, *model.SendToAddress](
		ctx, c, "sendtoaddress", addr.EncodeAddress(),
		rpcparams.Amount(amount), nil, nil,
	)
}

// GetTransaction returns a wallet transaction.
func (c *core) GetTransaction(ctx context.Context,
	txid chainhash.Hash) (*model.GetTransaction, error) {

	return call[v17.GetTransaction, *model.GetTransaction](
		ctx, c, "gettransaction", txid.String(), nil,
	)
}

// generate mines nblocks blocks to the wallet. Only servers before v19 have
// it.
func (c *core) generate(ctx context.Context,
	nblocks uint32) (model.Generate, error) {

	return call[v17.Generate, model.Generate](
		ctx, c, "generate", nblocks, nil,
	)
}
