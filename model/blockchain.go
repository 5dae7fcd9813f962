package model

import (
	"encoding/json"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GetBlockVerbose is the result of getblock with verbosity 1.
type GetBlockVerbose struct {
	Hash chainhash.Hash

	// Confirmations is -1 if the block is not on the main chain.
	Confirmations int64

	Size         uint32
	StrippedSize fn.Option[uint32]
	Weight       uint64
	Height       uint32
	Version      int32
	MerkleRoot   chainhash.Hash
	Tx           []chainhash.Hash
	Time         uint32
	MedianTime   fn.Option[uint32]
	Nonce        uint32
	Bits         CompactTarget
	Difficulty   float64

	// ChainWork is the expected number of hashes needed to produce the
	// chain up to this block.
	ChainWork *big.Int

	NTx               uint32
	PreviousBlockHash fn.Option[chainhash.Hash]
	NextBlockHash     fn.Option[chainhash.Hash]
}

// GetBlockchainInfo is the result of getblockchaininfo. Softfork data is
// version specific and exposed separately through Softforks.
type GetBlockchainInfo struct {
	Chain                Network
	Blocks               uint32
	Headers              uint32
	BestBlockHash        chainhash.Hash
	Difficulty           float64
	MedianTime           uint32
	VerificationProgress float64
	InitialBlockDownload bool
	ChainWork            *big.Int
	SizeOnDisk           uint64
	Pruned               bool

	// PruneHeight is only set when pruning is enabled.
	PruneHeight fn.Option[uint32]

	// AutomaticPruning is only set when pruning is enabled.
	AutomaticPruning fn.Option[bool]

	// PruneTargetSize is only set when automatic pruning is enabled.
	PruneTargetSize fn.Option[uint64]

	Warnings []string
}

// Softforks maps a softfork name to its deployment status.
type Softforks map[string]Softfork

// Softfork is the status of one softfork.
type Softfork struct {
	Type SoftforkType

	// Bip9 is only set for version bits deployments.
	Bip9 fn.Option[Bip9SoftforkInfo]

	// Height is the first block the rules are enforced at, for buried
	// deployments and active BIP-9 ones.
	Height fn.Option[uint32]

	Active bool
}

// Bip9SoftforkInfo is the version bits state of a softfork.
type Bip9SoftforkInfo struct {
	Status Bip9SoftforkStatus

	// Bit is only set while the deployment is started.
	Bit fn.Option[uint8]

	// StartTime and Timeout are median time past values. Timeout is the
	// maximum int64 for deployments that never time out, and StartTime is
	// negative for deployments that are always active.
	StartTime int64
	Timeout   int64

	Since      uint32
	Statistics fn.Option[Bip9SoftforkStatistics]
}

// Bip9SoftforkStatistics is the signalling progress of a started
// deployment.
type Bip9SoftforkStatistics struct {
	Period    uint32
	Threshold fn.Option[uint32]
	Elapsed   uint32
	Count     uint32
	Possible  fn.Option[bool]
}

// GetBlockHeaderVerbose is the result of getblockheader with verbose set.
type GetBlockHeaderVerbose struct {
	Hash chainhash.Hash

	// Confirmations is -1 if the block is not on the main chain.
	Confirmations int64

	Height            uint32
	Version           int32
	MerkleRoot        chainhash.Hash
	Time              uint32
	MedianTime        uint32
	Nonce             uint32
	Bits              CompactTarget
	Difficulty        float64
	ChainWork         *big.Int
	NTx               uint32
	PreviousBlockHash fn.Option[chainhash.Hash]
	NextBlockHash     fn.Option[chainhash.Hash]
}

// Header rebuilds the consensus header from the verbose fields.
func (g *GetBlockHeaderVerbose) Header() wire.BlockHeader {
	return wire.BlockHeader{
		Version:    g.Version,
		PrevBlock:  g.PreviousBlockHash.UnwrapOr(chainhash.Hash{}),
		MerkleRoot: g.MerkleRoot,
		Timestamp:  unixTime(g.Time),
		Bits:       uint32(g.Bits),
		Nonce:      g.Nonce,
	}
}

// GetBlockStats is the result of getblockstats. Fee rates are reported by
// the server in sat/vB and expressed here in sat/kw.
type GetBlockStats struct {
	AverageFee         btcutil.Amount
	AverageFeeRate     SatPerKWeight
	AverageTxSize      uint32
	BlockHash          chainhash.Hash
	FeeRatePercentiles [5]SatPerKWeight
	Height             uint32
	Inputs             uint32
	MaxFee             btcutil.Amount
	MaxFeeRate         SatPerKWeight
	MaxTxSize          uint32
	MedianFee          btcutil.Amount
	MedianTime         uint32
	MedianTxSize       uint32
	MinimumFee         btcutil.Amount
	MinimumFeeRate     SatPerKWeight
	MinimumTxSize      uint32
	Outputs            uint32
	Subsidy            btcutil.Amount
	SegwitTotalSize    uint32
	SegwitTotalWeight  uint64
	SegwitTxs          uint32
	Time               uint32
	TotalOut           btcutil.Amount
	TotalSize          uint32
	TotalWeight        uint64
	TotalFee           btcutil.Amount
	Txs                uint32
	UtxoIncrease       int32
	UtxoSizeIncrease   int32
}

// ChainTip is one entry of getchaintips.
type ChainTip struct {
	Height uint32
	Hash   chainhash.Hash

	// BranchLength is zero for the main chain.
	BranchLength uint32

	Status ChainTipsStatus
}

// GetChainTxStats is the result of getchaintxstats.
type GetChainTxStats struct {
	Time                 uint32
	TxCount              uint64
	WindowFinalBlockHash chainhash.Hash
	WindowBlockCount     uint32

	// WindowTxCount and WindowInterval are only set for a non empty
	// window.
	WindowTxCount  fn.Option[uint32]
	WindowInterval fn.Option[uint32]

	// TxRate is only set when the window interval is positive.
	TxRate fn.Option[float64]
}

// MempoolAncestorsVerbose is the verbose result of getmempoolancestors. The
// entry layout changed in nearly every release, so entries are left
// undecoded.
type MempoolAncestorsVerbose map[chainhash.Hash]json.RawMessage

// GetTxOut is the result of gettxout for an unspent output.
type GetTxOut struct {
	BestBlock chainhash.Hash

	// Confirmations is kept signed to match the other confirmation
	// fields.
	Confirmations int64

	TxOut wire.TxOut

	// Class is the script class computed locally from the script.
	Class txscript.ScriptClass

	// Addresses are the addresses the output pays to. Most outputs have
	// exactly one.
	Addresses []Address

	Coinbase bool
}
