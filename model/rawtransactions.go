package model

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// SubmitPackage is the result of submitpackage.
type SubmitPackage struct {
	// PackageMsg is "success" when every transaction was accepted.
	PackageMsg string

	// TxResults is keyed by wtxid.
	TxResults map[chainhash.Hash]SubmitPackageTxResult

	ReplacedTransactions []chainhash.Hash
}

// SubmitPackageTxResult is the outcome for one package transaction.
type SubmitPackageTxResult struct {
	Txid       chainhash.Hash
	OtherWtxid fn.Option[chainhash.Hash]
	VSize      fn.Option[uint32]
	Fees       fn.Option[SubmitPackageTxFees]
	Error      fn.Option[string]
}

// SubmitPackageTxFees are the fees paid by one package transaction.
type SubmitPackageTxFees struct {
	Base             btcutil.Amount
	EffectiveFeeRate fn.Option[SatPerKWeight]

	// EffectiveIncludes are the wtxids whose fees and sizes are folded into
	// the effective fee rate.
	EffectiveIncludes []chainhash.Hash
}
