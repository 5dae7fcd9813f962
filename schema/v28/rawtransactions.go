package v28

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// SubmitPackage is the result of submitpackage.
type SubmitPackage struct {
	PackageMsg           string                           `json:"package_msg"`
	TxResults            map[string]SubmitPackageTxResult `json:"tx-results"`
	ReplacedTransactions []string                         `json:"replaced-transactions"`
}

// SubmitPackageTxResult is the entry for one wtxid.
type SubmitPackageTxResult struct {
	Txid       string               `json:"txid"`
	OtherWtxid *string              `json:"other-wtxid"`
	VSize      *int64               `json:"vsize"`
	Fees       *SubmitPackageTxFees `json:"fees"`
	Error      *string              `json:"error"`
}

// SubmitPackageTxFees are the fees of one transaction, in BTC and BTC/kvB.
type SubmitPackageTxFees struct {
	Base              float64  `json:"base"`
	EffectiveFeeRate  *float64 `json:"effective-feerate"`
	EffectiveIncludes []string `json:"effective-includes"`
}

// ToModel converts the fees.
func (f SubmitPackageTxFees) ToModel() (model.SubmitPackageTxFees, error) {
	base, err := schema.ParseAmount(f.Base, "base")
	if err != nil {
		return model.SubmitPackageTxFees{}, err
	}

	rate := fn.None[model.SatPerKWeight]()
	if f.EffectiveFeeRate != nil {
		converted, err := schema.ParseFeeRate(
			*f.EffectiveFeeRate, schema.VirtualBytes,
			"effective-feerate",
		)
		if err != nil {
			return model.SubmitPackageTxFees{}, err
		}
		rate = fn.Some(converted)
	}

	includes, err := schema.ParseHashes(
		f.EffectiveIncludes, "effective-includes",
	)
	if err != nil {
		return model.SubmitPackageTxFees{}, err
	}

	return model.SubmitPackageTxFees{
		Base:              base,
		EffectiveFeeRate:  rate,
		EffectiveIncludes: includes,
	}, nil
}

// ToModel converts the entry.
func (r SubmitPackageTxResult) ToModel() (model.SubmitPackageTxResult,
	error) {

	txid, err := schema.ParseHash(r.Txid, "txid")
	if err != nil {
		return model.SubmitPackageTxResult{}, err
	}

	otherWtxid, err := schema.ParseOptionalHash(r.OtherWtxid, "other-wtxid")
	if err != nil {
		return model.SubmitPackageTxResult{}, err
	}

	vsize, err := schema.OptionalUint32(r.VSize, "vsize")
	if err != nil {
		return model.SubmitPackageTxResult{}, err
	}

	fees := fn.None[model.SubmitPackageTxFees]()
	if r.Fees != nil {
		converted, err := r.Fees.ToModel()
		if err != nil {
			return model.SubmitPackageTxResult{},
				rpcerr.NewConversionError("fees", err)
		}
		fees = fn.Some(converted)
	}

	return model.SubmitPackageTxResult{
		Txid:       txid,
		OtherWtxid: otherWtxid,
		VSize:      vsize,
		Fees:       fees,
		Error:      fn.OptionFromPtr(r.Error),
	}, nil
}

// ToModel converts the package result.
func (s SubmitPackage) ToModel() (*model.SubmitPackage, error) {
	results := make(
		map[chainhash.Hash]model.SubmitPackageTxResult,
		len(s.TxResults),
	)
	for wtxid, result := range s.TxResults {
		field := "tx-results." + wtxid

		hash, err := schema.ParseHash(wtxid, field)
		if err != nil {
			return nil, err
		}

		converted, err := result.ToModel()
		if err != nil {
			return nil, rpcerr.NewConversionError(field, err)
		}
		results[hash] = converted
	}

	replaced, err := schema.ParseHashes(
		s.ReplacedTransactions, "replaced-transactions",
	)
	if err != nil {
		return nil, err
	}

	return &model.SubmitPackage{
		PackageMsg:           s.PackageMsg,
		TxResults:            results,
		ReplacedTransactions: replaced,
	}, nil
}
